// internal/catalog/catalog_test.go
package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homewise/planner-backend/internal/models"
)

func TestLoadBundledCatalog(t *testing.T) {
	cat, err := Load()
	require.NoError(t, err)
	require.Greater(t, cat.Len(), 0)

	for _, p := range cat.Products() {
		assert.NotEmpty(t, p.ID)
		assert.NotEmpty(t, p.Name)
		assert.GreaterOrEqual(t, p.Price, 0.0)
		assert.True(t, p.BudgetLevel.Valid(), "product %s has budget level %q", p.ID, p.BudgetLevel)
		assert.False(t, p.Custom)
	}
}

func TestLookup(t *testing.T) {
	cat, err := Load()
	require.NoError(t, err)

	p, ok := cat.Lookup("1001")
	require.True(t, ok)
	assert.Equal(t, "Smart Hub M3", p.Name)

	_, ok = cat.Lookup("no-such-id")
	assert.False(t, ok)
}

func TestWithOverlayDoesNotMutateBase(t *testing.T) {
	base := New([]models.Product{{ID: "a", Name: "A"}})
	overlay := base.WithOverlay([]models.Product{{ID: "b", Name: "B", Custom: true}})

	assert.Equal(t, 1, base.Len())
	assert.Equal(t, 2, overlay.Len())

	_, ok := base.Lookup("b")
	assert.False(t, ok)
	_, ok = overlay.Lookup("b")
	assert.True(t, ok)
}

func TestFilter(t *testing.T) {
	cat := New([]models.Product{
		{ID: "1", Category: "lighting", BudgetLevel: models.BudgetEconomy},
		{ID: "2", Category: "lighting", BudgetLevel: models.BudgetLuxury},
		{ID: "3", Category: "security", BudgetLevel: models.BudgetEconomy},
	})

	assert.Len(t, cat.Filter("lighting", ""), 2)
	assert.Len(t, cat.Filter("", models.BudgetEconomy), 2)
	assert.Len(t, cat.Filter("lighting", models.BudgetEconomy), 1)
	assert.Len(t, cat.Filter("", ""), 3)
}

func TestParseUploadCSV(t *testing.T) {
	csv := strings.Join([]string{
		"name,brand,category,price,budget_level,ecosystem,description",
		"Smart Bulb X,Acme,lighting,99.5,economy,mijia;homekit,A bulb",
		"Hub Y,Acme,hub,300,premium,homekit,A hub",
	}, "\n")

	rows, err := ParseUploadCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Smart Bulb X", rows[0].Name)
	assert.Equal(t, 99.5, rows[0].Price)
	assert.Equal(t, models.BudgetEconomy, rows[0].BudgetLevel)
	assert.Equal(t, []string{"mijia", "homekit"}, rows[0].Ecosystem)
	assert.True(t, rows[0].Custom)
	assert.NotEmpty(t, rows[0].ID)
	assert.NotEqual(t, rows[0].ID, rows[1].ID)
}

func TestParseUploadCSVInvalidPrice(t *testing.T) {
	csv := "name,price\nBulb,cheap"
	_, err := ParseUploadCSV(strings.NewReader(csv))
	assert.ErrorIs(t, err, ErrInvalidUpload)
}

func TestParseUploadCSVMissingNameColumn(t *testing.T) {
	csv := "brand,price\nAcme,10"
	_, err := ParseUploadCSV(strings.NewReader(csv))
	assert.ErrorIs(t, err, ErrInvalidUpload)
}

func TestParseUploadCSVUnknownBudgetLevel(t *testing.T) {
	csv := "name,budget_level\nBulb,deluxe"
	_, err := ParseUploadCSV(strings.NewReader(csv))
	assert.ErrorIs(t, err, ErrInvalidUpload)
}

func TestParseUploadJSON(t *testing.T) {
	payload := `[{"id": "ignored", "name": "Custom Cam", "price": 150, "budget_level": "premium", "ecosystem": ["tuya"]}]`

	rows, err := ParseUploadJSON([]byte(payload))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.NotEqual(t, "ignored", rows[0].ID)
	assert.True(t, rows[0].Custom)
	assert.Equal(t, "Custom Cam", rows[0].Name)
}

func TestParseUploadJSONInvalid(t *testing.T) {
	_, err := ParseUploadJSON([]byte(`{"not": "an array"}`))
	assert.ErrorIs(t, err, ErrInvalidUpload)
}

func TestPromptCodecRoundTrip(t *testing.T) {
	products := []models.Product{
		{
			ID: "1001", Name: "Hub", Brand: "Aqara", Category: "hub",
			Price: 729, BudgetLevel: models.BudgetPremium,
			Ecosystem: []string{"mijia", "homekit", "matter"}, Description: "central hub",
		},
		{
			ID: "c-1", Name: "Custom Bulb", Price: 42.5,
			BudgetLevel: models.BudgetEconomy, Ecosystem: []string{"tuya"}, Custom: true,
		},
	}

	for _, lang := range []models.Language{models.LangEnglish, models.LangChinese} {
		wire, err := MarshalPrompt(products, lang)
		require.NoError(t, err)

		decoded, err := UnmarshalPrompt(wire, lang)
		require.NoError(t, err)
		require.Len(t, decoded, 2)

		for i := range products {
			assert.Equal(t, products[i].ID, decoded[i].ID, "lang %s", lang)
			assert.Equal(t, products[i].Price, decoded[i].Price, "lang %s", lang)
			assert.Equal(t, products[i].Ecosystem, decoded[i].Ecosystem, "lang %s", lang)
			assert.Equal(t, products[i].Custom, decoded[i].Custom, "lang %s", lang)
		}
	}
}

func TestMarshalPromptChineseKeys(t *testing.T) {
	products := []models.Product{{ID: "1", Name: "灯", Custom: true}}

	wire, err := MarshalPrompt(products, models.LangChinese)
	require.NoError(t, err)
	assert.Contains(t, wire, "名称")
	assert.Contains(t, wire, "用户自定义")

	wire, err = MarshalPrompt(products, models.LangEnglish)
	require.NoError(t, err)
	assert.Contains(t, wire, `"name"`)
	assert.NotContains(t, wire, "名称")
}

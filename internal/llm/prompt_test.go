// internal/llm/prompt_test.go
package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/homewise/planner-backend/internal/models"
)

func sampleRequest() models.PlanRequest {
	return models.PlanRequest{
		Area:             89,
		Layout:           models.Layout3R2L1B,
		BudgetLevel:      models.BudgetPremium,
		HouseholdProfile: []string{"couple", "pets"},
		FocusAreas:       []string{"lighting", "security"},
		LightingStyle:    "warm",
		Ecosystem:        "mijia",
		CustomNeeds:      "automatic curtains in the bedroom",
		Language:         models.LangEnglish,
	}
}

func TestBuildPlanPromptContents(t *testing.T) {
	prompt := BuildPlanPrompt(sampleRequest(), `[{"ID":"1001"}]`)

	assert.Contains(t, prompt, "Area: 89 sqm")
	assert.Contains(t, prompt, "Layout: 3r2l1b")
	assert.Contains(t, prompt, "Budget Level: premium")
	assert.Contains(t, prompt, "couple, pets")
	assert.Contains(t, prompt, "automatic curtains in the bedroom")
	assert.Contains(t, prompt, `[{"ID":"1001"}]`)
	assert.Contains(t, prompt, "English")
	assert.Contains(t, prompt, `ecosystem list must include "mijia"`)
	assert.Contains(t, prompt, "selected_items")
	assert.Contains(t, prompt, "analysis_report")
	assert.NotContains(t, prompt, StreamSentinel)
}

func TestBuildPlanPromptMentionsAttachedFloorPlan(t *testing.T) {
	req := sampleRequest()
	assert.NotContains(t, BuildPlanPrompt(req, "[]"), "floor plan image is attached")

	req.FloorPlanDataURI = "data:image/png;base64,aGVsbG8="
	assert.Contains(t, BuildPlanPrompt(req, "[]"), "floor plan image is attached")
}

func TestBuildPlanPromptDeterministic(t *testing.T) {
	req := sampleRequest()
	assert.Equal(t, BuildPlanPrompt(req, "[]"), BuildPlanPrompt(req, "[]"))
}

func TestBuildPlanPromptOmitsEmptyOptionalFields(t *testing.T) {
	req := models.PlanRequest{
		Area:        60,
		Layout:      models.Layout2R1L1B,
		BudgetLevel: models.BudgetEconomy,
		Language:    models.LangChinese,
	}
	prompt := BuildPlanPrompt(req, "[]")

	assert.NotContains(t, prompt, "Preferred Ecosystem")
	assert.NotContains(t, prompt, "HARD RULE")
	assert.NotContains(t, prompt, "Custom Needs")
	assert.Contains(t, prompt, "Chinese")
}

func TestBuildPlanStreamPromptHasSentinel(t *testing.T) {
	prompt := BuildPlanStreamPrompt(sampleRequest(), "[]")

	assert.Contains(t, prompt, StreamSentinel)
	assert.Contains(t, prompt, "narrate")
}

func TestBuildReportPrompt(t *testing.T) {
	prompt := BuildReportPrompt(ReportInput{
		BudgetLevel: models.BudgetEconomy,
		SelectedItems: []models.SelectedItem{
			{ProductID: "1004", Quantity: 4, Room: "Bedroom", Reason: "lighting"},
		},
		TotalPrice:  236,
		Area:        60,
		Layout:      models.Layout2R1L1B,
		CustomNeeds: "keep it cheap",
		Language:    models.LangEnglish,
	})

	assert.Contains(t, prompt, "Product ID: 1004, Quantity: 4")
	assert.Contains(t, prompt, "236.00")
	assert.Contains(t, prompt, "'economy'")
	assert.Contains(t, prompt, "keep it cheap")
	assert.Contains(t, prompt, `"analysis_report"`)
	// The four sections appear in order.
	idxValue := strings.Index(prompt, "Automation value")
	idxTradeoff := strings.Index(prompt, "Budget trade-offs")
	idxUpgrade := strings.Index(prompt, "Upgrade suggestions")
	idxSavings := strings.Index(prompt, "Money-saving tips")
	assert.True(t, idxValue < idxTradeoff && idxTradeoff < idxUpgrade && idxUpgrade < idxSavings)
}

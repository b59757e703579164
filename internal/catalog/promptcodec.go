// internal/catalog/promptcodec.go
package catalog

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/homewise/planner-backend/internal/models"
)

// The catalog is sent to the model as a JSON array. Chinese responses get
// Chinese column names so the model reads the table in the same language
// it answers in; every other language uses the English key set. Ecosystem
// tags travel as a ';'-joined string either way.
type promptKeys struct {
	id, name, brand, category, price, ecosystem, description, budget, source string
	customValue                                                              string
}

var englishKeys = promptKeys{
	id: "ID", name: "name", brand: "brand", category: "category",
	price: "price", ecosystem: "ecosystem", description: "description",
	budget: "budget_level", source: "source",
	customValue: "user-supplied",
}

var chineseKeys = promptKeys{
	id: "ID", name: "名称", brand: "品牌", category: "品类",
	price: "价格", ecosystem: "生态", description: "描述",
	budget: "budget_level", source: "来源",
	customValue: "用户自定义",
}

func keysFor(lang models.Language) promptKeys {
	if lang == models.LangChinese {
		return chineseKeys
	}
	return englishKeys
}

// MarshalPrompt serializes products into the wire format embedded in the
// instruction prompt.
func MarshalPrompt(products []models.Product, lang models.Language) (string, error) {
	k := keysFor(lang)
	rows := make([]map[string]any, 0, len(products))
	for _, p := range products {
		row := map[string]any{
			k.id:          p.ID,
			k.name:        p.Name,
			k.brand:       p.Brand,
			k.category:    p.Category,
			k.price:       p.Price,
			k.ecosystem:   strings.Join(p.Ecosystem, ";"),
			k.description: p.Description,
			k.budget:      string(p.BudgetLevel),
		}
		if p.Custom {
			row[k.source] = k.customValue
		}
		rows = append(rows, row)
	}

	data, err := json.Marshal(rows)
	if err != nil {
		return "", fmt.Errorf("failed to serialize catalog: %w", err)
	}
	return string(data), nil
}

// UnmarshalPrompt decodes the prompt wire format back into products. Used
// by tests to check the encoding round-trips id, price and ecosystem.
func UnmarshalPrompt(data string, lang models.Language) ([]models.Product, error) {
	k := keysFor(lang)
	var rows []map[string]any
	if err := json.Unmarshal([]byte(data), &rows); err != nil {
		return nil, fmt.Errorf("failed to parse catalog wire format: %w", err)
	}

	str := func(row map[string]any, key string) string {
		s, _ := row[key].(string)
		return s
	}

	products := make([]models.Product, 0, len(rows))
	for _, row := range rows {
		p := models.Product{
			ID:          str(row, k.id),
			Name:        str(row, k.name),
			Brand:       str(row, k.brand),
			Category:    str(row, k.category),
			Description: str(row, k.description),
			BudgetLevel: models.BudgetLevel(str(row, k.budget)),
		}
		if price, ok := row[k.price].(float64); ok {
			p.Price = price
		}
		if raw := str(row, k.ecosystem); raw != "" {
			p.Ecosystem = splitTags(raw)
		}
		if str(row, k.source) == k.customValue {
			p.Custom = true
		}
		products = append(products, p)
	}
	return products, nil
}

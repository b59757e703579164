// internal/catalog/upload.go
package catalog

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/homewise/planner-backend/internal/models"
)

// ErrInvalidUpload wraps every user catalog upload failure so handlers can
// map it to the right error code. The request aborts before any AI call.
var ErrInvalidUpload = errors.New("invalid catalog upload")

// ParseUploadCSV parses user-supplied catalog rows from CSV. The first
// record is a header; recognized columns are name, brand, category,
// price, budget_level, ecosystem (';'-separated) and description. Each
// row gets a freshly generated id and is marked custom.
func ParseUploadCSV(r io.Reader) ([]models.Product, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: missing CSV header: %v", ErrInvalidUpload, err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := cols["name"]; !ok {
		return nil, fmt.Errorf("%w: CSV header must contain a name column", ErrInvalidUpload)
	}

	field := func(record []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var products []models.Product
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidUpload, line+1, err)
		}
		line++

		p := models.Product{
			ID:          uuid.New().String(),
			Name:        field(record, "name"),
			Brand:       field(record, "brand"),
			Category:    field(record, "category"),
			Description: field(record, "description"),
			Custom:      true,
		}
		if raw := field(record, "price"); raw != "" {
			price, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: invalid price %q", ErrInvalidUpload, line, raw)
			}
			p.Price = price
		}
		if raw := field(record, "ecosystem"); raw != "" {
			p.Ecosystem = splitTags(raw)
		}
		if raw := field(record, "budget_level"); raw != "" {
			p.BudgetLevel = models.BudgetLevel(strings.ToLower(raw))
		}

		if err := validateUploadRow(p, line); err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	return products, nil
}

// ParseUploadJSON parses user-supplied catalog rows from a JSON array.
// Any ids in the payload are discarded in favor of fresh ones.
func ParseUploadJSON(data []byte) ([]models.Product, error) {
	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidUpload, err)
	}

	for i := range products {
		products[i].ID = uuid.New().String()
		products[i].Custom = true
		if err := validateUploadRow(products[i], i+1); err != nil {
			return nil, err
		}
	}
	return products, nil
}

func validateUploadRow(p models.Product, line int) error {
	if p.Name == "" {
		return fmt.Errorf("%w: row %d: name is required", ErrInvalidUpload, line)
	}
	if p.Price < 0 {
		return fmt.Errorf("%w: row %d: price must be non-negative", ErrInvalidUpload, line)
	}
	if p.BudgetLevel != "" && !p.BudgetLevel.Valid() {
		return fmt.Errorf("%w: row %d: unknown budget_level %q", ErrInvalidUpload, line, p.BudgetLevel)
	}
	return nil
}

func splitTags(raw string) []string {
	parts := strings.Split(raw, ";")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

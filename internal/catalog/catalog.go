// internal/catalog/catalog.go
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/homewise/planner-backend/internal/models"
)

//go:embed products.json
var defaultData []byte

// Catalog is a read-only set of products with a lookup index by id. The
// default catalog is built once at startup; request-scoped overlays are
// separate Catalog values and never mutate the shared one.
type Catalog struct {
	products []models.Product
	index    map[string]models.Product
}

// Load parses the bundled product table. Called once at process start.
func Load() (*Catalog, error) {
	var products []models.Product
	if err := json.Unmarshal(defaultData, &products); err != nil {
		return nil, fmt.Errorf("failed to parse bundled catalog: %w", err)
	}
	return New(products), nil
}

func New(products []models.Product) *Catalog {
	index := make(map[string]models.Product, len(products))
	for _, p := range products {
		index[p.ID] = p
	}
	return &Catalog{products: products, index: index}
}

// Products returns the rows in their catalog order.
func (c *Catalog) Products() []models.Product {
	return c.products
}

// Lookup finds a product by id.
func (c *Catalog) Lookup(id string) (models.Product, bool) {
	p, ok := c.index[id]
	return p, ok
}

func (c *Catalog) Len() int {
	return len(c.products)
}

// WithOverlay returns a new catalog containing this catalog's rows plus
// the given user-supplied rows. The receiver is left untouched.
func (c *Catalog) WithOverlay(rows []models.Product) *Catalog {
	if len(rows) == 0 {
		return c
	}
	merged := make([]models.Product, 0, len(c.products)+len(rows))
	merged = append(merged, c.products...)
	merged = append(merged, rows...)
	return New(merged)
}

// Filter returns products matching the given category and budget level.
// Empty arguments match everything.
func (c *Catalog) Filter(category string, budget models.BudgetLevel) []models.Product {
	out := make([]models.Product, 0, len(c.products))
	for _, p := range c.products {
		if category != "" && p.Category != category {
			continue
		}
		if budget != "" && p.BudgetLevel != budget {
			continue
		}
		out = append(out, p)
	}
	return out
}

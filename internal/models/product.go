// internal/models/product.go
package models

type BudgetLevel string

const (
	BudgetEconomy BudgetLevel = "economy"
	BudgetPremium BudgetLevel = "premium"
	BudgetLuxury  BudgetLevel = "luxury"
)

// Valid reports whether the budget level is one of the known tiers.
func (b BudgetLevel) Valid() bool {
	switch b {
	case BudgetEconomy, BudgetPremium, BudgetLuxury:
		return true
	}
	return false
}

// Covers reports whether a plan at this budget tier may include a product
// at the given tier. Luxury plans draw from every tier, premium plans from
// premium and economy, economy plans stay economy-only.
func (b BudgetLevel) Covers(product BudgetLevel) bool {
	rank := map[BudgetLevel]int{
		BudgetEconomy: 0,
		BudgetPremium: 1,
		BudgetLuxury:  2,
	}
	pb, ok := rank[b]
	pp, pok := rank[product]
	if !ok || !pok {
		return false
	}
	return pp <= pb
}

type Product struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Brand       string      `json:"brand"`
	Category    string      `json:"category"`
	Price       float64     `json:"price"`
	BudgetLevel BudgetLevel `json:"budget_level"`
	Ecosystem   []string    `json:"ecosystem"`
	Description string      `json:"description"`
	ImageURL    string      `json:"image_url"`

	// Custom marks a row supplied by the user for this request rather
	// than one from the bundled catalog.
	Custom bool `json:"custom,omitempty"`
}

// SupportsEcosystem reports whether the product carries the given
// platform tag. An empty preference matches everything.
func (p *Product) SupportsEcosystem(tag string) bool {
	if tag == "" {
		return true
	}
	for _, e := range p.Ecosystem {
		if e == tag {
			return true
		}
	}
	return false
}

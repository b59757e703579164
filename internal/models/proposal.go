// internal/models/proposal.go
package models

type Layout string

const (
	Layout2R1L1B Layout = "2r1l1b"
	Layout3R2L1B Layout = "3r2l1b"
	Layout3R2L2B Layout = "3r2l2b"
	Layout4R2L2B Layout = "4r2l2b"
	Layout4R2L3B Layout = "4r2l3b"
)

func (l Layout) Valid() bool {
	switch l {
	case Layout2R1L1B, Layout3R2L1B, Layout3R2L2B, Layout4R2L2B, Layout4R2L3B:
		return true
	}
	return false
}

type Language string

const (
	LangEnglish  Language = "en"
	LangChinese  Language = "zh"
	LangJapanese Language = "ja"
	LangKorean   Language = "ko"
)

func (l Language) Valid() bool {
	switch l {
	case LangEnglish, LangChinese, LangJapanese, LangKorean:
		return true
	}
	return false
}

// PlanRequest is one planning form submission. Each submission is
// independent; nothing about it is persisted.
type PlanRequest struct {
	Area             float64     `json:"area" validate:"required,gt=0"`
	Layout           Layout      `json:"layout" validate:"required,layout"`
	BudgetLevel      BudgetLevel `json:"budget_level" validate:"required,budget_level"`
	HouseholdProfile []string    `json:"household_profile,omitempty"`
	FocusAreas       []string    `json:"focus_areas,omitempty"`
	LightingStyle    string      `json:"lighting_style,omitempty"`
	Ecosystem        string      `json:"ecosystem,omitempty"`
	CustomNeeds      string      `json:"custom_needs,omitempty"`
	Language         Language    `json:"language" validate:"omitempty,language"`

	// FloorPlanDataURI holds an optional floor plan image as a
	// data:<mime>;base64,<data> URI.
	FloorPlanDataURI string `json:"-"`
}

// SelectedItem is one product pick as produced by the model. It is not
// trusted until validated and joined against the catalog.
type SelectedItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Room      string `json:"room"`
	Reason    string `json:"reason"`
}

// EnrichedItem is a validated selection merged with its catalog product.
type EnrichedItem struct {
	SelectedItem
	Product
}

// Proposal is the unit returned to the caller: the analysis report plus
// the ordered enriched selections. TotalPrice is always recomputed from
// the enriched items, never taken from model output.
type Proposal struct {
	AnalysisReport string         `json:"analysis_report"`
	EnrichedItems  []EnrichedItem `json:"enriched_items"`
	TotalPrice     float64        `json:"total_price"`
}

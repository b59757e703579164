// internal/llm/prompt.go
package llm

import (
	"fmt"
	"strings"

	"github.com/homewise/planner-backend/internal/models"
)

var languageNames = map[models.Language]string{
	models.LangEnglish:  "English",
	models.LangChinese:  "Chinese (简体中文)",
	models.LangJapanese: "Japanese (日本語)",
	models.LangKorean:   "Korean (한국어)",
}

// LanguageName returns the human-readable name used in prompt text.
func LanguageName(lang models.Language) string {
	if name, ok := languageNames[lang]; ok {
		return name
	}
	return languageNames[models.LangEnglish]
}

// StreamSentinel separates human-readable narration from the structured
// payload in the streaming variant. The receiving side buffers until the
// marker appears, then parses everything after it.
const StreamSentinel = "___PROPOSAL_JSON___"

// BuildPlanPrompt formats a planning request and the serialized catalog
// into the selection instruction. Pure; identical input yields identical
// output.
func BuildPlanPrompt(req models.PlanRequest, catalogJSON string) string {
	return buildPlanPrompt(req, catalogJSON, false)
}

// BuildPlanStreamPrompt is the streaming variant: the model narrates its
// reasoning first, prints the sentinel, then emits the same JSON object.
func BuildPlanStreamPrompt(req models.PlanRequest, catalogJSON string) string {
	return buildPlanPrompt(req, catalogJSON, true)
}

func buildPlanPrompt(req models.PlanRequest, catalogJSON string, streaming bool) string {
	var b strings.Builder

	b.WriteString("You are an AI smart home consultant. Analyze the user's property details, budget, and needs to recommend a list of smart home products.\n\n")
	fmt.Fprintf(&b, "Generate the response in the following language: %s\n\n", LanguageName(req.Language))

	b.WriteString("Property Details:\n")
	fmt.Fprintf(&b, "Area: %.0f sqm\n", req.Area)
	fmt.Fprintf(&b, "Layout: %s\n", req.Layout)
	fmt.Fprintf(&b, "Budget Level: %s\n", req.BudgetLevel)
	if len(req.HouseholdProfile) > 0 {
		fmt.Fprintf(&b, "Household Profile: %s\n", strings.Join(req.HouseholdProfile, ", "))
	}
	if len(req.FocusAreas) > 0 {
		fmt.Fprintf(&b, "Focus Areas: %s\n", strings.Join(req.FocusAreas, ", "))
	}
	if req.LightingStyle != "" {
		fmt.Fprintf(&b, "Lighting Style: %s\n", req.LightingStyle)
	}
	if req.Ecosystem != "" {
		fmt.Fprintf(&b, "Preferred Ecosystem: %s\n", req.Ecosystem)
	}
	if req.CustomNeeds != "" {
		fmt.Fprintf(&b, "Custom Needs: %s\n", req.CustomNeeds)
	}
	if req.FloorPlanDataURI != "" {
		b.WriteString("A floor plan image is attached; use it to assign products to rooms.\n")
	}

	b.WriteString("\nAvailable Products:\n")
	b.WriteString(catalogJSON)
	b.WriteString("\n\n")

	b.WriteString("Selection rules:\n")
	if req.Ecosystem != "" {
		fmt.Fprintf(&b, "- HARD RULE: every selected product's ecosystem list must include \"%s\".\n", req.Ecosystem)
	}
	b.WriteString("- Budget compatibility: a luxury budget may select luxury, premium and economy products; a premium budget may select premium and economy products; an economy budget must stay with economy products unless no economy product can fill the need.\n")
	b.WriteString("- When a user-supplied product and a default catalog product both satisfy a requirement, prefer the user-supplied one.\n")
	b.WriteString("- Only select product IDs that appear in the Available Products table above.\n\n")

	if streaming {
		fmt.Fprintf(&b, "First, briefly narrate your planning considerations in %s (a few sentences, no JSON).\n", LanguageName(req.Language))
		fmt.Fprintf(&b, "Then print the marker %s on its own line.\n", StreamSentinel)
		b.WriteString("After the marker, output ONLY a JSON object with the following structure, with no further prose and no markdown wrapping:\n")
	} else {
		b.WriteString("Return ONLY a JSON object with the following structure, with no surrounding prose and no markdown wrapping:\n")
	}
	b.WriteString(`{
  "selected_items": [
    { "product_id": "1001", "quantity": 1, "room": "Living Room", "reason": "Central control hub" }
  ],
  "analysis_report": "Markdown string here..."
}
`)
	fmt.Fprintf(&b, "\nThe \"room\" and \"reason\" fields must be in %s.\n", LanguageName(req.Language))
	fmt.Fprintf(&b, "The analysis_report must be a markdown string in %s covering, in order:\n", LanguageName(req.Language))
	b.WriteString(reportSections)

	return b.String()
}

// ReportInput feeds the secondary analysis-report call. TotalPrice is the
// recomputed catalog total, never a figure taken from the model.
type ReportInput struct {
	BudgetLevel   models.BudgetLevel
	SelectedItems []models.SelectedItem
	TotalPrice    float64
	Area          float64
	Layout        models.Layout
	CustomNeeds   string
	Language      models.Language
}

const reportSections = `1. Automation value: which core automations does this plan deliver compared to a non-smart home?
2. Budget trade-offs: which higher-end features or experiences were compromised at this budget tier?
3. Upgrade suggestions: with more budget, which product categories are worth upgrading?
4. Money-saving tips: which alternatives or tricks reduce the cost?
`

// BuildReportPrompt formats the standalone report instruction used when
// the first response carried selections but no report.
func BuildReportPrompt(in ReportInput) string {
	var b strings.Builder

	b.WriteString("You are a smart home consultant who writes an analysis report for a finished smart home plan.\n\n")
	fmt.Fprintf(&b, "The property is %.0f sqm with a %s layout.\n", in.Area, in.Layout)
	fmt.Fprintf(&b, "The selected budget tier is '%s'.\n", in.BudgetLevel)
	fmt.Fprintf(&b, "The total price of the selected items is: %.2f.\n", in.TotalPrice)
	if in.CustomNeeds != "" {
		fmt.Fprintf(&b, "The user's custom needs are: %q.\n", in.CustomNeeds)
	}

	b.WriteString("\nThese are the selected items that form the plan:\n")
	for _, item := range in.SelectedItems {
		fmt.Fprintf(&b, "- Product ID: %s, Quantity: %d, Room: %s, Reason: %s\n",
			item.ProductID, item.Quantity, item.Room, item.Reason)
	}

	fmt.Fprintf(&b, "\nWrite a concise analysis report in %s using markdown, covering these four points in order:\n", LanguageName(in.Language))
	b.WriteString(reportSections)

	b.WriteString(`
IMPORTANT:
- Your entire response must be a single JSON object.
- The JSON object must have one key: "analysis_report".
- The value of "analysis_report" must be a markdown string containing the report.
- Do not add any text outside the JSON object.
`)

	return b.String()
}

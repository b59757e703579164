// internal/llm/parser.go
package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/homewise/planner-backend/internal/models"
)

// Selection is the typed shape of the model's first response. The report
// is optional; when absent the caller issues the secondary report call.
// A product_id that matches nothing in the catalog still passes here; the
// enrichment step drops it.
type Selection struct {
	SelectedItems  []models.SelectedItem `json:"selected_items"`
	AnalysisReport string                `json:"analysis_report"`
}

type reportPayload struct {
	AnalysisReport string `json:"analysis_report"`
}

// ExtractJSON locates the JSON candidate in raw model output. Step one of
// the extraction pipeline: prefer the interior of a fenced code block,
// else fall back to the outermost brace span, else the text as-is.
func ExtractJSON(raw string) string {
	if inner, ok := fencedBlock(raw); ok {
		return inner
	}
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start != -1 && end > start {
		return raw[start : end+1]
	}
	return strings.TrimSpace(raw)
}

func fencedBlock(raw string) (string, bool) {
	open := strings.Index(raw, "```")
	if open == -1 {
		return "", false
	}
	rest := raw[open+3:]
	if nl := strings.Index(rest, "\n"); nl != -1 {
		// Skip the language tag on the opening fence, e.g. ```json
		tag := strings.TrimSpace(rest[:nl])
		if len(tag) <= 10 && !strings.ContainsAny(tag, "{}") {
			rest = rest[nl+1:]
		}
	}
	end := strings.Index(rest, "```")
	if end == -1 {
		return "", false
	}
	return strings.TrimSpace(rest[:end]), true
}

// ParseSelection runs the full extraction pipeline on the first response:
// locate the JSON candidate, decode it, and validate the selection schema.
// Malformed items fail the whole parse; there is no silent coercion.
func ParseSelection(raw string) (*Selection, error) {
	candidate := ExtractJSON(raw)

	var sel Selection
	if err := json.Unmarshal([]byte(candidate), &sel); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	// An empty array is a valid answer (nothing fit the constraints) and
	// yields an empty proposal. Only a missing or null field is malformed.
	if sel.SelectedItems == nil {
		return nil, fmt.Errorf("%w: selected_items is missing", ErrMalformedResponse)
	}
	for i, item := range sel.SelectedItems {
		if item.ProductID == "" {
			return nil, fmt.Errorf("%w: item %d: product_id is required", ErrMalformedResponse, i)
		}
		if item.Quantity < 1 {
			return nil, fmt.Errorf("%w: item %d: quantity must be at least 1", ErrMalformedResponse, i)
		}
	}

	return &sel, nil
}

// ParseReport decodes the secondary call's response. An empty report is a
// hard failure; there is no keyword-sniffing fallback for half-valid
// content.
func ParseReport(raw string) (string, error) {
	candidate := ExtractJSON(raw)

	var payload reportPayload
	if err := json.Unmarshal([]byte(candidate), &payload); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if strings.TrimSpace(payload.AnalysisReport) == "" {
		return "", fmt.Errorf("%w: analysis_report is empty", ErrMalformedResponse)
	}
	return payload.AnalysisReport, nil
}

// internal/services/planner_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/homewise/planner-backend/internal/catalog"
	"github.com/homewise/planner-backend/internal/config"
	"github.com/homewise/planner-backend/internal/llm"
	"github.com/homewise/planner-backend/internal/models"
	"github.com/homewise/planner-backend/internal/utils"
)

// ErrInvalidRequest marks a submission that failed validation before any
// provider call was made.
var ErrInvalidRequest = errors.New("invalid plan request")

// PlannerService runs the planning flow end to end: serialize the
// catalog, build the prompt, call the provider, parse and validate the
// selection, fall back to the secondary report call when needed, and
// enrich against the catalog. The standard and streaming entry points
// share every step so the two paths cannot drift.
type PlannerService struct {
	catalog *catalog.Catalog
	client  llm.Client
	cfg     *config.Config
}

func NewPlannerService(cat *catalog.Catalog, client llm.Client, cfg *config.Config) *PlannerService {
	return &PlannerService{
		catalog: cat,
		client:  client,
		cfg:     cfg,
	}
}

// Catalog exposes the default catalog for read-only listing.
func (s *PlannerService) Catalog() *catalog.Catalog {
	return s.catalog
}

// GeneratePlan handles one standard (non-streaming) submission.
func (s *PlannerService) GeneratePlan(ctx context.Context, req *models.PlanRequest, overlay []models.Product) (*models.Proposal, error) {
	cat, prompt, err := s.prepare(req, overlay, false)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := s.callContext(ctx)
	defer cancel()

	raw, err := s.client.Generate(callCtx, prompt)
	if err != nil {
		return nil, err
	}

	sel, err := llm.ParseSelection(raw)
	if err != nil {
		return nil, err
	}

	return s.finishProposal(ctx, req, cat, sel)
}

// prepare validates the request, applies the user catalog overlay and
// builds the provider prompt.
func (s *PlannerService) prepare(req *models.PlanRequest, overlay []models.Product, streaming bool) (*catalog.Catalog, llm.Prompt, error) {
	if req.Language == "" {
		req.Language = models.Language(s.cfg.Planner.DefaultLanguage)
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, llm.Prompt{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	cat := s.catalog.WithOverlay(overlay)
	catalogJSON, err := catalog.MarshalPrompt(cat.Products(), req.Language)
	if err != nil {
		return nil, llm.Prompt{}, err
	}

	text := llm.BuildPlanPrompt(*req, catalogJSON)
	jsonOnly := true
	if streaming {
		text = llm.BuildPlanStreamPrompt(*req, catalogJSON)
		jsonOnly = false
	}

	return cat, llm.Prompt{
		Text:         text,
		ImageDataURI: req.FloorPlanDataURI,
		JSONOnly:     jsonOnly,
	}, nil
}

func (s *PlannerService) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := time.Duration(s.cfg.AI.RequestTimeout) * time.Second
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

// finishProposal enriches the validated selection and attaches the
// report, issuing the secondary call when the first response omitted it.
func (s *PlannerService) finishProposal(ctx context.Context, req *models.PlanRequest, cat *catalog.Catalog, sel *llm.Selection) (*models.Proposal, error) {
	enriched, total := s.enrich(req, cat, sel.SelectedItems)

	report := strings.TrimSpace(sel.AnalysisReport)
	if report == "" {
		generated, err := s.generateReport(ctx, req, sel.SelectedItems, total)
		if err != nil {
			return nil, err
		}
		report = generated
	}

	return &models.Proposal{
		AnalysisReport: report,
		EnrichedItems:  enriched,
		TotalPrice:     total,
	}, nil
}

// enrich joins selections against the catalog. Unknown product ids are
// model hallucinations: logged and dropped, never fatal. The total is
// recomputed over the kept items only.
func (s *PlannerService) enrich(req *models.PlanRequest, cat *catalog.Catalog, items []models.SelectedItem) ([]models.EnrichedItem, float64) {
	enriched := make([]models.EnrichedItem, 0, len(items))
	var total float64

	for _, item := range items {
		product, ok := cat.Lookup(item.ProductID)
		if !ok {
			logrus.WithField("product_id", item.ProductID).Warn("Selected product not found in catalog, dropping item")
			continue
		}

		if s.cfg.Planner.StrictCompatibility {
			if !req.BudgetLevel.Covers(product.BudgetLevel) {
				logrus.WithFields(logrus.Fields{
					"product_id":   item.ProductID,
					"budget_level": product.BudgetLevel,
					"plan_budget":  req.BudgetLevel,
				}).Warn("Selected product exceeds budget tier, dropping item")
				continue
			}
			if !product.SupportsEcosystem(req.Ecosystem) {
				logrus.WithFields(logrus.Fields{
					"product_id": item.ProductID,
					"ecosystem":  req.Ecosystem,
				}).Warn("Selected product does not support preferred ecosystem, dropping item")
				continue
			}
		}

		enriched = append(enriched, models.EnrichedItem{
			SelectedItem: item,
			Product:      product,
		})
		total += product.Price * float64(item.Quantity)
	}

	return enriched, total
}

// generateReport issues the single secondary call for the analysis
// report. A second empty or malformed response fails the whole request.
func (s *PlannerService) generateReport(ctx context.Context, req *models.PlanRequest, items []models.SelectedItem, total float64) (string, error) {
	logrus.WithField("total_price", total).Info("First response had no analysis report, issuing report call")

	prompt := llm.Prompt{
		Text: llm.BuildReportPrompt(llm.ReportInput{
			BudgetLevel:   req.BudgetLevel,
			SelectedItems: items,
			TotalPrice:    total,
			Area:          req.Area,
			Layout:        req.Layout,
			CustomNeeds:   req.CustomNeeds,
			Language:      req.Language,
		}),
		JSONOnly: true,
	}

	callCtx, cancel := s.callContext(ctx)
	defer cancel()

	raw, err := s.client.Generate(callCtx, prompt)
	if err != nil {
		return "", err
	}
	return llm.ParseReport(raw)
}

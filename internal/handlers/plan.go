// internal/handlers/plan.go
package handlers

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/homewise/planner-backend/internal/catalog"
	"github.com/homewise/planner-backend/internal/config"
	"github.com/homewise/planner-backend/internal/llm"
	"github.com/homewise/planner-backend/internal/models"
	"github.com/homewise/planner-backend/internal/services"
	"github.com/homewise/planner-backend/internal/utils"
)

type PlanHandler struct {
	plannerService *services.PlannerService
	cfg            *config.Config
}

func NewPlanHandler(plannerService *services.PlannerService, cfg *config.Config) *PlanHandler {
	return &PlanHandler{
		plannerService: plannerService,
		cfg:            cfg,
	}
}

// POST /plan
func (h *PlanHandler) GeneratePlan(c *gin.Context) {
	req, overlay, err := h.parseForm(c)
	if err != nil {
		respondFormError(c, err)
		return
	}

	proposal, err := h.plannerService.GeneratePlan(c.Request.Context(), req, overlay)
	if err != nil {
		respondPlanError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"proposal": proposal})
}

// POST /plan/stream
func (h *PlanHandler) GeneratePlanStream(c *gin.Context) {
	req, overlay, err := h.parseForm(c)
	if err != nil {
		respondFormError(c, err)
		return
	}

	// Stream headers go out with the first chunk so that a failure before
	// any output can still answer with the JSON error envelope.
	started := false
	out := func(chunk string) error {
		if !started {
			c.Header("Content-Type", "text/plain; charset=utf-8")
			c.Header("Cache-Control", "no-cache")
			c.Header("X-Accel-Buffering", "no")
			started = true
		}
		if _, err := c.Writer.WriteString(chunk); err != nil {
			return err
		}
		c.Writer.Flush()
		return nil
	}

	if err := h.plannerService.GeneratePlanStream(c.Request.Context(), req, overlay, out); err != nil {
		if !started {
			respondPlanError(c, err)
			return
		}
		// Headers are gone; all we can do is tag the stream and log.
		logrus.WithError(err).Error("Plan stream failed mid-flight")
		fmt.Fprintf(c.Writer, "\nERROR: %s\n", err.Error())
	}
}

// parseForm reads the multipart submission into a PlanRequest plus any
// user catalog overlay rows. Upload problems abort before any AI call.
func (h *PlanHandler) parseForm(c *gin.Context) (*models.PlanRequest, []models.Product, error) {
	area, err := strconv.ParseFloat(c.PostForm("area"), 64)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid area: %q", c.PostForm("area"))
	}

	lang := c.PostForm("language")
	if lang == "" {
		lang = utils.GetLangFromContext(c)
	}

	req := &models.PlanRequest{
		Area:             area,
		Layout:           models.Layout(strings.ToLower(c.PostForm("layout"))),
		BudgetLevel:      models.BudgetLevel(c.PostForm("budget_level")),
		HouseholdProfile: c.PostFormArray("household_profile[]"),
		FocusAreas:       c.PostFormArray("focus_areas[]"),
		LightingStyle:    c.PostForm("lighting_style"),
		Ecosystem:        c.PostForm("ecosystem"),
		CustomNeeds:      c.PostForm("custom_needs"),
		Language:         models.Language(lang),
	}

	if err := h.readFloorPlan(c, req); err != nil {
		return nil, nil, err
	}

	overlay, err := parseOverlay(c)
	if err != nil {
		return nil, nil, err
	}

	return req, overlay, nil
}

func (h *PlanHandler) readFloorPlan(c *gin.Context, req *models.PlanRequest) error {
	file, err := c.FormFile("floor_plan")
	if err != nil {
		// Optional field
		return nil
	}
	if file.Size == 0 {
		return nil
	}
	if file.Size > h.cfg.Planner.MaxUploadBytes {
		return fmt.Errorf("floor plan exceeds %d bytes", h.cfg.Planner.MaxUploadBytes)
	}

	f, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to read floor plan: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("failed to read floor plan: %w", err)
	}

	mime := file.Header.Get("Content-Type")
	if mime == "" {
		mime = "image/png"
	}
	req.FloorPlanDataURI = fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(data))
	return nil
}

func parseOverlay(c *gin.Context) ([]models.Product, error) {
	if raw := c.PostForm("products_csv"); strings.TrimSpace(raw) != "" {
		return catalog.ParseUploadCSV(strings.NewReader(raw))
	}
	if raw := c.PostForm("products_json"); strings.TrimSpace(raw) != "" {
		return catalog.ParseUploadJSON([]byte(raw))
	}
	return nil, nil
}

func respondFormError(c *gin.Context, err error) {
	if errors.Is(err, catalog.ErrInvalidUpload) {
		utils.ErrorResponse(c, 400, "INVALID_CATALOG_UPLOAD", err.Error(), nil)
		return
	}
	utils.BadRequestResponse(c, err.Error(), nil)
}

func respondPlanError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, llm.ErrEmptyResponse):
		utils.BadGatewayResponse(c, "EMPTY_AI_RESPONSE", err.Error())
	case errors.Is(err, llm.ErrMalformedResponse):
		utils.BadGatewayResponse(c, "MALFORMED_AI_RESPONSE", err.Error())
	case errors.Is(err, services.ErrInvalidRequest):
		if details := utils.GetValidationErrors(err); len(details) > 0 {
			utils.ValidationErrorResponse(c, details)
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
	default:
		logrus.WithError(err).Error("Plan generation failed")
		utils.InternalErrorResponse(c, err.Error())
	}
}

// internal/handlers/catalog.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/homewise/planner-backend/internal/models"
	"github.com/homewise/planner-backend/internal/services"
	"github.com/homewise/planner-backend/internal/utils"
)

type CatalogHandler struct {
	plannerService *services.PlannerService
}

func NewCatalogHandler(plannerService *services.PlannerService) *CatalogHandler {
	return &CatalogHandler{plannerService: plannerService}
}

// GET /catalog
func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	budget := models.BudgetLevel(c.Query("budget_level"))
	if budget != "" && !budget.Valid() {
		utils.BadRequestResponse(c, "Budget level must be one of economy, premium, luxury", nil)
		return
	}

	products := h.plannerService.Catalog().Filter(c.Query("category"), budget)
	utils.SuccessResponseWithMeta(c, gin.H{"products": products}, gin.H{
		"total": len(products),
	})
}

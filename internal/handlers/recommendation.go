package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fundrazor/fundrazor-backend/internal/services"
)

type RecommendationHandler struct {
	recommendationService services.RecommendationService
	dashboardService      services.DashboardService
}

func NewRecommendationHandler(recommendationService services.RecommendationService, dashboardService services.DashboardService) *RecommendationHandler {
	return &RecommendationHandler{
		recommendationService: recommendationService,
		dashboardService:      dashboardService,
	}
}

func (rh *RecommendationHandler) Generate(c *gin.Context) {
	var req struct {
		OwnerID *uuid.UUID `json:"owner_id"`
	}
	// Body is optional; an empty body means use the default owner.
	_ = c.ShouldBindJSON(&req)

	tasks, err := rh.recommendationService.GenerateNextBestActions(c.Request.Context(), req.OwnerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if len(tasks) > 0 {
		rh.dashboardService.InvalidateAll(c.Request.Context())
	}
	c.JSON(http.StatusOK, gin.H{
		"tasks_created": len(tasks),
		"tasks":         tasks,
	})
}

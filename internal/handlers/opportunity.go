package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fundrazor/fundrazor-backend/internal/services"
	"github.com/fundrazor/fundrazor-backend/internal/types"
)

type OpportunityHandler struct {
	opportunityService services.OpportunityService
	dashboardService   services.DashboardService
}

func NewOpportunityHandler(opportunityService services.OpportunityService, dashboardService services.DashboardService) *OpportunityHandler {
	return &OpportunityHandler{opportunityService: opportunityService, dashboardService: dashboardService}
}

func (oh *OpportunityHandler) Create(c *gin.Context) {
	var req types.Opportunity
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	created, err := oh.opportunityService.CreateOpportunity(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	oh.dashboardService.InvalidateAll(c.Request.Context())
	c.JSON(http.StatusCreated, created)
}

func (oh *OpportunityHandler) List(c *gin.Context) {
	var personID *uuid.UUID
	if raw := c.Query("person_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid person_id"})
			return
		}
		personID = &parsed
	}
	opportunities, err := oh.opportunityService.ListOpportunities(c.Request.Context(), personID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, opportunities)
}

func (oh *OpportunityHandler) Update(c *gin.Context) {
	opportunityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid opportunity id"})
		return
	}
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	opportunity, err := oh.opportunityService.UpdateOpportunity(c.Request.Context(), opportunityID, fields)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	oh.dashboardService.InvalidateAll(c.Request.Context())
	c.JSON(http.StatusOK, opportunity)
}

func (oh *OpportunityHandler) MoveStage(c *gin.Context) {
	opportunityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid opportunity id"})
		return
	}
	var req struct {
		Stage string `json:"stage"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	opportunity, err := oh.opportunityService.MoveStage(c.Request.Context(), opportunityID, req.Stage)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	oh.dashboardService.InvalidateAll(c.Request.Context())
	c.JSON(http.StatusOK, opportunity)
}

func (oh *OpportunityHandler) Delete(c *gin.Context) {
	opportunityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid opportunity id"})
		return
	}
	if err := oh.opportunityService.DeleteOpportunity(c.Request.Context(), opportunityID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	oh.dashboardService.InvalidateAll(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"success": true})
}

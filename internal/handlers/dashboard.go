package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fundrazor/fundrazor-backend/internal/services"
)

type DashboardHandler struct {
	dashboardService services.DashboardService
}

func NewDashboardHandler(dashboardService services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (dh *DashboardHandler) Giving(c *gin.Context) {
	summary, err := dh.dashboardService.GivingDashboard(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (dh *DashboardHandler) Pipeline(c *gin.Context) {
	summary, err := dh.dashboardService.PipelineDashboard(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (dh *DashboardHandler) Tasks(c *gin.Context) {
	summary, err := dh.dashboardService.TaskDashboard(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

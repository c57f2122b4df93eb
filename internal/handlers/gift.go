package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fundrazor/fundrazor-backend/internal/services"
	"github.com/fundrazor/fundrazor-backend/internal/types"
)

type GiftHandler struct {
	giftService      services.GiftService
	dashboardService services.DashboardService
}

func NewGiftHandler(giftService services.GiftService, dashboardService services.DashboardService) *GiftHandler {
	return &GiftHandler{giftService: giftService, dashboardService: dashboardService}
}

func (gh *GiftHandler) Create(c *gin.Context) {
	var req types.Gift
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	created, err := gh.giftService.CreateGift(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	gh.dashboardService.InvalidateAll(c.Request.Context())
	c.JSON(http.StatusCreated, created)
}

func (gh *GiftHandler) Get(c *gin.Context) {
	giftID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid gift id"})
		return
	}
	gift, err := gh.giftService.GetGift(c.Request.Context(), giftID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gift)
}

func (gh *GiftHandler) List(c *gin.Context) {
	var personID *uuid.UUID
	if raw := c.Query("person_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid person_id"})
			return
		}
		personID = &parsed
	}
	gifts, err := gh.giftService.ListGifts(c.Request.Context(), personID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gifts)
}

func (gh *GiftHandler) Update(c *gin.Context) {
	giftID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid gift id"})
		return
	}
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	gift, err := gh.giftService.UpdateGift(c.Request.Context(), giftID, fields)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	gh.dashboardService.InvalidateAll(c.Request.Context())
	c.JSON(http.StatusOK, gift)
}

func (gh *GiftHandler) Delete(c *gin.Context) {
	giftID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid gift id"})
		return
	}
	if err := gh.giftService.DeleteGift(c.Request.Context(), giftID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	gh.dashboardService.InvalidateAll(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"success": true})
}

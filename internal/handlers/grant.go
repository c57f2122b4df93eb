package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fundrazor/fundrazor-backend/internal/services"
	"github.com/fundrazor/fundrazor-backend/internal/types"
)

type GrantHandler struct {
	grantService services.GrantService
}

func NewGrantHandler(grantService services.GrantService) *GrantHandler {
	return &GrantHandler{grantService: grantService}
}

func (gh *GrantHandler) Create(c *gin.Context) {
	var req types.Grant
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	created, err := gh.grantService.CreateGrant(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (gh *GrantHandler) List(c *gin.Context) {
	grants, err := gh.grantService.ListGrants(c.Request.Context(), c.Query("status"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, grants)
}

func (gh *GrantHandler) Update(c *gin.Context) {
	grantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid grant id"})
		return
	}
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	grant, err := gh.grantService.UpdateGrant(c.Request.Context(), grantID, fields)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, grant)
}

func (gh *GrantHandler) Delete(c *gin.Context) {
	grantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid grant id"})
		return
	}
	if err := gh.grantService.DeleteGrant(c.Request.Context(), grantID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

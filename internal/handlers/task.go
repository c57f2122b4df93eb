package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fundrazor/fundrazor-backend/internal/pkg/pointers"
	"github.com/fundrazor/fundrazor-backend/internal/repos"
	"github.com/fundrazor/fundrazor-backend/internal/services"
	"github.com/fundrazor/fundrazor-backend/internal/types"
)

type TaskHandler struct {
	taskService      services.TaskService
	dashboardService services.DashboardService
}

func NewTaskHandler(taskService services.TaskService, dashboardService services.DashboardService) *TaskHandler {
	return &TaskHandler{taskService: taskService, dashboardService: dashboardService}
}

func (th *TaskHandler) Create(c *gin.Context) {
	var req types.Task
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	created, err := th.taskService.CreateTask(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	th.dashboardService.InvalidateAll(c.Request.Context())
	c.JSON(http.StatusCreated, created)
}

func (th *TaskHandler) List(c *gin.Context) {
	filter := repos.TaskFilter{TitleContains: c.Query("title_contains")}
	if raw := c.Query("person_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid person_id"})
			return
		}
		filter.PersonID = &parsed
	}
	if raw := c.Query("owner_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid owner_id"})
			return
		}
		filter.OwnerID = &parsed
	}
	if raw := c.Query("completed"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid completed flag"})
			return
		}
		filter.Completed = pointers.Ptr(parsed)
	}

	tasks, err := th.taskService.ListTasks(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (th *TaskHandler) Update(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	task, err := th.taskService.UpdateTask(c.Request.Context(), taskID, fields)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	th.dashboardService.InvalidateAll(c.Request.Context())
	c.JSON(http.StatusOK, task)
}

func (th *TaskHandler) Complete(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}
	task, err := th.taskService.CompleteTask(c.Request.Context(), taskID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	th.dashboardService.InvalidateAll(c.Request.Context())
	c.JSON(http.StatusOK, task)
}

func (th *TaskHandler) Delete(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}
	if err := th.taskService.DeleteTask(c.Request.Context(), taskID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	th.dashboardService.InvalidateAll(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"success": true})
}

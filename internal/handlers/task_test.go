package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fundrazor/fundrazor-backend/internal/repos"
	"github.com/fundrazor/fundrazor-backend/internal/services"
	"github.com/fundrazor/fundrazor-backend/internal/types"
)

type stubTaskService struct{}

func (stubTaskService) CreateTask(ctx context.Context, task *types.Task) (*types.Task, error) {
	return task, nil
}

func (stubTaskService) ListTasks(ctx context.Context, filter repos.TaskFilter) ([]*types.Task, error) {
	return nil, nil
}

func (stubTaskService) UpdateTask(ctx context.Context, taskID uuid.UUID, fields map[string]any) (*types.Task, error) {
	return &types.Task{ID: taskID}, nil
}

func (stubTaskService) CompleteTask(ctx context.Context, taskID uuid.UUID) (*types.Task, error) {
	return &types.Task{ID: taskID, Completed: true}, nil
}

func (stubTaskService) DeleteTask(ctx context.Context, taskID uuid.UUID) error {
	return nil
}

type spyDashboardService struct {
	invalidations int
}

func (s *spyDashboardService) GivingDashboard(ctx context.Context) (*services.GivingSummary, error) {
	return nil, nil
}

func (s *spyDashboardService) PipelineDashboard(ctx context.Context) (*services.PipelineSummary, error) {
	return nil, nil
}

func (s *spyDashboardService) TaskDashboard(ctx context.Context) (*services.TaskSummary, error) {
	return nil, nil
}

func (s *spyDashboardService) InvalidateAll(ctx context.Context) {
	s.invalidations++
}

// Every task mutation has to drop the cached dashboards, including plain
// field edits like priority or due date.
func TestTaskHandlerMutationsInvalidateDashboards(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{name: "update", method: http.MethodPatch, path: "/api/tasks/%s", body: `{"priority":"high"}`},
		{name: "complete", method: http.MethodPost, path: "/api/tasks/%s/complete"},
		{name: "delete", method: http.MethodDelete, path: "/api/tasks/%s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dashboards := &spyDashboardService{}
			handler := NewTaskHandler(stubTaskService{}, dashboards)

			router := gin.New()
			router.PATCH("/api/tasks/:id", handler.Update)
			router.POST("/api/tasks/:id/complete", handler.Complete)
			router.DELETE("/api/tasks/:id", handler.Delete)

			target := strings.Replace(tt.path, "%s", uuid.New().String(), 1)
			req := httptest.NewRequest(tt.method, target, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
			}
			if dashboards.invalidations != 1 {
				t.Errorf("dashboard invalidations = %d, want 1", dashboards.invalidations)
			}
		})
	}
}

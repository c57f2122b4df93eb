package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/fundrazor/fundrazor-backend/internal/pkg/logger"
	"github.com/fundrazor/fundrazor-backend/internal/repos"
	"github.com/fundrazor/fundrazor-backend/internal/types"
)

type WorkflowService interface {
	CreateWorkflow(ctx context.Context, workflow *types.Workflow) (*types.Workflow, error)
	ListWorkflows(ctx context.Context, activeOnly bool) ([]*types.Workflow, error)
	UpdateWorkflow(ctx context.Context, workflowID uuid.UUID, fields map[string]any) (*types.Workflow, error)
	DeleteWorkflow(ctx context.Context, workflowID uuid.UUID) error
}

type workflowService struct {
	db           *gorm.DB
	log          *logger.Logger
	workflowRepo repos.WorkflowRepo
}

func NewWorkflowService(db *gorm.DB, log *logger.Logger, workflowRepo repos.WorkflowRepo) WorkflowService {
	serviceLog := log.With("service", "WorkflowService")
	return &workflowService{db: db, log: serviceLog, workflowRepo: workflowRepo}
}

// Steps must be a JSON array. Each element describes one step of the
// workflow; the shape of an element is left to the client.
func validateSteps(steps []byte) error {
	if len(steps) == 0 {
		return nil
	}
	var parsed []json.RawMessage
	if err := json.Unmarshal(steps, &parsed); err != nil {
		return fmt.Errorf("steps must be a JSON array")
	}
	return nil
}

func (ws *workflowService) CreateWorkflow(ctx context.Context, workflow *types.Workflow) (*types.Workflow, error) {
	if workflow == nil {
		return nil, fmt.Errorf("workflow required")
	}
	workflow.Name = strings.TrimSpace(workflow.Name)
	if workflow.Name == "" {
		return nil, fmt.Errorf("name required")
	}
	if err := validateSteps(workflow.Steps); err != nil {
		return nil, err
	}

	workflow.ID = uuid.New()
	created, err := ws.workflowRepo.Create(ctx, nil, []*types.Workflow{workflow})
	if err != nil {
		return nil, fmt.Errorf("create workflow: %w", err)
	}
	return created[0], nil
}

func (ws *workflowService) ListWorkflows(ctx context.Context, activeOnly bool) ([]*types.Workflow, error) {
	return ws.workflowRepo.List(ctx, nil, activeOnly)
}

func (ws *workflowService) UpdateWorkflow(ctx context.Context, workflowID uuid.UUID, fields map[string]any) (*types.Workflow, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("no updates provided")
	}
	if raw, ok := fields["steps"]; ok {
		encoded, err := json.Marshal(raw)
		if err != nil {
			return nil, fmt.Errorf("steps must be a JSON array")
		}
		if err := validateSteps(encoded); err != nil {
			return nil, err
		}
		fields["steps"] = datatypes.JSON(encoded)
	}

	var out *types.Workflow
	if err := ws.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := ws.workflowRepo.GetByIDs(ctx, tx, []uuid.UUID{workflowID})
		if err != nil {
			return fmt.Errorf("fetch workflow: %w", err)
		}
		if len(found) == 0 {
			return fmt.Errorf("workflow does not exist")
		}

		if err := ws.workflowRepo.UpdateFields(ctx, tx, workflowID, fields); err != nil {
			return fmt.Errorf("update workflow: %w", err)
		}

		reloaded, err := ws.workflowRepo.GetByIDs(ctx, tx, []uuid.UUID{workflowID})
		if err != nil || len(reloaded) == 0 {
			return fmt.Errorf("reload workflow after update")
		}
		out = reloaded[0]
		return nil
	}); err != nil {
		return nil, err
	}
	return out, nil
}

func (ws *workflowService) DeleteWorkflow(ctx context.Context, workflowID uuid.UUID) error {
	return ws.workflowRepo.Delete(ctx, nil, workflowID)
}

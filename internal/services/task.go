package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fundrazor/fundrazor-backend/internal/pkg/logger"
	"github.com/fundrazor/fundrazor-backend/internal/repos"
	"github.com/fundrazor/fundrazor-backend/internal/types"
)

var validPriorities = map[string]struct{}{
	types.PriorityLow:    {},
	types.PriorityMedium: {},
	types.PriorityHigh:   {},
	types.PriorityUrgent: {},
}

type TaskService interface {
	CreateTask(ctx context.Context, task *types.Task) (*types.Task, error)
	ListTasks(ctx context.Context, filter repos.TaskFilter) ([]*types.Task, error)
	UpdateTask(ctx context.Context, taskID uuid.UUID, fields map[string]any) (*types.Task, error)
	// CompleteTask marks the task done. Completing an already completed task is
	// a no-op and not an error.
	CompleteTask(ctx context.Context, taskID uuid.UUID) (*types.Task, error)
	DeleteTask(ctx context.Context, taskID uuid.UUID) error
}

type taskService struct {
	db         *gorm.DB
	log        *logger.Logger
	taskRepo   repos.TaskRepo
	personRepo repos.PersonRepo
	now        func() time.Time
}

func NewTaskService(db *gorm.DB, log *logger.Logger, taskRepo repos.TaskRepo, personRepo repos.PersonRepo) TaskService {
	serviceLog := log.With("service", "TaskService")
	return &taskService{
		db:         db,
		log:        serviceLog,
		taskRepo:   taskRepo,
		personRepo: personRepo,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (ts *taskService) CreateTask(ctx context.Context, task *types.Task) (*types.Task, error) {
	if task == nil {
		return nil, fmt.Errorf("task required")
	}
	if task.PersonID == uuid.Nil {
		return nil, fmt.Errorf("person_id required")
	}
	task.Title = strings.TrimSpace(task.Title)
	if task.Title == "" {
		return nil, fmt.Errorf("title required")
	}
	if task.Priority == "" {
		task.Priority = types.PriorityMedium
	}
	if _, ok := validPriorities[task.Priority]; !ok {
		return nil, fmt.Errorf("invalid priority %q", task.Priority)
	}
	// Manually created tasks never carry a rule key.
	task.RuleKey = ""
	task.Completed = false
	task.CompletedAt = nil

	persons, err := ts.personRepo.GetByIDs(ctx, nil, []uuid.UUID{task.PersonID})
	if err != nil {
		return nil, fmt.Errorf("fetch person: %w", err)
	}
	if len(persons) == 0 {
		return nil, fmt.Errorf("person does not exist")
	}

	task.ID = uuid.New()
	created, err := ts.taskRepo.Create(ctx, nil, []*types.Task{task})
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return created[0], nil
}

func (ts *taskService) ListTasks(ctx context.Context, filter repos.TaskFilter) ([]*types.Task, error) {
	return ts.taskRepo.List(ctx, nil, filter)
}

func (ts *taskService) UpdateTask(ctx context.Context, taskID uuid.UUID, fields map[string]any) (*types.Task, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("no updates provided")
	}
	if raw, ok := fields["priority"]; ok {
		priority, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("invalid priority %v", raw)
		}
		if _, valid := validPriorities[priority]; !valid {
			return nil, fmt.Errorf("invalid priority %q", priority)
		}
	}
	// Completion state changes go through CompleteTask.
	delete(fields, "completed")
	delete(fields, "completed_at")
	delete(fields, "rule_key")

	var out *types.Task
	if err := ts.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := ts.taskRepo.GetByIDs(ctx, tx, []uuid.UUID{taskID})
		if err != nil {
			return fmt.Errorf("fetch task: %w", err)
		}
		if len(found) == 0 {
			return fmt.Errorf("task does not exist")
		}

		if err := ts.taskRepo.UpdateFields(ctx, tx, taskID, fields); err != nil {
			return fmt.Errorf("update task: %w", err)
		}

		reloaded, err := ts.taskRepo.GetByIDs(ctx, tx, []uuid.UUID{taskID})
		if err != nil || len(reloaded) == 0 {
			return fmt.Errorf("reload task after update")
		}
		out = reloaded[0]
		return nil
	}); err != nil {
		return nil, err
	}
	return out, nil
}

func (ts *taskService) CompleteTask(ctx context.Context, taskID uuid.UUID) (*types.Task, error) {
	var out *types.Task
	if err := ts.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := ts.taskRepo.GetByIDs(ctx, tx, []uuid.UUID{taskID})
		if err != nil {
			return fmt.Errorf("fetch task: %w", err)
		}
		if len(found) == 0 {
			return fmt.Errorf("task does not exist")
		}
		if found[0].Completed {
			out = found[0]
			return nil
		}

		if err := ts.taskRepo.Complete(ctx, tx, taskID, ts.now()); err != nil {
			return fmt.Errorf("complete task: %w", err)
		}

		reloaded, err := ts.taskRepo.GetByIDs(ctx, tx, []uuid.UUID{taskID})
		if err != nil || len(reloaded) == 0 {
			return fmt.Errorf("reload task after completion")
		}
		out = reloaded[0]
		return nil
	}); err != nil {
		return nil, err
	}
	return out, nil
}

func (ts *taskService) DeleteTask(ctx context.Context, taskID uuid.UUID) error {
	return ts.taskRepo.Delete(ctx, nil, taskID)
}

package repos

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fundrazor/fundrazor-backend/internal/pkg/logger"
	"github.com/fundrazor/fundrazor-backend/internal/types"
)

// TaskFilter narrows List. Nil/empty fields are ignored. TitleContains is a
// case-insensitive substring match.
type TaskFilter struct {
	PersonID      *uuid.UUID
	OwnerID       *uuid.UUID
	Completed     *bool
	TitleContains string
}

type TaskRepo interface {
	Create(ctx context.Context, tx *gorm.DB, tasks []*types.Task) ([]*types.Task, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, taskIDs []uuid.UUID) ([]*types.Task, error)
	List(ctx context.Context, tx *gorm.DB, filter TaskFilter) ([]*types.Task, error)
	// OpenRuleTaskExists reports whether the person already has an incomplete
	// task generated by the given rule.
	OpenRuleTaskExists(ctx context.Context, tx *gorm.DB, personID uuid.UUID, ruleKey string) (bool, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, taskID uuid.UUID, fields map[string]any) error
	Complete(ctx context.Context, tx *gorm.DB, taskID uuid.UUID, at time.Time) error
	Delete(ctx context.Context, tx *gorm.DB, taskID uuid.UUID) error
}

type taskRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTaskRepo(db *gorm.DB, baseLog *logger.Logger) TaskRepo {
	repoLog := baseLog.With("repo", "TaskRepo")
	return &taskRepo{db: db, log: repoLog}
}

func (tr *taskRepo) Create(ctx context.Context, tx *gorm.DB, tasks []*types.Task) ([]*types.Task, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	if len(tasks) == 0 {
		return []*types.Task{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&tasks).Error; err != nil {
		return nil, err
	}

	return tasks, nil
}

func (tr *taskRepo) GetByIDs(ctx context.Context, tx *gorm.DB, taskIDs []uuid.UUID) ([]*types.Task, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var results []*types.Task
	if len(taskIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", taskIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *taskRepo) List(ctx context.Context, tx *gorm.DB, filter TaskFilter) ([]*types.Task, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	query := transaction.WithContext(ctx).Model(&types.Task{})
	if filter.PersonID != nil {
		query = query.Where("person_id = ?", *filter.PersonID)
	}
	if filter.OwnerID != nil {
		query = query.Where("owner_id = ?", *filter.OwnerID)
	}
	if filter.Completed != nil {
		query = query.Where("completed = ?", *filter.Completed)
	}
	if filter.TitleContains != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(filter.TitleContains)+"%")
	}

	var results []*types.Task
	if err := query.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *taskRepo) OpenRuleTaskExists(ctx context.Context, tx *gorm.DB, personID uuid.UUID, ruleKey string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Task{}).
		Where("person_id = ? AND rule_key = ? AND completed = ?", personID, ruleKey, false).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (tr *taskRepo) UpdateFields(ctx context.Context, tx *gorm.DB, taskID uuid.UUID, fields map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	if len(fields) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.Task{}).
		Where("id = ?", taskID).
		Updates(fields).Error
}

func (tr *taskRepo) Complete(ctx context.Context, tx *gorm.DB, taskID uuid.UUID, at time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Task{}).
		Where("id = ?", taskID).
		Updates(map[string]any{
			"completed":    true,
			"completed_at": at,
		}).Error
}

func (tr *taskRepo) Delete(ctx context.Context, tx *gorm.DB, taskID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", taskID).
		Delete(&types.Task{}).Error
}

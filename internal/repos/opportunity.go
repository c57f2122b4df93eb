package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fundrazor/fundrazor-backend/internal/pkg/logger"
	"github.com/fundrazor/fundrazor-backend/internal/types"
)

type OpportunityRepo interface {
	Create(ctx context.Context, tx *gorm.DB, opportunities []*types.Opportunity) ([]*types.Opportunity, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, opportunityIDs []uuid.UUID) ([]*types.Opportunity, error)
	ListByPersonID(ctx context.Context, tx *gorm.DB, personID uuid.UUID) ([]*types.Opportunity, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Opportunity, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, opportunityID uuid.UUID, fields map[string]any) error
	// MoveStage sets the new stage and resets the stage clock.
	MoveStage(ctx context.Context, tx *gorm.DB, opportunityID uuid.UUID, stage string, at time.Time) error
	Delete(ctx context.Context, tx *gorm.DB, opportunityID uuid.UUID) error
}

type opportunityRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOpportunityRepo(db *gorm.DB, baseLog *logger.Logger) OpportunityRepo {
	repoLog := baseLog.With("repo", "OpportunityRepo")
	return &opportunityRepo{db: db, log: repoLog}
}

func (or *opportunityRepo) Create(ctx context.Context, tx *gorm.DB, opportunities []*types.Opportunity) ([]*types.Opportunity, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}

	if len(opportunities) == 0 {
		return []*types.Opportunity{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&opportunities).Error; err != nil {
		return nil, err
	}

	return opportunities, nil
}

func (or *opportunityRepo) GetByIDs(ctx context.Context, tx *gorm.DB, opportunityIDs []uuid.UUID) ([]*types.Opportunity, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}

	var results []*types.Opportunity
	if len(opportunityIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", opportunityIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (or *opportunityRepo) ListByPersonID(ctx context.Context, tx *gorm.DB, personID uuid.UUID) ([]*types.Opportunity, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}

	var results []*types.Opportunity
	if err := transaction.WithContext(ctx).
		Where("person_id = ?", personID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (or *opportunityRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Opportunity, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}

	var results []*types.Opportunity
	if err := transaction.WithContext(ctx).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (or *opportunityRepo) UpdateFields(ctx context.Context, tx *gorm.DB, opportunityID uuid.UUID, fields map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	if len(fields) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.Opportunity{}).
		Where("id = ?", opportunityID).
		Updates(fields).Error
}

func (or *opportunityRepo) MoveStage(ctx context.Context, tx *gorm.DB, opportunityID uuid.UUID, stage string, at time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Opportunity{}).
		Where("id = ?", opportunityID).
		Updates(map[string]any{
			"stage":            stage,
			"stage_entered_at": at,
			"days_in_stage":    0,
		}).Error
}

func (or *opportunityRepo) Delete(ctx context.Context, tx *gorm.DB, opportunityID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", opportunityID).
		Delete(&types.Opportunity{}).Error
}

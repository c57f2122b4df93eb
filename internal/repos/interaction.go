package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fundrazor/fundrazor-backend/internal/pkg/logger"
	"github.com/fundrazor/fundrazor-backend/internal/types"
)

type InteractionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, interactions []*types.Interaction) ([]*types.Interaction, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, interactionIDs []uuid.UUID) ([]*types.Interaction, error)
	ListByPersonID(ctx context.Context, tx *gorm.DB, personID uuid.UUID) ([]*types.Interaction, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Interaction, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, interactionID uuid.UUID, fields map[string]any) error
	Delete(ctx context.Context, tx *gorm.DB, interactionID uuid.UUID) error
}

type interactionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewInteractionRepo(db *gorm.DB, baseLog *logger.Logger) InteractionRepo {
	repoLog := baseLog.With("repo", "InteractionRepo")
	return &interactionRepo{db: db, log: repoLog}
}

func (ir *interactionRepo) Create(ctx context.Context, tx *gorm.DB, interactions []*types.Interaction) ([]*types.Interaction, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}

	if len(interactions) == 0 {
		return []*types.Interaction{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&interactions).Error; err != nil {
		return nil, err
	}

	return interactions, nil
}

func (ir *interactionRepo) GetByIDs(ctx context.Context, tx *gorm.DB, interactionIDs []uuid.UUID) ([]*types.Interaction, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}

	var results []*types.Interaction
	if len(interactionIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", interactionIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ir *interactionRepo) ListByPersonID(ctx context.Context, tx *gorm.DB, personID uuid.UUID) ([]*types.Interaction, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}

	var results []*types.Interaction
	if err := transaction.WithContext(ctx).
		Where("person_id = ?", personID).
		Order("occurred_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ir *interactionRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Interaction, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}

	var results []*types.Interaction
	if err := transaction.WithContext(ctx).
		Order("occurred_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ir *interactionRepo) UpdateFields(ctx context.Context, tx *gorm.DB, interactionID uuid.UUID, fields map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	if len(fields) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.Interaction{}).
		Where("id = ?", interactionID).
		Updates(fields).Error
}

func (ir *interactionRepo) Delete(ctx context.Context, tx *gorm.DB, interactionID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", interactionID).
		Delete(&types.Interaction{}).Error
}

package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fundrazor/fundrazor-backend/internal/pkg/logger"
	"github.com/fundrazor/fundrazor-backend/internal/types"
)

type GiftRepo interface {
	Create(ctx context.Context, tx *gorm.DB, gifts []*types.Gift) ([]*types.Gift, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, giftIDs []uuid.UUID) ([]*types.Gift, error)
	// ListByPersonID returns the person's gifts ordered newest first.
	ListByPersonID(ctx context.Context, tx *gorm.DB, personID uuid.UUID) ([]*types.Gift, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Gift, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, giftID uuid.UUID, fields map[string]any) error
	Delete(ctx context.Context, tx *gorm.DB, giftID uuid.UUID) error
}

type giftRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGiftRepo(db *gorm.DB, baseLog *logger.Logger) GiftRepo {
	repoLog := baseLog.With("repo", "GiftRepo")
	return &giftRepo{db: db, log: repoLog}
}

func (gr *giftRepo) Create(ctx context.Context, tx *gorm.DB, gifts []*types.Gift) ([]*types.Gift, error) {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}

	if len(gifts) == 0 {
		return []*types.Gift{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&gifts).Error; err != nil {
		return nil, err
	}

	return gifts, nil
}

func (gr *giftRepo) GetByIDs(ctx context.Context, tx *gorm.DB, giftIDs []uuid.UUID) ([]*types.Gift, error) {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}

	var results []*types.Gift
	if len(giftIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", giftIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (gr *giftRepo) ListByPersonID(ctx context.Context, tx *gorm.DB, personID uuid.UUID) ([]*types.Gift, error) {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}

	var results []*types.Gift
	if err := transaction.WithContext(ctx).
		Where("person_id = ?", personID).
		Order("received_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (gr *giftRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Gift, error) {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}

	var results []*types.Gift
	if err := transaction.WithContext(ctx).
		Order("received_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (gr *giftRepo) UpdateFields(ctx context.Context, tx *gorm.DB, giftID uuid.UUID, fields map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}
	if len(fields) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.Gift{}).
		Where("id = ?", giftID).
		Updates(fields).Error
}

func (gr *giftRepo) Delete(ctx context.Context, tx *gorm.DB, giftID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", giftID).
		Delete(&types.Gift{}).Error
}

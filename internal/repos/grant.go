package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fundrazor/fundrazor-backend/internal/pkg/logger"
	"github.com/fundrazor/fundrazor-backend/internal/types"
)

type GrantRepo interface {
	Create(ctx context.Context, tx *gorm.DB, grants []*types.Grant) ([]*types.Grant, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, grantIDs []uuid.UUID) ([]*types.Grant, error)
	List(ctx context.Context, tx *gorm.DB, status string) ([]*types.Grant, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, grantID uuid.UUID, fields map[string]any) error
	Delete(ctx context.Context, tx *gorm.DB, grantID uuid.UUID) error
}

type grantRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGrantRepo(db *gorm.DB, baseLog *logger.Logger) GrantRepo {
	repoLog := baseLog.With("repo", "GrantRepo")
	return &grantRepo{db: db, log: repoLog}
}

func (gr *grantRepo) Create(ctx context.Context, tx *gorm.DB, grants []*types.Grant) ([]*types.Grant, error) {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}

	if len(grants) == 0 {
		return []*types.Grant{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&grants).Error; err != nil {
		return nil, err
	}

	return grants, nil
}

func (gr *grantRepo) GetByIDs(ctx context.Context, tx *gorm.DB, grantIDs []uuid.UUID) ([]*types.Grant, error) {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}

	var results []*types.Grant
	if len(grantIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", grantIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (gr *grantRepo) List(ctx context.Context, tx *gorm.DB, status string) ([]*types.Grant, error) {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}

	query := transaction.WithContext(ctx).Model(&types.Grant{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var results []*types.Grant
	if err := query.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (gr *grantRepo) UpdateFields(ctx context.Context, tx *gorm.DB, grantID uuid.UUID, fields map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}
	if len(fields) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.Grant{}).
		Where("id = ?", grantID).
		Updates(fields).Error
}

func (gr *grantRepo) Delete(ctx context.Context, tx *gorm.DB, grantID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", grantID).
		Delete(&types.Grant{}).Error
}

package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "github.com/fundrazor/fundrazor-backend/internal/pkg/errors"
	"github.com/fundrazor/fundrazor-backend/internal/pkg/logger"
	"github.com/fundrazor/fundrazor-backend/internal/types"
)

type PersonRepo interface {
	Create(ctx context.Context, tx *gorm.DB, persons []*types.Person) ([]*types.Person, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, personIDs []uuid.UUID) ([]*types.Person, error)
	GetWithHistory(ctx context.Context, tx *gorm.DB, personID uuid.UUID) (*types.Person, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Person, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, personID uuid.UUID, fields map[string]any) error
	Delete(ctx context.Context, tx *gorm.DB, personID uuid.UUID) error
}

type personRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPersonRepo(db *gorm.DB, baseLog *logger.Logger) PersonRepo {
	repoLog := baseLog.With("repo", "PersonRepo")
	return &personRepo{db: db, log: repoLog}
}

func (pr *personRepo) Create(ctx context.Context, tx *gorm.DB, persons []*types.Person) ([]*types.Person, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if len(persons) == 0 {
		return []*types.Person{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&persons).Error; err != nil {
		return nil, err
	}

	return persons, nil
}

func (pr *personRepo) GetByIDs(ctx context.Context, tx *gorm.DB, personIDs []uuid.UUID) ([]*types.Person, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*types.Person

	if len(personIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", personIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *personRepo) GetWithHistory(ctx context.Context, tx *gorm.DB, personID uuid.UUID) (*types.Person, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var result types.Person
	if err := transaction.WithContext(ctx).
		Preload("Gifts", func(db *gorm.DB) *gorm.DB {
			return db.Order("received_at DESC")
		}).
		Preload("Interactions", func(db *gorm.DB) *gorm.DB {
			return db.Order("occurred_at DESC")
		}).
		Preload("Opportunities").
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Where("id = ?", personID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}

func (pr *personRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Person, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*types.Person
	if err := transaction.WithContext(ctx).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *personRepo) UpdateFields(ctx context.Context, tx *gorm.DB, personID uuid.UUID, fields map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if len(fields) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.Person{}).
		Where("id = ?", personID).
		Updates(fields).Error
}

func (pr *personRepo) Delete(ctx context.Context, tx *gorm.DB, personID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", personID).
		Delete(&types.Person{}).Error
}

package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fundrazor/fundrazor-backend/internal/pkg/logger"
	"github.com/fundrazor/fundrazor-backend/internal/types"
)

type MeetingNoteRepo interface {
	Create(ctx context.Context, tx *gorm.DB, notes []*types.MeetingNote) ([]*types.MeetingNote, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, noteIDs []uuid.UUID) ([]*types.MeetingNote, error)
	ListByPersonID(ctx context.Context, tx *gorm.DB, personID uuid.UUID) ([]*types.MeetingNote, error)
	Delete(ctx context.Context, tx *gorm.DB, noteID uuid.UUID) error
}

type meetingNoteRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMeetingNoteRepo(db *gorm.DB, baseLog *logger.Logger) MeetingNoteRepo {
	repoLog := baseLog.With("repo", "MeetingNoteRepo")
	return &meetingNoteRepo{db: db, log: repoLog}
}

func (mr *meetingNoteRepo) Create(ctx context.Context, tx *gorm.DB, notes []*types.MeetingNote) ([]*types.MeetingNote, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	if len(notes) == 0 {
		return []*types.MeetingNote{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&notes).Error; err != nil {
		return nil, err
	}

	return notes, nil
}

func (mr *meetingNoteRepo) GetByIDs(ctx context.Context, tx *gorm.DB, noteIDs []uuid.UUID) ([]*types.MeetingNote, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var results []*types.MeetingNote
	if len(noteIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", noteIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (mr *meetingNoteRepo) ListByPersonID(ctx context.Context, tx *gorm.DB, personID uuid.UUID) ([]*types.MeetingNote, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var results []*types.MeetingNote
	if err := transaction.WithContext(ctx).
		Where("person_id = ?", personID).
		Order("occurred_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (mr *meetingNoteRepo) Delete(ctx context.Context, tx *gorm.DB, noteID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", noteID).
		Delete(&types.MeetingNote{}).Error
}

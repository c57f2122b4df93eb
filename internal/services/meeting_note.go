package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fundrazor/fundrazor-backend/internal/pkg/logger"
	"github.com/fundrazor/fundrazor-backend/internal/repos"
	"github.com/fundrazor/fundrazor-backend/internal/types"
)

type MeetingNoteService interface {
	CreateMeetingNote(ctx context.Context, note *types.MeetingNote) (*types.MeetingNote, error)
	ListMeetingNotes(ctx context.Context, personID uuid.UUID) ([]*types.MeetingNote, error)
	DeleteMeetingNote(ctx context.Context, noteID uuid.UUID) error
}

type meetingNoteService struct {
	db              *gorm.DB
	log             *logger.Logger
	meetingNoteRepo repos.MeetingNoteRepo
	personRepo      repos.PersonRepo
}

func NewMeetingNoteService(db *gorm.DB, log *logger.Logger, meetingNoteRepo repos.MeetingNoteRepo, personRepo repos.PersonRepo) MeetingNoteService {
	serviceLog := log.With("service", "MeetingNoteService")
	return &meetingNoteService{
		db:              db,
		log:             serviceLog,
		meetingNoteRepo: meetingNoteRepo,
		personRepo:      personRepo,
	}
}

func (ms *meetingNoteService) CreateMeetingNote(ctx context.Context, note *types.MeetingNote) (*types.MeetingNote, error) {
	if note == nil {
		return nil, fmt.Errorf("meeting note required")
	}
	if note.PersonID == uuid.Nil {
		return nil, fmt.Errorf("person_id required")
	}
	if strings.TrimSpace(note.Body) == "" {
		return nil, fmt.Errorf("body required")
	}
	if note.Source == "" {
		note.Source = types.MeetingNoteManual
	}
	if note.Source != types.MeetingNoteManual && note.Source != types.MeetingNoteTranscription {
		return nil, fmt.Errorf("invalid source %q", note.Source)
	}
	if note.OccurredAt.IsZero() {
		return nil, fmt.Errorf("occurred_at required")
	}

	persons, err := ms.personRepo.GetByIDs(ctx, nil, []uuid.UUID{note.PersonID})
	if err != nil {
		return nil, fmt.Errorf("fetch person: %w", err)
	}
	if len(persons) == 0 {
		return nil, fmt.Errorf("person does not exist")
	}

	note.ID = uuid.New()
	created, err := ms.meetingNoteRepo.Create(ctx, nil, []*types.MeetingNote{note})
	if err != nil {
		return nil, fmt.Errorf("create meeting note: %w", err)
	}
	return created[0], nil
}

func (ms *meetingNoteService) ListMeetingNotes(ctx context.Context, personID uuid.UUID) ([]*types.MeetingNote, error) {
	return ms.meetingNoteRepo.ListByPersonID(ctx, nil, personID)
}

func (ms *meetingNoteService) DeleteMeetingNote(ctx context.Context, noteID uuid.UUID) error {
	return ms.meetingNoteRepo.Delete(ctx, nil, noteID)
}

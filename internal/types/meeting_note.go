package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MeetingNoteManual        = "manual"
	MeetingNoteTranscription = "transcription"
)

type MeetingNote struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	PersonID   uuid.UUID  `gorm:"type:uuid;not null;index;column:person_id" json:"person_id"`
	AuthorID   *uuid.UUID `gorm:"type:uuid;index;column:author_id" json:"author_id,omitempty"`
	Body       string     `gorm:"not null;column:body" json:"body"`
	Source     string     `gorm:"not null;default:'manual';column:source" json:"source"`
	OccurredAt time.Time  `gorm:"not null;column:occurred_at" json:"occurred_at"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (MeetingNote) TableName() string { return "meeting_note" }

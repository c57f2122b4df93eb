package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	InteractionMeeting    = "meeting"
	InteractionCall       = "call"
	InteractionEmail      = "email"
	InteractionEmailOpen  = "email_open"
	InteractionEmailClick = "email_click"
	InteractionEvent      = "event"
	InteractionNote       = "note"
	InteractionLetter     = "letter"
)

type Interaction struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	PersonID   uuid.UUID `gorm:"type:uuid;not null;index;column:person_id" json:"person_id"`
	Type       string    `gorm:"not null;column:type" json:"type"`
	Subject    string    `gorm:"column:subject" json:"subject"`
	Notes      string    `gorm:"column:notes" json:"notes"`
	OccurredAt time.Time `gorm:"not null;index;column:occurred_at" json:"occurred_at"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Interaction) TableName() string { return "interaction" }

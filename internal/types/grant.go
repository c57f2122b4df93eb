package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	GrantStatusProspect  = "prospect"
	GrantStatusApplied   = "applied"
	GrantStatusAwarded   = "awarded"
	GrantStatusDeclined  = "declined"
	GrantStatusReporting = "reporting"
	GrantStatusClosed    = "closed"
)

type Grant struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Funder      string     `gorm:"not null;column:funder" json:"funder"`
	PersonID    *uuid.UUID `gorm:"type:uuid;index;column:person_id" json:"person_id,omitempty"`
	Title       string     `gorm:"not null;column:title" json:"title"`
	Amount      string     `gorm:"type:numeric;column:amount" json:"amount"`
	Status      string     `gorm:"not null;default:'prospect';column:status" json:"status"`
	SubmittedAt *time.Time `gorm:"column:submitted_at" json:"submitted_at,omitempty"`
	ReportDue   *time.Time `gorm:"column:report_due" json:"report_due,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Grant) TableName() string { return "grant_award" }

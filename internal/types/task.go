package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Task is either created manually or generated by the next-best-action rules.
// Generated tasks carry RuleKey so the engine can tell whether an open task
// for the same rule and person already exists.
type Task struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	PersonID    uuid.UUID  `gorm:"type:uuid;not null;index;column:person_id" json:"person_id"`
	OwnerID     *uuid.UUID `gorm:"type:uuid;index;column:owner_id" json:"owner_id,omitempty"`
	Title       string     `gorm:"not null;column:title" json:"title"`
	Description string     `gorm:"column:description" json:"description"`
	Reason      string     `gorm:"column:reason" json:"reason"`
	Priority    string     `gorm:"not null;default:'medium';column:priority" json:"priority"`
	RuleKey     string     `gorm:"index;column:rule_key" json:"rule_key,omitempty"`
	DueDate     *time.Time `gorm:"column:due_date" json:"due_date,omitempty"`
	Completed   bool       `gorm:"not null;default:false;index;column:completed" json:"completed"`
	CompletedAt *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Task) TableName() string { return "task" }

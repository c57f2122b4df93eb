package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StageProspect    = "prospect"
	StageCultivation = "cultivation"
	StageAsk         = "ask"
	StageSteward     = "steward"
	StageRenewal     = "renewal"
)

type Opportunity struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	PersonID      uuid.UUID  `gorm:"type:uuid;not null;index;column:person_id" json:"person_id"`
	OwnerID       *uuid.UUID `gorm:"type:uuid;index;column:owner_id" json:"owner_id,omitempty"`
	Name          string     `gorm:"not null;column:name" json:"name"`
	Stage         string     `gorm:"not null;default:'prospect';column:stage" json:"stage"`
	AskAmount     string     `gorm:"type:numeric;column:ask_amount" json:"ask_amount"`
	Probability   int        `gorm:"not null;default:0;column:probability" json:"probability"`
	DaysInStage   int        `gorm:"not null;default:0;column:days_in_stage" json:"days_in_stage"`
	StageEnteredAt time.Time `gorm:"not null;default:now();column:stage_entered_at" json:"stage_entered_at"`
	ExpectedClose *time.Time `gorm:"column:expected_close" json:"expected_close,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Opportunity) TableName() string { return "opportunity" }

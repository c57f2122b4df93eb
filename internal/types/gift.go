package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	GiftTypeOneTime   = "one_time"
	GiftTypeMajor     = "major"
	GiftTypeRecurring = "recurring"
	GiftTypePlanned   = "planned"
	GiftTypePledge    = "pledge"
	GiftTypeInKind    = "in_kind"
)

// Gift amounts are stored as numeric and surfaced as decimal strings so no
// precision is lost summing lifetime giving.
type Gift struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	PersonID     uuid.UUID `gorm:"type:uuid;not null;index;column:person_id" json:"person_id"`
	Amount       string    `gorm:"type:numeric;not null;column:amount" json:"amount"`
	GiftType     string    `gorm:"not null;default:'one_time';column:gift_type" json:"gift_type"`
	Fund         string    `gorm:"column:fund" json:"fund"`
	ReceivedAt   time.Time `gorm:"not null;index;column:received_at" json:"received_at"`
	Acknowledged bool      `gorm:"not null;default:false;column:acknowledged" json:"acknowledged"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Gift) TableName() string { return "gift" }

package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Person is a donor/constituent record. The *_score fields and the giving
// summary are recomputed by the scoring service from the person's gifts and
// interactions; relationship_energy and relationship_structure are set by
// gift officers directly.
type Person struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	FirstName string    `gorm:"not null;column:first_name" json:"first_name"`
	LastName  string    `gorm:"not null;column:last_name" json:"last_name"`
	Email     string    `gorm:"index;column:email" json:"email"`
	Phone     string    `gorm:"column:phone" json:"phone"`
	City      string    `gorm:"column:city" json:"city"`
	State     string    `gorm:"column:state" json:"state"`

	RelationshipEnergy    int `gorm:"not null;default:0;column:relationship_energy" json:"relationship_energy"`
	RelationshipStructure int `gorm:"not null;default:0;column:relationship_structure" json:"relationship_structure"`

	EngagementScore int `gorm:"not null;default:0;column:engagement_score" json:"engagement_score"`
	CapacityScore   int `gorm:"not null;default:0;column:capacity_score" json:"capacity_score"`
	AffinityScore   int `gorm:"not null;default:0;column:affinity_score" json:"affinity_score"`

	LastGiftDate        *time.Time `gorm:"column:last_gift_date" json:"last_gift_date,omitempty"`
	LastGiftAmount      string     `gorm:"type:numeric;column:last_gift_amount" json:"last_gift_amount"`
	TotalLifetimeGiving string     `gorm:"type:numeric;not null;default:0;column:total_lifetime_giving" json:"total_lifetime_giving"`

	Gifts         []Gift        `gorm:"foreignKey:PersonID" json:"gifts,omitempty"`
	Interactions  []Interaction `gorm:"foreignKey:PersonID" json:"interactions,omitempty"`
	Opportunities []Opportunity `gorm:"foreignKey:PersonID" json:"opportunities,omitempty"`
	Tasks         []Task        `gorm:"foreignKey:PersonID" json:"tasks,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Person) TableName() string { return "person" }

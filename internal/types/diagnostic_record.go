package types

import (
	"time"

	"github.com/google/uuid"
)

// DiagnosticRecord is one row per form submission. SubmissionID is the
// external reference generated once at creation; Narrative is written later
// by the enrichment callback and stays nil until then.
type DiagnosticRecord struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SubmissionID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null;column:submission_id" json:"submission_id"`

	Name  string  `gorm:"not null;column:name" json:"name"`
	Email string  `gorm:"not null;index;column:email" json:"email"`
	Phone *string `gorm:"column:phone" json:"phone,omitempty"`

	ClarityDirection       float64 `gorm:"not null;column:clarity_direction" json:"clarity_direction"`
	EmotionalMastery       float64 `gorm:"not null;column:emotional_mastery" json:"emotional_mastery"`
	EnergyFocus            float64 `gorm:"not null;column:energy_focus" json:"energy_focus"`
	SelfLeadership         float64 `gorm:"not null;column:self_leadership" json:"self_leadership"`
	InfluenceCommunication float64 `gorm:"not null;column:influence_communication" json:"influence_communication"`
	ChangeAdaptability     float64 `gorm:"not null;column:change_adaptability" json:"change_adaptability"`

	WeakestPillar string                `gorm:"not null;column:weakest_pillar" json:"weakest_pillar"`
	TrainingID    uuid.UUID             `gorm:"type:uuid;not null;index;column:training_id" json:"training_id"`
	Training      *TrainingCatalogEntry `gorm:"foreignKey:TrainingID;references:ID" json:"training,omitempty"`

	Narrative *string `gorm:"type:text;column:narrative" json:"narrative,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (DiagnosticRecord) TableName() string { return "diagnostic_record" }

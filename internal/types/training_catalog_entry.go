package types

import (
	"time"

	"github.com/google/uuid"
)

// TrainingCatalogEntry maps a pillar key to the recommended training. The
// table is reference data, seeded at startup and read-only afterwards.
type TrainingCatalogEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PillarKey string    `gorm:"uniqueIndex;not null;column:pillar_key" json:"pillar_key"`
	Title     string    `gorm:"not null;column:title" json:"title"`
	EmbedURL  string    `gorm:"not null;column:embed_url" json:"embed_url"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (TrainingCatalogEntry) TableName() string { return "training_catalog" }

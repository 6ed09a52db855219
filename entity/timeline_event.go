package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// TimelineEvent rows keep the user's entry order in DisplayOrder, but the
// viewer sorts by EventDate.
type TimelineEvent struct {
	ID           uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	MemorialID   uuid.UUID      `json:"memorial_id" gorm:"type:uuid;not null;index"`
	EventDate    datatypes.Date `json:"event_date" gorm:"not null"`
	Description  string         `json:"description" gorm:"type:text;not null"`
	DisplayOrder int            `json:"display_order" gorm:"not null;default:0"`
	CreatedAt    time.Time      `json:"created_at" gorm:"not null;autoCreateTime"`

	Memorial *Memorial `json:"memorial,omitempty" gorm:"foreignKey:MemorialID;constraint:OnDelete:CASCADE"`
}

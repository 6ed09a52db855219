package entity

import (
	"time"

	"github.com/google/uuid"
)

type MemorialPhoto struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	MemorialID   uuid.UUID `json:"memorial_id" gorm:"type:uuid;not null;index"`
	PhotoURL     string    `json:"photo_url" gorm:"type:varchar(1024);not null"`
	DisplayOrder int       `json:"display_order" gorm:"not null;default:0"`
	CreatedAt    time.Time `json:"created_at" gorm:"not null;autoCreateTime"`

	Memorial *Memorial `json:"memorial,omitempty" gorm:"foreignKey:MemorialID;constraint:OnDelete:CASCADE"`
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

// Tribute is a visitor guestbook message. Append-only.
type Tribute struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	MemorialID uuid.UUID `json:"memorial_id" gorm:"type:uuid;not null;index"`
	AuthorName string    `json:"author_name" gorm:"type:varchar(255);not null"`
	Message    string    `json:"message" gorm:"type:text;not null"`
	CreatedAt  time.Time `json:"created_at" gorm:"not null;autoCreateTime"`

	Memorial *Memorial `json:"memorial,omitempty" gorm:"foreignKey:MemorialID;constraint:OnDelete:CASCADE"`
}

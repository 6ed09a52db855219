package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Memorial is the aggregate root for one tribute page. Photos, timeline
// events and tributes reference it by foreign key.
type Memorial struct {
	ID               uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	Slug             string         `json:"slug" gorm:"type:varchar(255);not null;uniqueIndex"`
	Name             string         `json:"name" gorm:"type:varchar(255);not null"`
	BirthDate        datatypes.Date `json:"birth_date" gorm:"not null"`
	DeathDate        datatypes.Date `json:"death_date" gorm:"not null"`
	BriefDescription string         `json:"brief_description" gorm:"type:text"`
	LifeStory        string         `json:"life_story" gorm:"type:text"`
	BackgroundImage  string         `json:"background_image" gorm:"type:varchar(1024)"`
	ProfileImage     string         `json:"profile_image" gorm:"type:varchar(1024)"`
	MusicFile        string         `json:"music_file" gorm:"type:varchar(1024)"`
	MusicName        string         `json:"music_name" gorm:"type:varchar(255)"`
	CreatedAt        time.Time      `json:"created_at" gorm:"not null;autoCreateTime"`
	UpdatedAt        time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
}

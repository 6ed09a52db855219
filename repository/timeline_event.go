package repository

import (
	"github.com/google/uuid"
	"github.com/memoria-viva/memorial-service/entity"
	"gorm.io/gorm"
)

type TimelineEventRepository struct {
	db *gorm.DB
}

func NewTimelineEventRepository(db *gorm.DB) *TimelineEventRepository {
	return &TimelineEventRepository{db: db}
}

func (r *TimelineEventRepository) Create(event *entity.TimelineEvent) error {
	return r.db.Create(event).Error
}

// FindByMemorialID orders by event date, not by display order: the page
// presents a chronological timeline regardless of entry order.
func (r *TimelineEventRepository) FindByMemorialID(memorialID uuid.UUID) ([]entity.TimelineEvent, error) {
	var events []entity.TimelineEvent
	err := r.db.Where("memorial_id = ?", memorialID).Order("event_date ASC").Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

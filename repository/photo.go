package repository

import (
	"github.com/google/uuid"
	"github.com/memoria-viva/memorial-service/entity"
	"gorm.io/gorm"
)

type PhotoRepository struct {
	db *gorm.DB
}

func NewPhotoRepository(db *gorm.DB) *PhotoRepository {
	return &PhotoRepository{db: db}
}

func (r *PhotoRepository) Create(photo *entity.MemorialPhoto) error {
	return r.db.Create(photo).Error
}

func (r *PhotoRepository) FindByMemorialID(memorialID uuid.UUID) ([]entity.MemorialPhoto, error) {
	var photos []entity.MemorialPhoto
	err := r.db.Where("memorial_id = ?", memorialID).Order("display_order ASC").Find(&photos).Error
	if err != nil {
		return nil, err
	}
	return photos, nil
}

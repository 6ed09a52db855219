package repository

import (
	"github.com/google/uuid"
	"github.com/memoria-viva/memorial-service/entity"
	"gorm.io/gorm"
)

type TributeRepository struct {
	db *gorm.DB
}

func NewTributeRepository(db *gorm.DB) *TributeRepository {
	return &TributeRepository{db: db}
}

func (r *TributeRepository) Create(tribute *entity.Tribute) error {
	return r.db.Create(tribute).Error
}

// FindByMemorialID returns tributes most-recent first.
func (r *TributeRepository) FindByMemorialID(memorialID uuid.UUID) ([]entity.Tribute, error) {
	var tributes []entity.Tribute
	err := r.db.Where("memorial_id = ?", memorialID).Order("created_at DESC").Find(&tributes).Error
	if err != nil {
		return nil, err
	}
	return tributes, nil
}

func (r *TributeRepository) CountByMemorialID(memorialID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&entity.Tribute{}).Where("memorial_id = ?", memorialID).Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

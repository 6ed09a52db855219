package repository

import (
	"github.com/google/uuid"
	"github.com/memoria-viva/memorial-service/entity"
	"gorm.io/gorm"
)

type MemorialRepository struct {
	db *gorm.DB
}

func NewMemorialRepository(db *gorm.DB) *MemorialRepository {
	return &MemorialRepository{db: db}
}

func (r *MemorialRepository) Create(memorial *entity.Memorial) error {
	return r.db.Create(memorial).Error
}

func (r *MemorialRepository) FindByID(id uuid.UUID) (*entity.Memorial, error) {
	var memorial entity.Memorial
	err := r.db.Where("id = ?", id).First(&memorial).Error
	if err != nil {
		return nil, err
	}
	return &memorial, nil
}

// FindBySlug returns gorm.ErrRecordNotFound when no memorial matches, which
// callers surface as a not-found state rather than a generic failure.
func (r *MemorialRepository) FindBySlug(slug string) (*entity.Memorial, error) {
	var memorial entity.Memorial
	err := r.db.Where("slug = ?", slug).First(&memorial).Error
	if err != nil {
		return nil, err
	}
	return &memorial, nil
}

func (r *MemorialRepository) ExistsBySlug(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&entity.Memorial{}).Where("slug = ?", slug).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *MemorialRepository) Update(memorial *entity.Memorial) error {
	return r.db.Save(memorial).Error
}

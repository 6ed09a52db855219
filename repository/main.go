package repository

import (
	"github.com/memoria-viva/memorial-service/infra"
	"gorm.io/gorm"
)

type Repository struct {
	MemorialRepo *MemorialRepository
	PhotoRepo    *PhotoRepository
	TimelineRepo *TimelineEventRepository
	TributeRepo  *TributeRepository
}

var repository *Repository

func InitRepository(infra *infra.Infra) *Repository {
	repository = &Repository{
		MemorialRepo: NewMemorialRepository(infra.Postgres.DB),
		PhotoRepo:    NewPhotoRepository(infra.Postgres.DB),
		TimelineRepo: NewTimelineEventRepository(infra.Postgres.DB),
		TributeRepo:  NewTributeRepository(infra.Postgres.DB),
	}
	return repository
}

func GetRepository() *Repository {
	if repository == nil {
		panic("repository not initialized")
	}
	return repository
}

func (r *Repository) BeginTransaction(db *gorm.DB) *gorm.DB {
	return db.Begin()
}

func (r *Repository) WithTransaction(tx *gorm.DB) *Repository {
	return &Repository{
		MemorialRepo: NewMemorialRepository(tx),
		PhotoRepo:    NewPhotoRepository(tx),
		TimelineRepo: NewTimelineEventRepository(tx),
		TributeRepo:  NewTributeRepository(tx),
	}
}

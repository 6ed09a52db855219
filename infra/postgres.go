package infra

import (
	"fmt"
	"log"

	"github.com/memoria-viva/memorial-service/config"
	"github.com/memoria-viva/memorial-service/entity"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type PostgresClient struct {
	DB *gorm.DB
}

func InitPostgresClient(cfg *config.EnvConfig) *PostgresClient {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.Postgres.HOST,
		cfg.Postgres.Username,
		cfg.Postgres.Password,
		cfg.Postgres.Database,
		cfg.Postgres.Port,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to Postgres: %v", err))
	}

	err = db.AutoMigrate(
		&entity.Memorial{},
		&entity.MemorialPhoto{},
		&entity.TimelineEvent{},
		&entity.Tribute{},
	)
	if err != nil {
		panic(fmt.Sprintf("Failed to migrate database schema: %v", err))
	}

	log.Println("Connected to Postgres:", cfg.Postgres.HOST+":"+cfg.Postgres.Port)

	return &PostgresClient{DB: db}
}

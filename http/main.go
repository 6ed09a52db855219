package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/memoria-viva/memorial-service/config"
	"github.com/memoria-viva/memorial-service/http/controller"
	routes "github.com/memoria-viva/memorial-service/http/route"
	infraPkg "github.com/memoria-viva/memorial-service/infra"
	"github.com/memoria-viva/memorial-service/repository"
)

func main() {
	err := godotenv.Load("staging.env")
	if err != nil {
		log.Println("No .env file found, continuing with environment variables")
	}

	cfg := config.NewConfig()
	infra := infraPkg.InitInfra(cfg)
	repo := repository.InitRepository(infra)

	// Asset buckets must exist and be publicly readable before any upload
	ctx := context.Background()
	store := infra.Storage()
	for _, bucket := range []string{cfg.EnvConfig.Storage.ImageBucket, cfg.EnvConfig.Storage.AudioBucket} {
		if err := store.EnsureBucket(ctx, bucket); err != nil {
			log.Fatalf("Failed to ensure bucket %s: %v", bucket, err)
		}
		if err := store.SetBucketPublic(ctx, bucket); err != nil {
			log.Fatalf("Failed to set public policy on bucket %s: %v", bucket, err)
		}
	}

	ctrl := controller.NewController(cfg, infra, repo)

	router := routes.SetupRouter(ctrl)

	log.Println("HTTP Server started on :8080")
	if err := router.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

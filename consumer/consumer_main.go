package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/memoria-viva/memorial-service/config"
	"github.com/memoria-viva/memorial-service/consumer/worker"
	infraPkg "github.com/memoria-viva/memorial-service/infra"
	"github.com/memoria-viva/memorial-service/repository"
)

func main() {
	err := godotenv.Load("../staging.env")
	if err != nil {
		log.Println("No .env file found, continuing with environment variables")
	}

	cfg := config.NewConfig()
	infra := infraPkg.InitInfra(cfg)
	repo := repository.InitRepository(infra)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tributeConsumer := worker.NewTributeConsumer(infra.RabbitMQ.Channel, infra, repo)
	if err := tributeConsumer.Start(ctx); err != nil {
		infra.Logger.ErrorWithContextf(ctx, err, "Failed to start tribute consumer: %v", err)
		log.Fatalf("Failed to start tribute consumer: %v", err)
	}

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	infra.Logger.InfoWithContextf(ctx, "Shutting down consumer...")
	cancel()

	infra.Logger.InfoWithContextf(ctx, "Consumer exited properly")
}

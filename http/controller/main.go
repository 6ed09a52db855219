package controller

import (
	"fmt"

	"github.com/memoria-viva/memorial-service/config"
	"github.com/memoria-viva/memorial-service/infra"
	"github.com/memoria-viva/memorial-service/repository"
	"github.com/memoria-viva/memorial-service/workflow"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

type Controller struct {
	Config     *config.Config
	Infra      *infra.Infra
	Repository *repository.Repository
	Assembly   *workflow.Assembly

	memorialsCreated metric.Int64Counter
}

func NewController(config *config.Config, infra *infra.Infra, repo *repository.Repository) *Controller {
	if repo == nil {
		panic("Failed to initialize Repository")
	}

	assembly := &workflow.Assembly{
		Uploader:    infra.Storage(),
		Memorials:   repo.MemorialRepo,
		Photos:      repo.PhotoRepo,
		Timeline:    repo.TimelineRepo,
		ImageBucket: config.EnvConfig.Storage.ImageBucket,
		AudioBucket: config.EnvConfig.Storage.AudioBucket,
	}

	memorialsCreated, err := otel.Meter("memorial.http").Int64Counter(
		"memorials_created_total",
		metric.WithDescription("Number of memorials successfully assembled"),
	)
	if err != nil {
		panic(fmt.Sprintf("Failed to create memorials counter: %v", err))
	}

	return &Controller{
		Config:           config,
		Infra:            infra,
		Repository:       repo,
		Assembly:         assembly,
		memorialsCreated: memorialsCreated,
	}
}

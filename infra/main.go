package infra

import (
	"context"
	"io"

	"github.com/memoria-viva/memorial-service/config"
	"github.com/memoria-viva/memorial-service/infra/produce"
)

// ObjectStorage is the asset-store surface shared by the MinIO and
// S3-compatible drivers.
type ObjectStorage interface {
	Upload(ctx context.Context, bucketName, objectPath string, reader io.Reader, size int64, contentType string) (string, error)
	PublicURL(bucketName, objectPath string) string
	EnsureBucket(ctx context.Context, bucketName string) error
	SetBucketPublic(ctx context.Context, bucketName string) error
}

type Infra struct {
	Redis                *RedisClient
	Postgres             *PostgresClient
	Logger               *LoggerClient
	RabbitMQ             *RabbitMQClient
	AuthorizationService *AuthorizationService
	Produce              *produce.Produce
	Minio                *MinioClient
	S3                   *S3Client
}

// Storage returns the active asset-store driver. MinIO unless the
// S3-compatible driver was selected at startup.
func (i *Infra) Storage() ObjectStorage {
	if i.S3 != nil {
		return i.S3
	}
	return i.Minio
}

var infraInstance *Infra

func InitInfra(cfg *config.Config) *Infra {
	if infraInstance != nil {
		return infraInstance
	}

	redis := InitRedisClient(cfg.EnvConfig)
	if redis == nil {
		panic("Failed to initialize Redis service")
	}

	postgres := InitPostgresClient(cfg.EnvConfig)
	if postgres == nil {
		panic("Failed to initialize Postgres service")
	}

	logger := InitLoggerClient(cfg.EnvConfig)
	if logger == nil {
		panic("Failed to initialize Logger service")
	}

	rabbitMQ := InitRabbitMQClient(cfg.EnvConfig)
	if rabbitMQ == nil {
		panic("Failed to initialize RabbitMQ service")
	}

	// Authorization service is optional - nil means local JWT verification only
	authorizationService := InitAuthorizationService(cfg.EnvConfig)

	produceService := produce.InitProduce(rabbitMQ.Channel)
	if produceService == nil {
		panic("Failed to initialize Produce service")
	}

	minio := InitMinioClient(cfg.EnvConfig)
	if minio == nil {
		panic("Failed to initialize MinIO service")
	}

	// Uploads go through the S3-compatible driver when selected; the MinIO
	// client stays up regardless for the admin health probe.
	var s3Client *S3Client
	if cfg.EnvConfig.Storage.Driver == "s3" {
		s3Client = InitS3Client(cfg.EnvConfig)
	}

	infraInstance = &Infra{
		Redis:                redis,
		Postgres:             postgres,
		Logger:               logger,
		RabbitMQ:             rabbitMQ,
		AuthorizationService: authorizationService,
		Produce:              produceService,
		Minio:                minio,
		S3:                   s3Client,
	}

	return infraInstance
}

func GetClient() *Infra {
	if infraInstance == nil {
		panic("Infra not initialized. Call InitInfra() first.")
	}
	return infraInstance
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type EnvConfig struct {
	Postgres struct {
		HOST     string
		Database string
		Username string
		Password string
		Port     string
	}
	JWT struct {
		SecretKey string
		Algorithm string
		Expire    int
	}
	CORS struct {
		AllowDomains string
		GlobalDomain string
	}
	Redis struct {
		Password  string
		Database  int
		RedisHost string
		RedisPort string
	}
	RabbitMQ struct {
		Host     string
		Port     string
		Username string
		Password string
	}
	Minio struct {
		Endpoint     string
		RootUser     string
		RootPassword string
		UseSSL       bool
	}
	Storage struct {
		Driver      string // "minio" (default) or "s3" for S3-compatible stores like Garage
		S3Region    string
		ImageBucket string // backgrounds, portraits and memory photos
		AudioBucket string // background music files
	}
	ExternalService struct {
		AuthorizationServiceURL string
		CDNServiceURL           string
	}
	Grafana struct {
		OTLPEndpoint string
		ServiceName  string
	}
	PrivateKey string

	Environment struct {
		Mode  string
		Group string
	}
	DomainName string
}

func LoadEnvConfig() *EnvConfig {
	var config EnvConfig

	// Postgres
	config.Postgres.HOST = os.Getenv("PGPOOL_HOST")
	config.Postgres.Database = os.Getenv("PGPOOL_DB")
	config.Postgres.Username = os.Getenv("PGPOOL_USER")
	config.Postgres.Password = os.Getenv("PGPOOL_PASSWORD")
	config.Postgres.Port = os.Getenv("PGPOOL_PORT")

	// JWT
	config.JWT.SecretKey = os.Getenv("JWT_SECRET_KEY")
	config.JWT.Algorithm = os.Getenv("JWT_ALGORITHM")

	if val := os.Getenv("JWT_EXPIRE"); val != "" {
		fmt.Sscanf(val, "%d", &config.JWT.Expire)
	} else {
		config.JWT.Expire = 3600 * 24 * 7
	}

	config.CORS.AllowDomains = os.Getenv("ALLOWED_DOMAINS")
	config.CORS.GlobalDomain = os.Getenv("GLOBAL_DOMAIN")

	config.Redis.Password = os.Getenv("REDIS_PASSWORD")
	config.Redis.Database, _ = strconv.Atoi(os.Getenv("REDIS_DB"))
	config.Redis.RedisHost = os.Getenv("REDIS_HOST")
	config.Redis.RedisPort = os.Getenv("REDIS_PORT")

	// RabbitMQ
	config.RabbitMQ.Host = os.Getenv("RABBITMQ_HOST")
	if config.RabbitMQ.Host == "" {
		config.RabbitMQ.Host = "localhost"
	}
	config.RabbitMQ.Port = os.Getenv("RABBITMQ_PORT")
	if config.RabbitMQ.Port == "" {
		config.RabbitMQ.Port = "5672"
	}
	config.RabbitMQ.Username = os.Getenv("RABBITMQ_USER")
	if config.RabbitMQ.Username == "" {
		config.RabbitMQ.Username = "guest"
	}
	config.RabbitMQ.Password = os.Getenv("RABBITMQ_PASSWORD")
	if config.RabbitMQ.Password == "" {
		config.RabbitMQ.Password = "guest"
	}

	config.Minio.Endpoint = os.Getenv("MINIO_ENDPOINT")
	config.Minio.RootUser = os.Getenv("MINIO_ROOT_USER")
	config.Minio.RootPassword = os.Getenv("MINIO_ROOT_PASSWORD")
	config.Minio.UseSSL = os.Getenv("MINIO_USE_SSL") == "true"

	// Storage driver and buckets for memorial assets
	config.Storage.Driver = os.Getenv("STORAGE_DRIVER")
	if config.Storage.Driver == "" {
		config.Storage.Driver = "minio"
	}
	config.Storage.S3Region = os.Getenv("S3_REGION")
	if config.Storage.S3Region == "" {
		config.Storage.S3Region = "garage"
	}
	config.Storage.ImageBucket = os.Getenv("MEMORIAL_IMAGE_BUCKET")
	if config.Storage.ImageBucket == "" {
		config.Storage.ImageBucket = "memorial-images"
	}
	config.Storage.AudioBucket = os.Getenv("MEMORIAL_AUDIO_BUCKET")
	if config.Storage.AudioBucket == "" {
		config.Storage.AudioBucket = "memorial-audio"
	}

	config.PrivateKey = os.Getenv("PRIVATE_KEY")

	config.ExternalService.AuthorizationServiceURL = os.Getenv("AUTHORIZATION_SERVICE_URL")
	config.ExternalService.CDNServiceURL = os.Getenv("CDN_SERVICE_URL")

	// Grafana/OpenTelemetry
	grafanaEndpoint := os.Getenv("GRAFANA_OTLP_ENDPOINT")
	// Remove protocol for OpenTelemetry client to avoid duplicate protocols
	if strings.HasPrefix(grafanaEndpoint, "https://") {
		config.Grafana.OTLPEndpoint = strings.TrimPrefix(grafanaEndpoint, "https://")
	} else if strings.HasPrefix(grafanaEndpoint, "http://") {
		config.Grafana.OTLPEndpoint = strings.TrimPrefix(grafanaEndpoint, "http://")
	} else {
		config.Grafana.OTLPEndpoint = grafanaEndpoint
	}
	config.Grafana.ServiceName = os.Getenv("SERVICE_NAME")
	if config.Grafana.ServiceName == "" {
		config.Grafana.ServiceName = "memorial-service"
	}

	config.Environment.Mode = os.Getenv("DEPLOY_ENV")
	if config.Environment.Mode == "" {
		config.Environment.Mode = "development"
	}

	config.Environment.Group = os.Getenv("GROUP_NAME")
	if config.Environment.Group == "" {
		config.Environment.Group = "local"
	}

	config.DomainName = os.Getenv("DOMAIN_NAME")
	if config.DomainName == "" {
		config.DomainName = "localhost:8080"
	}

	return &config
}

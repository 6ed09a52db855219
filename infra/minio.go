package infra

import (
	"context"
	"fmt"
	"io"

	"github.com/memoria-viva/memorial-service/config"
	"github.com/minio/madmin-go/v3"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioClient is the asset uploader: memorial images and audio go into
// public-read buckets and are served back by URL.
type MinioClient struct {
	Admin      *madmin.AdminClient
	Client     *minio.Client
	Endpoint   string
	UseSSL     bool
	CDNBaseURL string
}

func InitMinioClient(cfg *config.EnvConfig) *MinioClient {
	endpoint := cfg.Minio.Endpoint
	if endpoint == "" {
		panic("MinIO endpoint is not configured")
	}

	rootUser := cfg.Minio.RootUser
	if rootUser == "" {
		panic("MinIO root user is not configured")
	}

	rootPassword := cfg.Minio.RootPassword
	if rootPassword == "" {
		panic("MinIO root password is not configured")
	}

	madminClient, err := madmin.New(endpoint, rootUser, rootPassword, cfg.Minio.UseSSL)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize MinIO admin client: %v", err))
	}

	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(rootUser, rootPassword, ""),
		Secure: cfg.Minio.UseSSL,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize MinIO client: %v", err))
	}

	return &MinioClient{
		Admin:      madminClient,
		Client:     minioClient,
		Endpoint:   endpoint,
		UseSSL:     cfg.Minio.UseSSL,
		CDNBaseURL: cfg.ExternalService.CDNServiceURL,
	}
}

// Upload stores the object at the given path with overwrite-allowed semantics
// and returns its publicly resolvable URL.
func (m *MinioClient) Upload(ctx context.Context, bucketName, objectPath string, reader io.Reader, size int64, contentType string) (string, error) {
	if bucketName == "" || objectPath == "" {
		return "", fmt.Errorf("bucketName and objectPath cannot be empty")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := m.Client.PutObject(ctx, bucketName, objectPath, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object %s/%s: %w", bucketName, objectPath, err)
	}

	return m.PublicURL(bucketName, objectPath), nil
}

// PublicURL resolves a stored path into a browser-reachable URL, preferring
// the CDN when one is configured.
func (m *MinioClient) PublicURL(bucketName, objectPath string) string {
	if m.CDNBaseURL != "" {
		return fmt.Sprintf("%s/%s/%s", m.CDNBaseURL, bucketName, objectPath)
	}
	scheme := "http"
	if m.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, m.Endpoint, bucketName, objectPath)
}

// BucketExists checks if a bucket exists in MinIO
func (m *MinioClient) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	if bucketName == "" {
		return false, fmt.Errorf("bucketName cannot be empty")
	}

	exists, err := m.Client.BucketExists(ctx, bucketName)
	if err != nil {
		return false, fmt.Errorf("failed to check bucket existence: %w", err)
	}

	return exists, nil
}

// EnsureBucket creates a bucket if it doesn't exist
func (m *MinioClient) EnsureBucket(ctx context.Context, bucketName string) error {
	exists, err := m.BucketExists(ctx, bucketName)
	if err != nil {
		return err
	}

	if !exists {
		err = m.Client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: "us-east-1"})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

// SetBucketPublic allows anonymous read access so memorial pages can embed
// stored assets directly by URL.
func (m *MinioClient) SetBucketPublic(ctx context.Context, bucketName string) error {
	if bucketName == "" {
		return fmt.Errorf("bucketName cannot be empty")
	}

	policyJSON := fmt.Sprintf(`{
		"Version": "2012-10-17",
		"Statement": [
			{
				"Effect": "Allow",
				"Principal": {"AWS": ["*"]},
				"Action": ["s3:GetObject"],
				"Resource": ["arn:aws:s3:::%s/*"]
			},
			{
				"Effect": "Allow",
				"Principal": {"AWS": ["*"]},
				"Action": ["s3:ListBucket"],
				"Resource": ["arn:aws:s3:::%s"]
			}
		]
	}`, bucketName, bucketName)

	err := m.Client.SetBucketPolicy(ctx, bucketName, policyJSON)
	if err != nil {
		return fmt.Errorf("failed to set bucket policy: %w", err)
	}

	return nil
}

// ServerHealthy probes the storage backend through the admin API.
func (m *MinioClient) ServerHealthy(ctx context.Context) error {
	_, err := m.Admin.ServerInfo(ctx)
	if err != nil {
		return fmt.Errorf("storage server is unreachable: %w", err)
	}
	return nil
}

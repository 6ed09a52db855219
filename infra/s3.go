package infra

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	appConfig "github.com/memoria-viva/memorial-service/config"
)

// S3Client is the alternative asset uploader for S3-compatible stores such as
// Garage. Selected with STORAGE_DRIVER=s3; it reuses the MinIO credentials
// since both drivers point at the same deployment's object store.
type S3Client struct {
	Client     *s3.Client
	Endpoint   string
	Region     string
	UseSSL     bool
	CDNBaseURL string
}

func InitS3Client(cfg *appConfig.EnvConfig) *S3Client {
	endpoint := cfg.Minio.Endpoint
	if endpoint == "" {
		panic("S3 endpoint is not configured")
	}

	accessKey := cfg.Minio.RootUser
	if accessKey == "" {
		panic("S3 access key is not configured")
	}

	secretKey := cfg.Minio.RootPassword
	if secretKey == "" {
		panic("S3 secret key is not configured")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Storage.S3Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		),
	)
	if err != nil {
		panic(fmt.Sprintf("Failed to load S3 configuration: %v", err))
	}

	scheme := "http"
	if cfg.Minio.UseSSL {
		scheme = "https"
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(scheme + "://" + endpoint)
		// Garage and MinIO resolve buckets by path, not by virtual host
		o.UsePathStyle = true
	})

	return &S3Client{
		Client:     client,
		Endpoint:   endpoint,
		Region:     cfg.Storage.S3Region,
		UseSSL:     cfg.Minio.UseSSL,
		CDNBaseURL: cfg.ExternalService.CDNServiceURL,
	}
}

// Upload stores the object at the given path and returns its publicly
// resolvable URL. Same contract as the MinIO uploader.
func (s *S3Client) Upload(ctx context.Context, bucketName, objectPath string, reader io.Reader, size int64, contentType string) (string, error) {
	if bucketName == "" || objectPath == "" {
		return "", fmt.Errorf("bucketName and objectPath cannot be empty")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucketName),
		Key:           aws.String(objectPath),
		Body:          reader,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object %s/%s: %w", bucketName, objectPath, err)
	}

	return s.PublicURL(bucketName, objectPath), nil
}

// PublicURL resolves a stored path into a browser-reachable URL, preferring
// the CDN when one is configured.
func (s *S3Client) PublicURL(bucketName, objectPath string) string {
	if s.CDNBaseURL != "" {
		return fmt.Sprintf("%s/%s/%s", s.CDNBaseURL, bucketName, objectPath)
	}
	scheme := "http"
	if s.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.Endpoint, bucketName, objectPath)
}

// EnsureBucket creates a bucket if it doesn't exist
func (s *S3Client) EnsureBucket(ctx context.Context, bucketName string) error {
	if bucketName == "" {
		return fmt.Errorf("bucketName cannot be empty")
	}

	input := &s3.CreateBucketInput{Bucket: aws.String(bucketName)}
	if s.Region != "" && s.Region != "us-east-1" {
		input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(s.Region),
		}
	}

	_, err := s.Client.CreateBucket(ctx, input)
	if err != nil {
		var owned *types.BucketAlreadyOwnedByYou
		var exists *types.BucketAlreadyExists
		if errors.As(err, &owned) || errors.As(err, &exists) {
			return nil
		}
		return fmt.Errorf("failed to create bucket: %w", err)
	}

	return nil
}

// SetBucketPublic allows anonymous read access so memorial pages can embed
// stored assets directly by URL.
func (s *S3Client) SetBucketPublic(ctx context.Context, bucketName string) error {
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

	_, err := s.Client.PutBucketPolicy(ctx, &s3.PutBucketPolicyInput{
		Bucket: aws.String(bucketName),
		Policy: aws.String(policyJSON),
	})
	if err != nil {
		return fmt.Errorf("failed to set bucket policy: %w", err)
	}

	return nil
}

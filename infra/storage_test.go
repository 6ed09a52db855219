package infra

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Both drivers must expose the same asset-store surface.
var (
	_ ObjectStorage = (*MinioClient)(nil)
	_ ObjectStorage = (*S3Client)(nil)
)

func TestStorageSelectsS3DriverWhenConfigured(t *testing.T) {
	minio := &MinioClient{Endpoint: "minio:9000"}
	s3 := &S3Client{Endpoint: "garage:3900"}

	infra := &Infra{Minio: minio}
	assert.Same(t, minio, infra.Storage().(*MinioClient))

	infra.S3 = s3
	assert.Same(t, s3, infra.Storage().(*S3Client))
}

func TestMinioPublicURL(t *testing.T) {
	m := &MinioClient{Endpoint: "storage.example.com", UseSSL: true}
	assert.Equal(t,
		"https://storage.example.com/memorial-images/joao/profile-1.jpg",
		m.PublicURL("memorial-images", "joao/profile-1.jpg"))

	m.CDNBaseURL = "https://cdn.example.com"
	assert.Equal(t,
		"https://cdn.example.com/memorial-images/joao/profile-1.jpg",
		m.PublicURL("memorial-images", "joao/profile-1.jpg"))
}

func TestS3PublicURL(t *testing.T) {
	s := &S3Client{Endpoint: "garage:3900"}
	assert.Equal(t,
		"http://garage:3900/memorial-audio/joao/music-1.mp3",
		s.PublicURL("memorial-audio", "joao/music-1.mp3"))

	s.CDNBaseURL = "https://cdn.example.com"
	assert.Equal(t,
		"https://cdn.example.com/memorial-audio/joao/music-1.mp3",
		s.PublicURL("memorial-audio", "joao/music-1.mp3"))
}

package storage

import (
	"context"
	"testing"
	"time"

	"github.com/ledgerbook/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func minioConfig() *config.StorageConfig {
	return &config.StorageConfig{
		Bucket:       "ledgerbook-exports",
		AccessKey:    "test-key",
		SecretKey:    "test-secret",
		Endpoint:     "http://localhost:9000",
		UsePathStyle: true,
	}
}

func TestNewS3ArchiveStorage_Validation(t *testing.T) {
	t.Run("nil config returns error", func(t *testing.T) {
		_, err := NewS3ArchiveStorage(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "configuration is required")
	})

	t.Run("missing bucket returns error", func(t *testing.T) {
		_, err := NewS3ArchiveStorage(&config.StorageConfig{AccessKey: "k", SecretKey: "s"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bucket is required")
	})

	t.Run("missing credentials return error", func(t *testing.T) {
		_, err := NewS3ArchiveStorage(&config.StorageConfig{Bucket: "b", AccessKey: "k"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "secret key")
	})

	t.Run("valid config uses one hour default expiry", func(t *testing.T) {
		s, err := NewS3ArchiveStorage(minioConfig())
		require.NoError(t, err)
		assert.Equal(t, "ledgerbook-exports", s.Bucket())
		assert.Equal(t, time.Hour, s.presignExpiration)
	})

	t.Run("options override defaults", func(t *testing.T) {
		s, err := NewS3ArchiveStorage(minioConfig(), WithLogger(zaptest.NewLogger(t)), WithPresignExpiration(5*time.Minute))
		require.NoError(t, err)
		assert.Equal(t, 5*time.Minute, s.presignExpiration)
	})
}

func TestNormalizeEndpoint(t *testing.T) {
	tests := []struct {
		in     string
		useSSL bool
		want   string
	}{
		{"", false, ""},
		{"localhost:9000", false, "http://localhost:9000"},
		{"minio.internal:9000", true, "https://minio.internal:9000"},
		{"https://s3.example.com", false, "https://s3.example.com"},
	}
	for _, tt := range tests {
		got, err := normalizeEndpoint(tt.in, tt.useSSL)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestS3ArchiveStorage_GenerateDownloadURL(t *testing.T) {
	s, err := NewS3ArchiveStorage(minioConfig())
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("empty key returns error", func(t *testing.T) {
		url, _, err := s.GenerateDownloadURL(ctx, "", time.Minute)
		require.ErrorIs(t, err, ErrEmptyKey)
		assert.Empty(t, url)
	})

	t.Run("presigns against the bucket", func(t *testing.T) {
		url, expiresAt, err := s.GenerateDownloadURL(ctx, "exports/c1/income-20250101T000000Z.csv", 10*time.Minute)
		require.NoError(t, err)
		assert.Contains(t, url, "localhost:9000")
		assert.Contains(t, url, "ledgerbook-exports")
		assert.Contains(t, url, "X-Amz-Signature")
		assert.WithinDuration(t, time.Now().Add(10*time.Minute), expiresAt, 5*time.Second)
	})

	t.Run("non-positive expiry uses default", func(t *testing.T) {
		_, expiresAt, err := s.GenerateDownloadURL(ctx, "exports/k.csv", 0)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)
	})
}

func TestS3ArchiveStorage_UploadRejectsEmptyKey(t *testing.T) {
	s, err := NewS3ArchiveStorage(minioConfig())
	require.NoError(t, err)

	err = s.Upload(context.Background(), "", []byte("a,b\n"), "text/csv")
	require.ErrorIs(t, err, ErrEmptyKey)
}

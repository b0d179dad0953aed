package media

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"wedding-feed/internal/config"
)

type Service interface {
	Upload(ctx context.Context, uploaderID uuid.UUID, fileName string, fileSize int64, mimeType string, reader io.Reader) (string, error)
	Delete(ctx context.Context, publicURL string) error
}

type service struct {
	minioClient *minio.Client
	cfg         *config.Config
}

func NewService(minioClient *minio.Client, cfg *config.Config) Service {
	return &service{
		minioClient: minioClient,
		cfg:         cfg,
	}
}

// Upload stores the file and returns the public URL clients embed in posts
// and stories.
func (s *service) Upload(ctx context.Context, uploaderID uuid.UUID, fileName string, fileSize int64, mimeType string, reader io.Reader) (string, error) {
	if s.minioClient == nil {
		return "", fmt.Errorf("media storage is not configured")
	}

	objectID := uuid.New()
	storagePath := fmt.Sprintf("media/%s/%s/%s", time.Now().Format("2006/01"), uploaderID, objectID)

	_, err := s.minioClient.PutObject(ctx, s.cfg.MinIOBucket, storagePath, reader, fileSize, minio.PutObjectOptions{
		ContentType: mimeType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to MinIO: %w", err)
	}

	return s.publicURL(storagePath), nil
}

func (s *service) Delete(ctx context.Context, publicURL string) error {
	if s.minioClient == nil {
		return nil
	}

	parsed, err := url.Parse(publicURL)
	if err != nil {
		return err
	}

	prefix := "/" + s.cfg.MinIOBucket + "/"
	if len(parsed.Path) <= len(prefix) {
		return fmt.Errorf("unrecognized media URL: %s", publicURL)
	}
	storagePath, err := url.PathUnescape(parsed.Path[len(prefix):])
	if err != nil {
		return err
	}

	return s.minioClient.RemoveObject(ctx, s.cfg.MinIOBucket, storagePath, minio.RemoveObjectOptions{})
}

func (s *service) publicURL(storagePath string) string {
	scheme := "http"
	if s.cfg.MinIOPublicUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.MinIOPublicEndpoint, s.cfg.MinIOBucket, url.PathEscape(storagePath))
}

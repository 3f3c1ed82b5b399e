package media

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog"

	"github.com/skywebdev/server/internal/config"
	"github.com/skywebdev/server/internal/domain"
)

// MinioStore implements Store against a MinIO (S3-compatible) object store.
type MinioStore struct {
	client        *minio.Client
	bucket        string
	publicBaseURL string
	maxSize       int64
	logger        zerolog.Logger
}

var _ Store = (*MinioStore)(nil)

func NewMinioStore(cfg config.MediaConfig, logger zerolog.Logger) (*MinioStore, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("media store: endpoint is required")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("media store: %w", err)
	}

	baseURL := cfg.PublicBaseURL
	if baseURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		baseURL = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}

	return &MinioStore{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(baseURL, "/"),
		maxSize:       cfg.MaxUploadSize,
		logger:        logger.With().Str("component", "media").Logger(),
	}, nil
}

func (s *MinioStore) Upload(ctx context.Context, upload Upload, folder string) (domain.Image, error) {
	contentType, err := ValidateUpload(upload, s.maxSize)
	if err != nil {
		return domain.Image{}, err
	}

	content, err := normalize(upload.Content, contentType)
	if err != nil {
		return domain.Image{}, domain.Invalid("image", "could not decode image content")
	}

	publicID := fmt.Sprintf("%s/%s%s", strings.Trim(folder, "/"), uuid.NewString(), allowedContentTypes[contentType])

	_, err = s.client.PutObject(ctx, s.bucket, publicID, bytes.NewReader(content), int64(len(content)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return domain.Image{}, domain.ExternalServiceError{Service: "object storage", Required: true, Err: err}
	}

	return domain.Image{
		URL:      s.publicBaseURL + "/" + publicID,
		PublicID: publicID,
	}, nil
}

func (s *MinioStore) Delete(ctx context.Context, publicID string) error {
	if strings.TrimSpace(publicID) == "" {
		return nil
	}

	err := s.client.RemoveObject(ctx, s.bucket, publicID, minio.RemoveObjectOptions{})
	if err != nil {
		// Deleting an already-absent object is not an error condition.
		if resp := minio.ToErrorResponse(err); resp.Code == "NoSuchKey" {
			return nil
		}
		return domain.ExternalServiceError{Service: "object storage", Required: false, Err: err}
	}
	return nil
}

func (s *MinioStore) Replace(ctx context.Context, oldPublicID string, upload Upload, folder string) (domain.Image, error) {
	if err := s.Delete(ctx, oldPublicID); err != nil {
		// A stale or stuck old object must not block a legitimate update;
		// the orphan is accepted and visible in the logs.
		s.logger.Warn().Err(err).Str("public_id", oldPublicID).Msg("failed to delete old asset during replace")
	}
	return s.Upload(ctx, upload, folder)
}

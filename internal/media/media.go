// Package media manages binary assets held in an external object store.
// Records in the data store reference assets by a stable (url, publicId)
// pair; the record owns the asset's lifecycle.
package media

import (
	"context"
	"fmt"
	"net/http"

	"github.com/skywebdev/server/internal/domain"
)

// MaxUploadSize is the largest accepted image payload.
const MaxUploadSize = 5 * 1024 * 1024

// Upload is an image payload pending storage.
type Upload struct {
	Content  []byte
	Filename string
}

// Store uploads, replaces, and deletes binary assets.
type Store interface {
	// Upload validates and stores content under folder, returning the
	// asset's public reference. No record may be persisted referencing an
	// upload that did not return successfully.
	Upload(ctx context.Context, upload Upload, folder string) (domain.Image, error)

	// Delete removes the asset. Deleting an already-absent publicId is not
	// an error.
	Delete(ctx context.Context, publicID string) error

	// Replace deletes the old asset and uploads the new one. A delete
	// failure is logged and does not abort the replacement; an upload
	// failure aborts and propagates, leaving the caller's stored reference
	// unchanged.
	Replace(ctx context.Context, oldPublicID string, upload Upload, folder string) (domain.Image, error)
}

var allowedContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// ValidateUpload performs the cheap local checks that must pass before any
// network call: size bound and sniffed content type. It returns the detected
// content type. A maxSize of zero falls back to MaxUploadSize.
func ValidateUpload(upload Upload, maxSize int64) (string, error) {
	if maxSize <= 0 {
		maxSize = MaxUploadSize
	}
	if len(upload.Content) == 0 {
		return "", domain.Invalid("image", "image content is required")
	}
	if int64(len(upload.Content)) > maxSize {
		return "", domain.Invalid("image", fmt.Sprintf("file size too large, maximum size is %d bytes", maxSize))
	}

	contentType := http.DetectContentType(upload.Content)
	if _, ok := allowedContentTypes[contentType]; !ok {
		return "", domain.Invalid("image", "only image files are allowed (jpeg, jpg, png, gif, webp)")
	}
	return contentType, nil
}

package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/artifaks/herbal-wisdom/internal/errors"
	"github.com/artifaks/herbal-wisdom/internal/storage"
)

// MaxImageSize is the upload size limit enforced at the boundary.
const MaxImageSize = 2 * 1024 * 1024

// allowedImageExtensions maps accepted MIME types to file extensions.
var allowedImageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// StorageService wraps the object store with the upload policy: size limit,
// image MIME allowlist and generated blob paths.
type StorageService interface {
	UploadImage(ctx context.Context, filename, contentType string, size int64, body io.Reader) (string, error)
	DeleteImage(ctx context.Context, imagePath string) error
}

type storageService struct {
	store  storage.ObjectStore
	bucket string
}

// NewStorageService creates a new storage service.
func NewStorageService(store storage.ObjectStore, bucket string) StorageService {
	return &storageService{store: store, bucket: bucket}
}

// UploadImage validates and stores an image blob, returning its public URL.
// Blobs are stored under generated names so uploads never collide.
func (s *storageService) UploadImage(ctx context.Context, filename, contentType string, size int64, body io.Reader) (string, error) {
	if size > MaxImageSize {
		return "", apperrors.ErrImageTooLarge
	}
	ext, ok := allowedImageExtensions[normalizeContentType(contentType)]
	if !ok {
		return "", apperrors.ErrInvalidImageType
	}

	blobPath := path.Join("herb-images", uuid.New().String()+ext)

	// Re-enforce the size limit while streaming: Content-Length can lie.
	limited := io.LimitReader(body, MaxImageSize+1)
	data, err := io.ReadAll(limited)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > MaxImageSize {
		return "", apperrors.ErrImageTooLarge
	}

	url, err := s.store.Upload(ctx, s.bucket, blobPath, contentType, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	return url, nil
}

// DeleteImage removes a previously uploaded blob by path.
func (s *storageService) DeleteImage(ctx context.Context, imagePath string) error {
	if err := s.store.Delete(ctx, s.bucket, imagePath); err != nil {
		return fmt.Errorf("delete image: %w", err)
	}
	return nil
}

func normalizeContentType(contentType string) string {
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}

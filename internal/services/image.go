package services

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/interviewqa/apiserver/internal/apperr"
	"github.com/interviewqa/apiserver/internal/storage"
)

// MaxImageBytes is the largest accepted image upload.
const MaxImageBytes = 10 << 20

const imageKeyPrefix = "images/"

// ImageService publishes category images to object storage and returns the
// URL to store in a job or sub-job imageUrl.
type ImageService struct {
	storage   storage.ObjectStorage
	publicURL string
}

func NewImageService(objects storage.ObjectStorage, publicURL string) *ImageService {
	return &ImageService{storage: objects, publicURL: publicURL}
}

// Upload stores data under a fresh key and returns its public URL. The
// declared content type is ignored in favor of the sniffed one.
func (s *ImageService) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", apperr.Validation(`"image" is required`)
	}
	if len(data) > MaxImageBytes {
		return "", apperr.Validation(fmt.Sprintf(`"image" must be at most %d bytes`, MaxImageBytes))
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return "", apperr.Validation(`"image" must be an image`)
	}

	key := imageKeyPrefix + uuid.NewString() + strings.ToLower(filepath.Ext(filename))
	if err := s.storage.Put(ctx, key, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		return "", apperr.Store(fmt.Errorf("put %s: %w", key, err))
	}
	return storage.ObjectURL(s.publicURL, s.storage.Bucket(), key), nil
}

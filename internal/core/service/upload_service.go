package service

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/activityhub/membership-api/internal/core/domain"
	"github.com/activityhub/membership-api/internal/core/ports"
)

// maxImageSize caps uploads at 2 MiB.
const maxImageSize = 2 << 20

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// UploadService validates incoming images and streams them to the object
// store under a generated unique key.
type UploadService struct {
	store  ports.ObjectStore
	logger zerolog.Logger
}

func NewUploadService(store ports.ObjectStore, logger zerolog.Logger) *UploadService {
	return &UploadService{store: store, logger: logger}
}

func (s *UploadService) UploadImage(ctx context.Context, input ports.UploadInput) (string, error) {
	if input.Size <= 0 {
		return "", domain.NewValidationError("no file uploaded")
	}
	if input.Size > maxImageSize {
		return "", domain.NewValidationError("file exceeds the 2MB size limit")
	}
	ext, ok := imageExtensions[input.ContentType]
	if !ok {
		return "", domain.NewValidationError("file must be a jpeg, png, gif or webp image")
	}
	if e := strings.ToLower(path.Ext(input.Filename)); e != "" {
		ext = e
	}

	key := fmt.Sprintf("images/%s/%s%s", input.Scope, uuid.NewString(), ext)

	url, err := s.store.Put(ctx, key, input.ContentType, input.Body, input.Size)
	if err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("object store write failed")
		return "", fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}

	s.logger.Info().Str("key", key).Int64("size", input.Size).Msg("image uploaded")
	return url, nil
}

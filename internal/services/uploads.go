package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"hwreview_backend/internal/config"
	"hwreview_backend/internal/imageprocessor"
	"hwreview_backend/internal/storage"
	"hwreview_backend/pkg/apperrors"

	"github.com/google/uuid"
)

// saveImage validates, fits and stores an uploaded image under dir,
// returning its public URL.
func saveImage(store storage.Storage, processor *imageprocessor.Processor, dir string, size imageprocessor.ImageSize, file *multipart.FileHeader) (string, error) {
	if file.Size > config.GetConfig().Upload.MaxSize {
		return "", apperrors.ErrFileTooLarge
	}

	src, err := file.Open()
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	defer src.Close()

	if !imageprocessor.IsValidImage(src) {
		return "", apperrors.ErrInvalidFileType
	}
	if _, err := src.Seek(0, 0); err != nil {
		return "", apperrors.InternalError(err)
	}

	resized, contentType, err := processor.Fit(src, size)
	if err != nil {
		return "", apperrors.ErrInvalidFileType
	}

	path := fmt.Sprintf("%s/%s.jpg", dir, uuid.NewString())
	ctx := context.Background()
	if err := store.Save(ctx, path, resized, contentType); err != nil {
		return "", apperrors.InternalError(err)
	}
	url, err := store.GetURL(ctx, path)
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	return url, nil
}

package service

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"

	"go.uber.org/zap"

	apperrors "homefinder/internal/errors"
	"homefinder/internal/storage"
)

// UploadsKeyPrefix is prepended to every stored image key. The public URL of
// an image is the base URL joined with its key.
const UploadsKeyPrefix = "uploads/"

var allowedImageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

var (
	// ErrMissingFilename is returned when an upload has no usable name.
	ErrMissingFilename = apperrors.New(apperrors.KindValidation, "MISSING_FILENAME", "no file selected")
	// ErrFileTypeNotAllowed is returned for extensions outside the image allow-list.
	ErrFileTypeNotAllowed = apperrors.New(apperrors.KindValidation, "FILE_TYPE_NOT_ALLOWED", "file type not allowed")
)

// ImageService stores property images.
type ImageService interface {
	Upload(ctx context.Context, filename string, body io.ReadSeeker) (string, error)
}

type imageService struct {
	provider storage.Provider
	baseURL  string
	log      *zap.Logger
}

// NewImageService creates an image service that returns URLs rooted at baseURL.
func NewImageService(provider storage.Provider, baseURL string, log *zap.Logger) ImageService {
	if log == nil {
		log = zap.NewNop()
	}
	return &imageService{
		provider: provider,
		baseURL:  strings.TrimRight(baseURL, "/"),
		log:      log,
	}
}

// Upload validates filename, stores body under its sanitized name and returns
// the public URL. An existing image with the same name is overwritten.
func (s *imageService) Upload(ctx context.Context, filename string, body io.ReadSeeker) (string, error) {
	if strings.TrimSpace(filename) == "" {
		return "", ErrMissingFilename
	}

	name := SanitizeFilename(filename)
	if name == "" {
		return "", ErrMissingFilename
	}
	ext := strings.ToLower(path.Ext(name))
	if !allowedImageExtensions[ext] {
		return "", ErrFileTypeNotAllowed
	}

	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	key := UploadsKeyPrefix + name
	if err := s.provider.Put(ctx, key, body, contentType); err != nil {
		return "", apperrors.Internal(fmt.Errorf("store image: %w", err))
	}

	s.log.Info("image uploaded", zap.String("key", key))
	return s.baseURL + "/" + key, nil
}

// SanitizeFilename reduces name to a safe basename: directory components are
// dropped, characters outside [A-Za-z0-9._-] become '_' and leading dots are
// removed.
func SanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == ".." {
		return ""
	}

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return strings.TrimLeft(b.String(), ".")
}

package media

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/nfnt/resize"
	"go.uber.org/zap"

	"github.com/spec-kit/places-service/internal/config"
)

// ErrUnsupportedType reports an upload with a MIME type outside extByMIME.
var ErrUnsupportedType = errors.New("unsupported image type")

// ErrTooLarge reports an upload exceeding the configured size limit.
var ErrTooLarge = errors.New("image exceeds size limit")

// extByMIME limits uploads to the image types the frontend produces.
var extByMIME = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpeg",
	"image/jpg":  "jpg",
}

// Store persists uploaded images on local disk under uuid filenames and
// renders a thumbnail alongside each original.
type Store struct {
	dir       string
	maxBytes  int64
	thumbSize uint
	logger    *zap.Logger
}

// NewStore ensures the upload directory exists.
func NewStore(cfg config.UploadConfig, logger *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{
		dir:       cfg.Dir,
		maxBytes:  cfg.MaxBytes,
		thumbSize: cfg.ThumbnailSize,
		logger:    logger,
	}, nil
}

// Dir returns the root upload directory.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes the uploaded file to disk and returns its path relative to the
// served upload root.
func (s *Store) Save(file *multipart.FileHeader) (string, error) {
	if s.maxBytes > 0 && file.Size > s.maxBytes {
		return "", fmt.Errorf("%w (%d bytes max)", ErrTooLarge, s.maxBytes)
	}

	ext, ok := extByMIME[strings.ToLower(file.Header.Get("Content-Type"))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, file.Header.Get("Content-Type"))
	}

	name := fmt.Sprintf("%s.%s", uuid.NewString(), ext)
	dst := filepath.Join(s.dir, name)

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		os.Remove(dst)
		return "", err
	}

	// Thumbnail failures are logged, never surfaced: the original stays usable.
	if err := s.writeThumbnail(dst); err != nil {
		s.logger.Warn("thumbnail generation failed", zap.String("file", name), zap.Error(err))
	}

	return filepath.ToSlash(filepath.Join(s.dir, name)), nil
}

// Remove deletes a stored image and its thumbnail best-effort.
func (s *Store) Remove(path string) error {
	if path == "" {
		return nil
	}
	_ = os.Remove(thumbnailPath(path))
	return os.Remove(path)
}

func (s *Store) writeThumbnail(srcPath string) error {
	f, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return err
	}

	thumb := resize.Thumbnail(s.thumbSize, s.thumbSize, img, resize.Lanczos3)

	out, err := os.Create(thumbnailPath(srcPath))
	if err != nil {
		return err
	}
	defer out.Close()

	return jpeg.Encode(out, thumb, &jpeg.Options{Quality: 85})
}

func thumbnailPath(srcPath string) string {
	ext := filepath.Ext(srcPath)
	return strings.TrimSuffix(srcPath, ext) + "_thumb.jpg"
}

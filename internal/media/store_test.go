package media

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/places-service/internal/config"
)

func newTestStore(t *testing.T, maxBytes int64) *Store {
	t.Helper()
	store, err := NewStore(config.UploadConfig{
		Dir:           t.TempDir(),
		MaxBytes:      maxBytes,
		ThumbnailSize: 64,
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("NewStore error: %v", err)
	}
	return store
}

func pngFileHeader(t *testing.T, contentType string) *multipart.FileHeader {
	t.Helper()

	var img bytes.Buffer
	if err := png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 200, 100))); err != nil {
		t.Fatalf("png.Encode error: %v", err)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="image"; filename="pic.png"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("CreatePart error: %v", err)
	}
	if _, err := part.Write(img.Bytes()); err != nil {
		t.Fatalf("part write error: %v", err)
	}
	writer.Close()

	form, err := multipart.NewReader(&body, writer.Boundary()).ReadForm(1 << 20)
	if err != nil {
		t.Fatalf("ReadForm error: %v", err)
	}
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["image"][0]
}

func TestSave_WritesFileAndThumbnail(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, 1<<20)
	path, err := store.Save(pngFileHeader(t, "image/png"))
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if !strings.HasSuffix(path, ".png") {
		t.Fatalf("expected .png path, got %q", path)
	}

	if _, err := os.Stat(filepath.FromSlash(path)); err != nil {
		t.Fatalf("saved file missing: %v", err)
	}
	thumb := strings.TrimSuffix(filepath.FromSlash(path), ".png") + "_thumb.jpg"
	if _, err := os.Stat(thumb); err != nil {
		t.Fatalf("thumbnail missing: %v", err)
	}
}

func TestSave_UnsupportedType(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, 1<<20)
	_, err := store.Save(pngFileHeader(t, "application/pdf"))
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestSave_TooLarge(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, 10)
	_, err := store.Save(pngFileHeader(t, "image/png"))
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
}

func TestRemove_DeletesImageAndThumbnail(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, 1<<20)
	path, err := store.Save(pngFileHeader(t, "image/png"))
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}

	if err := store.Remove(filepath.FromSlash(path)); err != nil {
		t.Fatalf("Remove error: %v", err)
	}
	if _, err := os.Stat(filepath.FromSlash(path)); !os.IsNotExist(err) {
		t.Fatal("image still present after Remove")
	}
}

// Package assets validates uploaded images, stores them and loads them back
// for rasterizing. The editor only ever keeps the returned URL and path.
package assets

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/alexisbeaulieu97/carousel/internal/logger"
	carouselerrors "github.com/alexisbeaulieu97/carousel/pkg/errors"
)

// MaxUploadBytes is the default size limit for an uploaded image.
const MaxUploadBytes int64 = 5 << 20

// allowedTypes maps accepted content types to the extension they are stored with.
var allowedTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ErrTooLarge and ErrUnsupportedType classify rejected uploads.
var (
	ErrTooLarge        = errors.New("file exceeds the upload size limit")
	ErrUnsupportedType = errors.New("file type is not an accepted image format")
)

// File is an upload candidate.
type File struct {
	Name string
	Data []byte
}

// Ref locates a stored asset. Path is set only for assets the store can delete.
type Ref struct {
	URL  string `json:"url"`
	Path string `json:"path,omitempty"`
}

// Store is the asset storage collaborator.
type Store interface {
	Upload(ctx context.Context, f File) (Ref, error)
	Delete(ctx context.Context, path string) error
}

// AllowedTypes lists the accepted content types.
func AllowedTypes() []string {
	return []string{"image/png", "image/jpeg", "image/webp", "image/gif"}
}

// Check validates f against the size limit and the format allow-list, sniffing
// the content rather than trusting the name. It returns the detected type.
func Check(f File, maxBytes int64) (string, error) {
	if maxBytes <= 0 {
		maxBytes = MaxUploadBytes
	}
	if int64(len(f.Data)) > maxBytes {
		return "", carouselerrors.NewValidationError("file",
			fmt.Sprintf("%s is %s, the limit is %s", displayName(f), humanBytes(int64(len(f.Data))), humanBytes(maxBytes)), ErrTooLarge)
	}
	if len(f.Data) == 0 {
		return "", carouselerrors.NewValidationError("file", fmt.Sprintf("%s is empty", displayName(f)), ErrUnsupportedType)
	}

	detected := mimetype.Detect(f.Data)
	mime := strings.SplitN(detected.String(), ";", 2)[0]
	if _, ok := allowedTypes[mime]; !ok {
		return "", carouselerrors.NewValidationError("file",
			fmt.Sprintf("%s is %s, accepted formats are PNG, JPEG, WebP and GIF", displayName(f), mime), ErrUnsupportedType)
	}
	return mime, nil
}

// LocalStore keeps uploads in a directory and hands out file:// URLs.
type LocalStore struct {
	dir      string
	maxBytes int64
	log      *logger.Logger
}

// NewLocalStore creates the directory if needed.
func NewLocalStore(dir string, maxBytes int64, log *logger.Logger) (*LocalStore, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve upload dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: abs, maxBytes: maxBytes, log: log.WithComponent("assets")}, nil
}

// Upload validates and writes f under a fresh name.
func (s *LocalStore) Upload(ctx context.Context, f File) (Ref, error) {
	if err := ctx.Err(); err != nil {
		return Ref{}, err
	}

	mime, err := Check(f, s.maxBytes)
	if err != nil {
		return Ref{}, err
	}

	name := uuid.NewString() + allowedTypes[mime]
	target := filepath.Join(s.dir, name)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, f.Data, 0o644); err != nil {
		return Ref{}, carouselerrors.NewAssetError(displayName(f), err)
	}
	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return Ref{}, carouselerrors.NewAssetError(displayName(f), err)
	}

	s.log.WithFields(map[string]any{"name": name, "bytes": len(f.Data), "type": mime}).Debug("stored upload")
	return Ref{URL: (&url.URL{Scheme: "file", Path: filepath.ToSlash(target)}).String(), Path: name}, nil
}

// Delete removes a previously uploaded asset. Deleting a missing asset is not
// an error.
func (s *LocalStore) Delete(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	name := filepath.Base(filepath.Clean(path))
	if name == "." || name == string(filepath.Separator) || name != path {
		return carouselerrors.NewAssetError(path, errors.New("invalid asset path"))
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return carouselerrors.NewAssetError(path, err)
	}
	return nil
}

// Dir is where uploads are written.
func (s *LocalStore) Dir() string {
	return s.dir
}

func displayName(f File) string {
	if f.Name == "" {
		return "upload"
	}
	return filepath.Base(f.Name)
}

func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMG"[exp])
}

package assets

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "golang.org/x/image/webp" // register decoder

	"github.com/alexisbeaulieu97/carousel/internal/logger"
	carouselerrors "github.com/alexisbeaulieu97/carousel/pkg/errors"
)

// Fetcher resolves an image source to a decoded image.
type Fetcher interface {
	Load(ctx context.Context, src string) (image.Image, error)
}

// LoaderOptions configures a Loader.
type LoaderOptions struct {
	BaseDir  string
	Client   *http.Client
	MaxBytes int64
	Logger   *logger.Logger
}

// Loader fetches images from file paths, file:// and http(s) URLs and data
// URLs. Decoded images are cached by source for the loader's lifetime.
type Loader struct {
	baseDir  string
	client   *http.Client
	maxBytes int64
	log      *logger.Logger

	mu    sync.Mutex
	cache map[string]image.Image
}

// NewLoader builds a loader. Relative paths resolve against BaseDir.
func NewLoader(opts LoaderOptions) *Loader {
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	maxBytes := opts.MaxBytes
	if maxBytes <= 0 {
		maxBytes = 4 * MaxUploadBytes
	}
	return &Loader{
		baseDir:  opts.BaseDir,
		client:   client,
		maxBytes: maxBytes,
		log:      opts.Logger.WithComponent("assets"),
		cache:    map[string]image.Image{},
	}
}

// Load returns the decoded image for src.
func (l *Loader) Load(ctx context.Context, src string) (image.Image, error) {
	l.mu.Lock()
	if img, ok := l.cache[src]; ok {
		l.mu.Unlock()
		return img, nil
	}
	l.mu.Unlock()

	data, err := l.read(ctx, src)
	if err != nil {
		return nil, carouselerrors.NewAssetError(label(src), err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, carouselerrors.NewAssetError(label(src), fmt.Errorf("decode image: %w", err))
	}

	l.mu.Lock()
	l.cache[src] = img
	l.mu.Unlock()

	l.log.WithFields(map[string]any{"src": label(src), "bytes": len(data)}).Debug("loaded image")
	return img, nil
}

func (l *Loader) read(ctx context.Context, src string) ([]byte, error) {
	if strings.HasPrefix(src, "data:") {
		return decodeDataURL(src)
	}

	u, err := url.Parse(src)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		return l.readFile(src)
	}

	switch u.Scheme {
	case "file":
		return l.readFile(u.Path)
	case "http", "https":
		return l.fetch(ctx, u.String())
	default:
		return nil, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
}

func (l *Loader) readFile(path string) ([]byte, error) {
	if !filepath.IsAbs(path) && l.baseDir != "" {
		path = filepath.Join(l.baseDir, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readLimited(f, l.maxBytes)
}

func (l *Loader) fetch(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: %s", target, resp.Status)
	}
	return readLimited(resp.Body, l.maxBytes)
}

func readLimited(r io.Reader, max int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, max+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > max {
		return nil, ErrTooLarge
	}
	return data, nil
}

func decodeDataURL(src string) ([]byte, error) {
	comma := strings.IndexByte(src, ',')
	if comma < 0 {
		return nil, errors.New("malformed data URL")
	}
	meta, payload := src[len("data:"):comma], src[comma+1:]
	if strings.HasSuffix(meta, ";base64") {
		return base64.StdEncoding.DecodeString(payload)
	}
	decoded, err := url.PathUnescape(payload)
	if err != nil {
		return nil, err
	}
	return []byte(decoded), nil
}

// label keeps data URLs out of error messages and logs.
func label(src string) string {
	if strings.HasPrefix(src, "data:") {
		if semi := strings.IndexAny(src, ";,"); semi > 0 {
			return src[:semi]
		}
		return "data:"
	}
	return src
}

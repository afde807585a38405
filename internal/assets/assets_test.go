package assets

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/carousel/internal/logger"
	carouselerrors "github.com/alexisbeaulieu97/carousel/pkg/errors"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestCheckAcceptsSniffedImages(t *testing.T) {
	t.Parallel()

	mime, err := Check(File{Name: "photo.txt", Data: pngBytes(t, 4, 4)}, 0)
	require.NoError(t, err)
	require.Equal(t, "image/png", mime)
}

func TestCheckRejectsOversizedUploads(t *testing.T) {
	t.Parallel()

	data := append(pngBytes(t, 2, 2), make([]byte, 6<<20)...)
	_, err := Check(File{Name: "big.png", Data: data}, MaxUploadBytes)

	var ve *carouselerrors.ValidationError
	require.ErrorAs(t, err, &ve)
	require.ErrorIs(t, err, ErrTooLarge)
	require.Contains(t, ve.Message, "6.0 MiB")
}

func TestCheckRejectsDisallowedFormats(t *testing.T) {
	t.Parallel()

	_, err := Check(File{Name: "notes.png", Data: []byte("%PDF-1.4\n%âãÏÓ\n")}, 0)
	require.ErrorIs(t, err, ErrUnsupportedType)

	_, err = Check(File{Name: "empty.png"}, 0)
	require.ErrorIs(t, err, ErrUnsupportedType)
}

func TestLocalStoreUploadAndDelete(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store, err := NewLocalStore(dir, 0, logger.Nop())
	require.NoError(t, err)

	ref, err := store.Upload(context.Background(), File{Name: "a.png", Data: pngBytes(t, 3, 3)})
	require.NoError(t, err)
	require.Equal(t, ".png", filepath.Ext(ref.Path))
	require.FileExists(t, filepath.Join(dir, ref.Path))
	require.Contains(t, ref.URL, "file://")

	require.NoError(t, store.Delete(context.Background(), ref.Path))
	require.NoFileExists(t, filepath.Join(dir, ref.Path))
	require.NoError(t, store.Delete(context.Background(), ref.Path))

	require.Error(t, store.Delete(context.Background(), "../escape.png"))
}

func TestLoaderSources(t *testing.T) {
	t.Parallel()

	data := pngBytes(t, 5, 3)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "local.png"), data, 0o644))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/img.png" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	loader := NewLoader(LoaderOptions{BaseDir: dir, Logger: logger.Nop()})
	sources := []string{
		"local.png",
		"file://" + filepath.ToSlash(filepath.Join(dir, "local.png")),
		"data:image/png;base64," + base64.StdEncoding.EncodeToString(data),
		srv.URL + "/img.png",
	}
	for _, src := range sources {
		img, err := loader.Load(context.Background(), src)
		require.NoError(t, err, src)
		require.Equal(t, image.Rect(0, 0, 5, 3), img.Bounds())
	}

	_, err := loader.Load(context.Background(), srv.URL+"/missing.png")
	var assetErr *carouselerrors.AssetError
	require.ErrorAs(t, err, &assetErr)
	require.Equal(t, srv.URL+"/missing.png", assetErr.Asset)
}

func TestLoaderHonoursContext(t *testing.T) {
	t.Parallel()

	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLoader(LoaderOptions{}).Load(ctx, srv.URL+"/slow.png")
	require.ErrorIs(t, err, context.Canceled)
}

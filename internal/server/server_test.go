package server

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/carousel/internal/assets"
	"github.com/alexisbeaulieu97/carousel/internal/document"
	"github.com/alexisbeaulieu97/carousel/internal/export"
	"github.com/alexisbeaulieu97/carousel/internal/generate"
	"github.com/alexisbeaulieu97/carousel/internal/logger"
	"github.com/alexisbeaulieu97/carousel/internal/model"
	"github.com/alexisbeaulieu97/carousel/internal/store"
	"github.com/alexisbeaulieu97/carousel/internal/translate"
)

type fixture struct {
	srv   *httptest.Server
	store store.Store
}

func newFixture(t *testing.T, withServices bool) *fixture {
	t.Helper()

	docs, err := store.NewFileStore(t.TempDir(), logger.Nop())
	require.NoError(t, err)
	loader := assets.NewLoader(assets.LoaderOptions{BaseDir: t.TempDir(), Logger: logger.Nop()})

	opts := Options{
		Store:    docs,
		Exporter: export.New(loader, logger.Nop()),
		Export:   export.Options{Quality: 1},
		Log:      logger.Nop(),
	}
	if withServices {
		uploads, err := assets.NewLocalStore(t.TempDir(), assets.MaxUploadBytes, logger.Nop())
		require.NoError(t, err)
		opts.Assets = uploads
		opts.Generator = generate.OutlineGenerator{Handle: "@deck"}
		opts.Translator = translate.TranslatorFunc(func(_ context.Context, texts []string, target string) ([]string, error) {
			out := make([]string, len(texts))
			for i, s := range texts {
				out[i] = "[" + target + "] " + s
			}
			return out, nil
		})
	}

	srv := httptest.NewServer(New(opts).Handler())
	t.Cleanup(srv.Close)
	return &fixture{srv: srv, store: docs}
}

func (f *fixture) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, f.srv.URL+path, reader)
	require.NoError(t, err)
	resp, err := f.srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func (f *fixture) seed(t *testing.T, slides int) model.Carousel {
	t.Helper()
	doc := document.NewCarousel("Server deck")
	for len(doc.Slides) < slides {
		doc = document.AddSlide(doc, document.NewSlide(model.SlideContent))
	}
	_, err := f.store.Save(context.Background(), doc)
	require.NoError(t, err)
	return doc
}

func TestCatalogRoutes(t *testing.T) {
	t.Parallel()
	f := newFixture(t, false)

	resp := f.do(t, http.MethodGet, "/api/templates", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	templates := decode[[]templateJSON](t, resp)
	require.Len(t, templates, len(document.Templates()))

	resp = f.do(t, http.MethodGet, "/api/styles", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	styles := decode[[]styleJSON](t, resp)
	require.NotEmpty(t, styles)
	require.Equal(t, model.StyleKey("solid-dark"), styles[0].Key)
}

func TestDocumentLifecycle(t *testing.T) {
	t.Parallel()
	f := newFixture(t, false)

	resp := f.do(t, http.MethodPost, "/api/documents", map[string]string{"title": "Fresh"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := decode[idResponse](t, resp).ID
	require.NotEmpty(t, id)

	resp = f.do(t, http.MethodGet, "/api/documents/"+id, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	doc := decode[model.Carousel](t, resp)
	require.Equal(t, "Fresh", doc.Title)
	require.Len(t, doc.Slides, 1)

	doc = document.AddSlide(doc, document.NewSlide(model.SlideQuote))
	resp = f.do(t, http.MethodPut, "/api/documents/"+id, doc)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/api/documents", nil)
	list := decode[[]store.Summary](t, resp)
	require.Len(t, list, 1)
	require.Equal(t, 2, list[0].Slides)

	resp = f.do(t, http.MethodPut, "/api/documents/other-id", doc)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	require.Equal(t, "id", decode[errorBody](t, resp).Field)

	resp = f.do(t, http.MethodDelete, "/api/documents/"+id, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = f.do(t, http.MethodGet, "/api/documents/"+id, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestInvalidDocumentsAreRejected(t *testing.T) {
	t.Parallel()
	f := newFixture(t, false)

	doc := document.NewCarousel("Broken")
	doc = document.AddSlide(doc, document.NewSlide(model.SlideTip))
	doc.Slides[1].Order = 5
	resp := f.do(t, http.MethodPost, "/api/documents", doc)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	require.Equal(t, "slides[1].order", decode[errorBody](t, resp).Field)

	req, err := http.NewRequest(http.MethodPost, f.srv.URL+"/api/documents", strings.NewReader("{not json"))
	require.NoError(t, err)
	raw, err := f.srv.Client().Do(req)
	require.NoError(t, err)
	defer raw.Body.Close()
	require.Equal(t, http.StatusBadRequest, raw.StatusCode)
}

func TestExportReturnsPDF(t *testing.T) {
	t.Parallel()
	f := newFixture(t, false)
	doc := f.seed(t, 2)

	resp := f.do(t, http.MethodPost, "/api/documents/"+doc.ID+"/export", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	require.Contains(t, resp.Header.Get("Content-Disposition"), "server-deck.pdf")
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(body, []byte("%PDF-")))

	resp = f.do(t, http.MethodPost, "/api/documents/"+doc.ID+"/export?quality=9", nil)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	require.Equal(t, "quality", decode[errorBody](t, resp).Field)

	resp = f.do(t, http.MethodPost, "/api/documents/missing/export", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPreviewSlide(t *testing.T) {
	t.Parallel()
	f := newFixture(t, false)
	doc := f.seed(t, 2)

	resp := f.do(t, http.MethodGet, "/api/documents/"+doc.ID+"/slides/1/preview.png?quality=0.25", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	img, err := png.Decode(resp.Body)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 270, 270), img.Bounds())

	resp = f.do(t, http.MethodGet, "/api/documents/"+doc.ID+"/slides/7/preview.png", nil)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestStreamExportReportsProgress(t *testing.T) {
	t.Parallel()
	f := newFixture(t, false)
	doc := f.seed(t, 3)

	url := "ws" + strings.TrimPrefix(f.srv.URL, "http") + "/api/documents/" + doc.ID + "/export/stream?quality=1"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	var progress []int
	var done streamMessage
	for {
		var msg streamMessage
		require.NoError(t, conn.ReadJSON(&msg))
		if msg.Type == "progress" {
			progress = append(progress, msg.Progress.Current)
			continue
		}
		done = msg
		break
	}
	require.Equal(t, []int{1, 2, 3}, progress)
	require.Equal(t, "done", done.Type)
	require.Equal(t, 3, done.Pages)

	resp := f.do(t, http.MethodGet, done.Download, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))

	resp = f.do(t, http.MethodGet, "/api/exports/unknown", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTranslateRoute(t *testing.T) {
	t.Parallel()
	f := newFixture(t, true)
	doc := f.seed(t, 2)

	resp := f.do(t, http.MethodPost, "/api/documents/"+doc.ID+"/translate", translateRequest{Target: "fr"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[translateResponse](t, resp)
	require.NotEmpty(t, out.Changes)
	require.True(t, strings.HasPrefix(out.Changes[0].After, "[fr] "))
	require.Empty(t, out.ID)

	resp = f.do(t, http.MethodPost, "/api/documents/"+doc.ID+"/translate", translateRequest{Target: "de", Save: true})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	saved := decode[translateResponse](t, resp)
	require.NotEmpty(t, saved.ID)
	require.NotEqual(t, doc.ID, saved.ID)

	list, err := f.store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)

	resp = f.do(t, http.MethodPost, "/api/documents/"+doc.ID+"/translate", translateRequest{})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	require.Equal(t, "target", decode[errorBody](t, resp).Field)
}

func TestGenerateRoute(t *testing.T) {
	t.Parallel()
	f := newFixture(t, true)

	resp := f.do(t, http.MethodPost, "/api/generate", generate.Params{Hypothesis: "Small batches win", SlideCount: 4})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	doc := decode[model.Carousel](t, resp)
	require.Len(t, doc.Slides, 4)

	stored, err := f.store.Load(context.Background(), doc.ID)
	require.NoError(t, err)
	require.Equal(t, "Small batches win", stored.Title)

	resp = f.do(t, http.MethodPost, "/api/generate", generate.Params{})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestUnconfiguredServicesAnswer501(t *testing.T) {
	t.Parallel()
	f := newFixture(t, false)
	doc := f.seed(t, 1)

	require.Equal(t, http.StatusNotImplemented, f.do(t, http.MethodPost, "/api/documents/"+doc.ID+"/translate", translateRequest{Target: "fr"}).StatusCode)
	require.Equal(t, http.StatusNotImplemented, f.do(t, http.MethodPost, "/api/generate", generate.Params{Hypothesis: "x"}).StatusCode)
	require.Equal(t, http.StatusNotImplemented, f.do(t, http.MethodPost, "/api/uploads", nil).StatusCode)
}

func multipartUpload(t *testing.T, url, name string, data []byte) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, err := http.Post(url, mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestUploadRoute(t *testing.T) {
	t.Parallel()
	f := newFixture(t, true)

	var small bytes.Buffer
	require.NoError(t, png.Encode(&small, image.NewRGBA(image.Rect(0, 0, 4, 4))))
	resp := multipartUpload(t, f.srv.URL+"/api/uploads", "dot.png", small.Bytes())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	ref := decode[assets.Ref](t, resp)
	require.True(t, strings.HasPrefix(ref.URL, "file://"))
	require.True(t, strings.HasSuffix(ref.Path, ".png"))

	big := append(append([]byte{}, small.Bytes()...), make([]byte, 6<<20)...)
	resp = multipartUpload(t, f.srv.URL+"/api/uploads", "huge.png", big)
	require.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)

	resp = multipartUpload(t, f.srv.URL+"/api/uploads", "notes.txt", []byte("plain text"))
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

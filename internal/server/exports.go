package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/alexisbeaulieu97/carousel/internal/export"
	carouselerrors "github.com/alexisbeaulieu97/carousel/pkg/errors"
)

// POST /api/documents/{id}/export?quality=2
func (s *Server) exportDocument(w http.ResponseWriter, r *http.Request) {
	opts, err := s.exportOptions(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	doc, err := s.store.Load(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, err)
		return
	}

	artifact, err := s.exporter.Export(r.Context(), doc, export.Targets(doc), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writePDF(w, artifact)
}

// GET /api/documents/{id}/slides/{index}/preview.png?quality=0.5
func (s *Server) previewSlide(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	index, err := strconv.Atoi(vars["index"])
	if err != nil {
		s.writeError(w, carouselerrors.NewValidationError("index", "slide index must be a number", err))
		return
	}
	quality := 0.5
	if q := r.URL.Query().Get("quality"); q != "" {
		quality, err = strconv.ParseFloat(q, 64)
		if err != nil {
			s.writeError(w, carouselerrors.NewValidationError("quality", "quality must be a number", err))
			return
		}
	}

	doc, err := s.store.Load(r.Context(), vars["id"])
	if err != nil {
		s.writeError(w, err)
		return
	}
	data, err := s.exporter.RenderSlidePNG(r.Context(), doc, index, quality)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(data)
}

func (s *Server) exportOptions(r *http.Request) (export.Options, error) {
	opts := s.exportOpt
	if q := r.URL.Query().Get("quality"); q != "" {
		quality, err := strconv.ParseFloat(q, 64)
		if err != nil {
			return opts, carouselerrors.NewValidationError("quality", "quality must be a number", err)
		}
		opts.Quality = quality
	}
	return opts, nil
}

func writePDF(w http.ResponseWriter, a *export.Artifact) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", a.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(a.Data)))
	_, _ = a.WriteTo(w)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// streamMessage is one frame of the export progress stream.
type streamMessage struct {
	Type     string           `json:"type"`
	Progress *export.Progress `json:"progress,omitempty"`
	Job      string           `json:"job,omitempty"`
	Download string           `json:"download,omitempty"`
	Filename string           `json:"filename,omitempty"`
	Pages    int              `json:"pages,omitempty"`
	Error    *errorBody       `json:"error,omitempty"`
}

// GET /api/documents/{id}/export/stream?quality=2 (websocket)
//
// The server sends {"type":"progress"} after every page and finishes with
// {"type":"done"} carrying a download path, or {"type":"error"}. Closing the
// socket cancels the export.
func (s *Server) streamExport(w http.ResponseWriter, r *http.Request) {
	opts, err := s.exportOptions(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	doc, err := s.store.Load(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error(err, "websocket upgrade failed")
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	opts.OnProgress = func(p export.Progress) {
		_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := conn.WriteJSON(streamMessage{Type: "progress", Progress: &p}); err != nil {
			cancel()
		}
	}

	artifact, err := s.exporter.Export(ctx, doc, export.Targets(doc), opts)
	_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	if err != nil {
		_, body := describe(err)
		_ = conn.WriteJSON(streamMessage{Type: "error", Error: &body})
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "export failed"))
		return
	}

	job := s.exports.put(artifact)
	_ = conn.WriteJSON(streamMessage{
		Type:     "done",
		Job:      job,
		Download: "/api/exports/" + job,
		Filename: artifact.Filename,
		Pages:    artifact.Pages,
	})
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// GET /api/exports/{job}
func (s *Server) downloadExport(w http.ResponseWriter, r *http.Request) {
	artifact, ok := s.exports.get(mux.Vars(r)["job"])
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "export not found or expired"})
		return
	}
	writePDF(w, artifact)
}

// artifactCache keeps the most recent streamed exports for download.
type artifactCache struct {
	mu    sync.Mutex
	limit int
	order []string
	items map[string]*export.Artifact
}

func newArtifactCache(limit int) *artifactCache {
	return &artifactCache{limit: limit, items: make(map[string]*export.Artifact)}
}

func (c *artifactCache) put(a *export.Artifact) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	job := uuid.NewString()
	c.items[job] = a
	c.order = append(c.order, job)
	for len(c.order) > c.limit {
		delete(c.items, c.order[0])
		c.order = c.order[1:]
	}
	return job
}

func (c *artifactCache) get(job string) (*export.Artifact, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	a, ok := c.items[job]
	return a, ok
}

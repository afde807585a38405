// Package server exposes documents, exports and translation over HTTP.
package server

import (
	"bufio"
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/alexisbeaulieu97/carousel/internal/assets"
	"github.com/alexisbeaulieu97/carousel/internal/export"
	"github.com/alexisbeaulieu97/carousel/internal/generate"
	"github.com/alexisbeaulieu97/carousel/internal/logger"
	"github.com/alexisbeaulieu97/carousel/internal/store"
	"github.com/alexisbeaulieu97/carousel/internal/translate"
)

// maxDocumentBytes bounds JSON request bodies.
const maxDocumentBytes = 8 << 20

// Options wires the server's collaborators. Translator, Generator and
// Assets are optional; their routes answer 501 when unset.
type Options struct {
	Store      store.Store
	Exporter   *export.Exporter
	Translator translate.Translator
	Generator  generate.Generator
	Assets     assets.Store
	Export     export.Options
	Log        *logger.Logger
}

// Server holds the HTTP handlers.
type Server struct {
	store     store.Store
	exporter  *export.Exporter
	pipeline  *translate.Pipeline
	generator generate.Generator
	assets    assets.Store
	exportOpt export.Options
	exports   *artifactCache
	log       *logger.Logger
}

// New builds a server from opts.
func New(opts Options) *Server {
	log := opts.Log.WithComponent("server")
	s := &Server{
		store:     opts.Store,
		exporter:  opts.Exporter,
		generator: opts.Generator,
		assets:    opts.Assets,
		exportOpt: opts.Export,
		exports:   newArtifactCache(8),
		log:       log,
	}
	if opts.Translator != nil {
		s.pipeline = translate.NewPipeline(opts.Translator, opts.Log)
	}
	return s
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.logRequests)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/templates", s.listTemplates).Methods(http.MethodGet)
	api.HandleFunc("/styles", s.listStyles).Methods(http.MethodGet)
	api.HandleFunc("/documents", s.listDocuments).Methods(http.MethodGet)
	api.HandleFunc("/documents", s.createDocument).Methods(http.MethodPost)
	api.HandleFunc("/documents/{id}", s.getDocument).Methods(http.MethodGet)
	api.HandleFunc("/documents/{id}", s.putDocument).Methods(http.MethodPut)
	api.HandleFunc("/documents/{id}", s.deleteDocument).Methods(http.MethodDelete)
	api.HandleFunc("/documents/{id}/export", s.exportDocument).Methods(http.MethodPost)
	api.HandleFunc("/documents/{id}/export/stream", s.streamExport).Methods(http.MethodGet)
	api.HandleFunc("/documents/{id}/slides/{index:[0-9]+}/preview.png", s.previewSlide).Methods(http.MethodGet)
	api.HandleFunc("/documents/{id}/translate", s.translateDocument).Methods(http.MethodPost)
	api.HandleFunc("/exports/{job}", s.downloadExport).Methods(http.MethodGet)
	api.HandleFunc("/generate", s.generateDocument).Methods(http.MethodPost)
	api.HandleFunc("/uploads", s.upload).Methods(http.MethodPost)

	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithFields(map[string]any{"addr": addr}).Info("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Hijack lets the websocket upgrader take over the connection.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	r.status = http.StatusSwitchingProtocols
	return h.Hijack()
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.WithFields(map[string]any{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start).String(),
		}).Debug("request")
	})
}

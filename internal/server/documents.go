package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/alexisbeaulieu97/carousel/internal/assets"
	"github.com/alexisbeaulieu97/carousel/internal/document"
	"github.com/alexisbeaulieu97/carousel/internal/generate"
	"github.com/alexisbeaulieu97/carousel/internal/model"
	"github.com/alexisbeaulieu97/carousel/internal/schema"
	"github.com/alexisbeaulieu97/carousel/internal/style"
	"github.com/alexisbeaulieu97/carousel/internal/translate"
	carouselerrors "github.com/alexisbeaulieu97/carousel/pkg/errors"
)

var errNotConfigured = errors.New("not configured on this server")

type templateJSON struct {
	Type        model.SlideType `json:"type"`
	Label       string          `json:"label"`
	Description string          `json:"description"`
}

// GET /api/templates
func (s *Server) listTemplates(w http.ResponseWriter, r *http.Request) {
	templates := document.Templates()
	out := make([]templateJSON, len(templates))
	for i, t := range templates {
		out[i] = templateJSON{Type: t.Type, Label: t.Label, Description: t.Description}
	}
	writeJSON(w, http.StatusOK, out)
}

type styleJSON struct {
	Key     model.StyleKey `json:"key"`
	Label   string         `json:"label"`
	Kind    style.Kind     `json:"kind"`
	Premium bool           `json:"premium"`
}

// GET /api/styles
func (s *Server) listStyles(w http.ResponseWriter, r *http.Request) {
	keys := style.Keys()
	out := make([]styleJSON, len(keys))
	for i, key := range keys {
		p := style.ResolveBackground(key)
		out[i] = styleJSON{Key: key, Label: p.Label, Kind: p.Kind, Premium: p.Premium}
	}
	writeJSON(w, http.StatusOK, out)
}

// GET /api/documents
func (s *Server) listDocuments(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

type idResponse struct {
	ID string `json:"id"`
}

// POST /api/documents
// A body without slides starts a new document from the cover template.
func (s *Server) createDocument(w http.ResponseWriter, r *http.Request) {
	var doc model.Carousel
	if err := decodeJSON(w, r, &doc); err != nil {
		s.writeError(w, err)
		return
	}
	if len(doc.Slides) == 0 {
		doc = document.NewCarousel(doc.Title)
	}
	if doc.ID == "" {
		doc.ID = schema.NewID()
	}
	s.save(w, r, doc, http.StatusCreated)
}

// GET /api/documents/{id}
func (s *Server) getDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Load(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// PUT /api/documents/{id}
func (s *Server) putDocument(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var doc model.Carousel
	if err := decodeJSON(w, r, &doc); err != nil {
		s.writeError(w, err)
		return
	}
	if doc.ID == "" {
		doc.ID = id
	}
	if doc.ID != id {
		s.writeError(w, carouselerrors.NewValidationError("id", fmt.Sprintf("body id %q does not match %q", doc.ID, id), nil))
		return
	}
	s.save(w, r, doc, http.StatusOK)
}

func (s *Server) save(w http.ResponseWriter, r *http.Request, doc model.Carousel, status int) {
	if err := schema.ValidateCarousel(doc); err != nil {
		s.writeError(w, err)
		return
	}
	id, err := s.store.Save(r.Context(), doc)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, status, idResponse{ID: id})
}

// DELETE /api/documents/{id}
func (s *Server) deleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type translateRequest struct {
	Target string `json:"target"`
	// Save stores the translation as a new document.
	Save bool `json:"save"`
}

type changeJSON struct {
	Path   string `json:"path"`
	Before string `json:"before"`
	After  string `json:"after"`
}

type translateResponse struct {
	ID       string         `json:"id,omitempty"`
	Document model.Carousel `json:"document"`
	Changes  []changeJSON   `json:"changes"`
}

// POST /api/documents/{id}/translate
func (s *Server) translateDocument(w http.ResponseWriter, r *http.Request) {
	if s.pipeline == nil {
		writeJSON(w, http.StatusNotImplemented, errorBody{Error: "translation is " + errNotConfigured.Error()})
		return
	}
	var req translateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if req.Target == "" {
		s.writeError(w, carouselerrors.NewValidationError("target", "target language is required", nil))
		return
	}
	doc, err := s.store.Load(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, err)
		return
	}

	out, err := s.pipeline.Translate(r.Context(), doc, req.Target)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := translateResponse{Document: out, Changes: []changeJSON{}}
	for _, c := range translate.Preview(doc, out) {
		resp.Changes = append(resp.Changes, changeJSON{Path: c.Path, Before: c.Before, After: c.After})
	}
	if req.Save {
		out.ID = schema.NewID()
		out.Title = fmt.Sprintf("%s (%s)", doc.Title, req.Target)
		id, err := s.store.Save(r.Context(), out)
		if err != nil {
			s.writeError(w, err)
			return
		}
		resp.ID = id
		resp.Document = out
	}
	writeJSON(w, http.StatusOK, resp)
}

// POST /api/generate
func (s *Server) generateDocument(w http.ResponseWriter, r *http.Request) {
	if s.generator == nil {
		writeJSON(w, http.StatusNotImplemented, errorBody{Error: "generation is " + errNotConfigured.Error()})
		return
	}
	var params generate.Params
	if err := decodeJSON(w, r, &params); err != nil {
		s.writeError(w, err)
		return
	}
	doc, err := generate.Generate(r.Context(), s.generator, params, s.log)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if _, err := s.store.Save(r.Context(), doc); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

// POST /api/uploads (multipart field "file")
func (s *Server) upload(w http.ResponseWriter, r *http.Request) {
	if s.assets == nil {
		writeJSON(w, http.StatusNotImplemented, errorBody{Error: "uploads are " + errNotConfigured.Error()})
		return
	}
	// The store enforces the real limit; this only stops runaway bodies.
	r.Body = http.MaxBytesReader(w, r.Body, 4*assets.MaxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, carouselerrors.NewValidationError("file", "multipart field \"file\" is required", err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, carouselerrors.NewValidationError("file", "upload is too large", assets.ErrTooLarge))
			return
		}
		s.writeError(w, err)
		return
	}

	ref, err := s.assets.Upload(r.Context(), assets.File{Name: header.Filename, Data: data})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ref)
}

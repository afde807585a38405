package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/alexisbeaulieu97/carousel/internal/assets"
	"github.com/alexisbeaulieu97/carousel/internal/store"
	carouselerrors "github.com/alexisbeaulieu97/carousel/pkg/errors"
)

type errorBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
	Slide *int   `json:"slide,omitempty"`
	Path  string `json:"path,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status, body := describe(err)
	if status >= http.StatusInternalServerError {
		s.log.Error(err, "request failed")
	}
	writeJSON(w, status, body)
}

// describe maps the error taxonomy onto HTTP statuses.
func describe(err error) (int, errorBody) {
	body := errorBody{Error: err.Error()}

	var (
		validationErr  *carouselerrors.ValidationError
		parseErr       *carouselerrors.ParseError
		invariantErr   *carouselerrors.InvariantError
		exportErr      *carouselerrors.ExportError
		assetErr       *carouselerrors.AssetError
		translationErr *carouselerrors.TranslationError
	)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, body
	case errors.Is(err, assets.ErrTooLarge):
		errors.As(err, &validationErr)
		if validationErr != nil {
			body.Field = validationErr.Field
		}
		return http.StatusRequestEntityTooLarge, body
	case errors.As(err, &validationErr):
		body.Field = validationErr.Field
		return http.StatusUnprocessableEntity, body
	case errors.As(err, &parseErr):
		return http.StatusBadRequest, body
	case errors.As(err, &invariantErr):
		return http.StatusConflict, body
	case errors.As(err, &exportErr):
		slide := exportErr.SlideIndex
		body.Slide = &slide
		return http.StatusBadGateway, body
	case errors.As(err, &translationErr):
		body.Path = translationErr.Path
		return http.StatusBadGateway, body
	case errors.As(err, &assetErr):
		return http.StatusBadGateway, body
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, body
	default:
		return http.StatusInternalServerError, body
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxDocumentBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return carouselerrors.NewParseError("request body", 0, err)
	}
	return nil
}

package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/alexisbeaulieu97/carousel/internal/logger"
	"github.com/alexisbeaulieu97/carousel/internal/model"
)

const documentIDMaxLength = 64

var documentIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// ErrNotFound is returned when no document has the requested id.
var ErrNotFound = errors.New("document not found")

// Store persists carousel documents in the JSON wire format.
type Store interface {
	// Save writes doc and returns its id. A document without an id is given one.
	Save(ctx context.Context, doc model.Carousel) (string, error)
	Load(ctx context.Context, id string) (model.Carousel, error)
	// List returns summaries ordered by most recent update first.
	List(ctx context.Context) ([]Summary, error)
	Delete(ctx context.Context, id string) error
}

// Summary describes a stored document without decoding its slides.
type Summary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slides    int       `json:"slides"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Backend names a Store implementation.
type Backend string

const (
	BackendFile   Backend = "file"
	BackendGit    Backend = "git"
	BackendSQLite Backend = "sqlite"
)

// Open builds the store for backend rooted at path. For the sqlite backend
// path is the database file, otherwise a directory.
func Open(backend Backend, path string, log *logger.Logger) (Store, error) {
	switch backend {
	case BackendFile, "":
		return NewFileStore(path, log)
	case BackendGit:
		return NewGitStore(path, log)
	case BackendSQLite:
		return NewSQLiteStore(path, log)
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}

// ValidateID ensures id can be used as a file name and a primary key.
func ValidateID(id string) error {
	if id == "" {
		return fmt.Errorf("document ID cannot be empty")
	}
	if len(id) > documentIDMaxLength {
		return fmt.Errorf("document ID %q is too long: maximum length is %d characters", id, documentIDMaxLength)
	}
	if !documentIDPattern.MatchString(id) {
		return fmt.Errorf("invalid document ID %q: must match %s", id, documentIDPattern.String())
	}
	return nil
}

// prepare assigns a missing id and checks the result.
func prepare(doc model.Carousel) (model.Carousel, error) {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if err := ValidateID(doc.ID); err != nil {
		return doc, err
	}
	return doc, nil
}

func summarize(doc model.Carousel, at time.Time) Summary {
	return Summary{ID: doc.ID, Title: doc.Title, Slides: len(doc.Slides), UpdatedAt: at.UTC()}
}

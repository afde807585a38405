package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/alexisbeaulieu97/carousel/internal/logger"
	"github.com/alexisbeaulieu97/carousel/internal/model"
	carouselerrors "github.com/alexisbeaulieu97/carousel/pkg/errors"
)

const (
	indexFileName = "index.json"
	indexVersion  = "1.0"
)

// indexFile is the on-disk listing kept next to the documents.
type indexFile struct {
	Version   string    `json:"version"`
	Documents []Summary `json:"documents"`
}

// FileStore keeps one JSON file per document plus an index, all written
// through a temporary file and an atomic rename.
type FileStore struct {
	dir   string
	mu    sync.RWMutex
	index map[string]Summary
	log   *logger.Logger
	now   func() time.Time
}

// NewFileStore opens or creates a store in dir.
func NewFileStore(dir string, log *logger.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	s := &FileStore{
		dir:   dir,
		index: make(map[string]Summary),
		log:   log.WithComponent("store").WithFields(map[string]any{"backend": BackendFile}),
		now:   time.Now,
	}
	if err := s.loadIndex(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileStore) loadIndex() error {
	data, err := os.ReadFile(filepath.Join(s.dir, indexFileName))
	if errors.Is(err, os.ErrNotExist) {
		return s.rebuildIndex()
	}
	if err != nil {
		return err
	}

	var file indexFile
	if err := json.Unmarshal(data, &file); err != nil {
		s.log.Warn("store index is unreadable, rebuilding it")
		return s.rebuildIndex()
	}
	for _, sum := range file.Documents {
		s.index[sum.ID] = sum
	}
	return nil
}

// rebuildIndex scans the document files when the index is missing or broken.
func (s *FileStore) rebuildIndex() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("failed to scan store directory: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || e.Name() == indexFileName || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		doc, err := model.LoadFile(filepath.Join(s.dir, e.Name()))
		if err != nil {
			s.log.Error(err, "skipping unreadable document")
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		s.index[doc.ID] = summarize(doc, info.ModTime())
	}
	return nil
}

func (s *FileStore) documentPath(id string) string {
	return filepath.Join(s.dir, id+".json")
}

// Save implements Store.
func (s *FileStore) Save(ctx context.Context, doc model.Carousel) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	doc, err := prepare(doc)
	if err != nil {
		return "", carouselerrors.NewValidationError("id", err.Error(), err)
	}
	data, err := model.Encode(doc)
	if err != nil {
		return "", fmt.Errorf("failed to encode document: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := writeAtomic(s.documentPath(doc.ID), data); err != nil {
		return "", err
	}
	previous, existed := s.index[doc.ID]
	s.index[doc.ID] = summarize(doc, s.now())
	if err := s.saveIndex(); err != nil {
		if existed {
			s.index[doc.ID] = previous
		} else {
			delete(s.index, doc.ID)
		}
		return "", err
	}

	s.log.WithFields(map[string]any{"id": doc.ID, "slides": len(doc.Slides)}).Debug("document saved")
	return doc.ID, nil
}

// Load implements Store.
func (s *FileStore) Load(ctx context.Context, id string) (model.Carousel, error) {
	if err := ctx.Err(); err != nil {
		return model.Carousel{}, err
	}
	if err := ValidateID(id); err != nil {
		return model.Carousel{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	path := s.documentPath(id)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return model.Carousel{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return model.LoadFile(path)
}

// List implements Store.
func (s *FileStore) List(ctx context.Context) ([]Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Summary, 0, len(s.index))
	for _, sum := range s.index {
		out = append(out, sum)
	}
	sortSummaries(out)
	return out, nil
}

// Delete implements Store.
func (s *FileStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := ValidateID(id); err != nil {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.documentPath(id)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return err
	}
	delete(s.index, id)
	if err := s.saveIndex(); err != nil {
		return err
	}
	s.log.WithFields(map[string]any{"id": id}).Debug("document deleted")
	return nil
}

func (s *FileStore) saveIndex() error {
	file := indexFile{Version: indexVersion, Documents: make([]Summary, 0, len(s.index))}
	for _, sum := range s.index {
		file.Documents = append(file.Documents, sum)
	}
	sortSummaries(file.Documents)

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal store index: %w", err)
	}
	return writeAtomic(filepath.Join(s.dir, indexFileName), data)
}

// writeAtomic writes to a temporary file first and renames it into place.
func writeAtomic(path string, data []byte) error {
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}
	return nil
}

func sortSummaries(out []Summary) {
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].ID < out[j].ID
	})
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/alexisbeaulieu97/carousel/internal/logger"
	"github.com/alexisbeaulieu97/carousel/internal/model"
	carouselerrors "github.com/alexisbeaulieu97/carousel/pkg/errors"
)

const createDocumentsTable = `
CREATE TABLE IF NOT EXISTS documents (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL DEFAULT '',
	slides INTEGER NOT NULL DEFAULT 0,
	body TEXT NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

const createUpdatedIndex = `CREATE INDEX IF NOT EXISTS idx_documents_updated_at ON documents(updated_at);`

// SQLiteStore keeps documents in a single SQLite table. The body column
// holds the JSON wire format unchanged.
type SQLiteStore struct {
	db  *sql.DB
	log *logger.Logger
	now func() time.Time
}

// NewSQLiteStore opens (and if needed creates) the database at path.
func NewSQLiteStore(path string, log *logger.Logger) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=1&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	for _, stmt := range []string{createDocumentsTable, createUpdatedIndex} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create tables: %w", err)
		}
	}

	s := &SQLiteStore{
		db:  db,
		log: log.WithComponent("store").WithFields(map[string]any{"backend": BackendSQLite}),
		now: time.Now,
	}
	s.log.WithFields(map[string]any{"path": path}).Debug("database initialized")
	return s, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save implements Store.
func (s *SQLiteStore) Save(ctx context.Context, doc model.Carousel) (string, error) {
	doc, err := prepare(doc)
	if err != nil {
		return "", carouselerrors.NewValidationError("id", err.Error(), err)
	}
	body, err := model.Encode(doc)
	if err != nil {
		return "", fmt.Errorf("failed to encode document: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (id, title, slides, body, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			slides = excluded.slides,
			body = excluded.body,
			updated_at = excluded.updated_at`,
		doc.ID, doc.Title, len(doc.Slides), string(body), s.now().UTC())
	if err != nil {
		return "", fmt.Errorf("failed to save document: %w", err)
	}

	s.log.WithFields(map[string]any{"id": doc.ID, "slides": len(doc.Slides)}).Debug("document saved")
	return doc.ID, nil
}

// Load implements Store.
func (s *SQLiteStore) Load(ctx context.Context, id string) (model.Carousel, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM documents WHERE id = ?`, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Carousel{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return model.Carousel{}, fmt.Errorf("failed to load document: %w", err)
	}

	doc, err := model.Decode([]byte(body), model.FormatJSON)
	if err != nil {
		return model.Carousel{}, carouselerrors.NewParseError("documents/"+id, 0, err)
	}
	return doc, nil
}

// List implements Store.
func (s *SQLiteStore) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, slides, updated_at FROM documents ORDER BY updated_at DESC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	out := []Summary{}
	for rows.Next() {
		var sum Summary
		if err := rows.Scan(&sum.ID, &sum.Title, &sum.Slides, &sum.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		sum.UpdatedAt = sum.UpdatedAt.UTC()
		out = append(out, sum)
	}
	return out, rows.Err()
}

// Delete implements Store.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.log.WithFields(map[string]any{"id": id}).Debug("document deleted")
	return nil
}

package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/alexisbeaulieu97/carousel/internal/logger"
	"github.com/alexisbeaulieu97/carousel/internal/model"
)

// Revision is one committed version of a document.
type Revision struct {
	Hash    string    `json:"hash"`
	Message string    `json:"message"`
	When    time.Time `json:"when"`
}

// GitStore is a FileStore whose directory is a git work tree. Every save and
// delete is committed, so earlier versions of a document stay retrievable.
type GitStore struct {
	files *FileStore
	repo  *git.Repository
	mu    sync.Mutex
	log   *logger.Logger
}

// NewGitStore opens the repository in dir, initializing it when needed.
func NewGitStore(dir string, log *logger.Logger) (*GitStore, error) {
	files, err := NewFileStore(dir, log)
	if err != nil {
		return nil, err
	}

	repo, err := git.PlainOpen(dir)
	if errors.Is(err, git.ErrRepositoryNotExists) {
		repo, err = git.PlainInit(dir, false)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open store repository: %w", err)
	}

	return &GitStore{
		files: files,
		repo:  repo,
		log:   log.WithComponent("store").WithFields(map[string]any{"backend": BackendGit}),
	}, nil
}

// Save implements Store and commits the new version.
func (g *GitStore) Save(ctx context.Context, doc model.Carousel) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	id, err := g.files.Save(ctx, doc)
	if err != nil {
		return "", err
	}

	wt, err := g.repo.Worktree()
	if err != nil {
		return "", err
	}
	for _, name := range []string{id + ".json", indexFileName} {
		if _, err := wt.Add(name); err != nil {
			return "", fmt.Errorf("failed to stage %s: %w", name, err)
		}
	}
	if err := g.commit(wt, fmt.Sprintf("save %s: %s", id, doc.Title)); err != nil {
		return "", err
	}
	return id, nil
}

// Load implements Store. It reads the work tree, which always holds the
// latest committed version.
func (g *GitStore) Load(ctx context.Context, id string) (model.Carousel, error) {
	return g.files.Load(ctx, id)
}

// List implements Store.
func (g *GitStore) List(ctx context.Context) ([]Summary, error) {
	return g.files.List(ctx)
}

// Delete implements Store and commits the removal.
func (g *GitStore) Delete(ctx context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.files.Delete(ctx, id); err != nil {
		return err
	}

	wt, err := g.repo.Worktree()
	if err != nil {
		return err
	}
	if _, err := wt.Remove(id + ".json"); err != nil {
		return fmt.Errorf("failed to unstage %s: %w", id, err)
	}
	if _, err := wt.Add(indexFileName); err != nil {
		return fmt.Errorf("failed to stage index: %w", err)
	}
	return g.commit(wt, "delete "+id)
}

func (g *GitStore) commit(wt *git.Worktree, message string) error {
	hash, err := wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "carousel",
			Email: "carousel@localhost",
			When:  time.Now(),
		},
	})
	if errors.Is(err, git.ErrEmptyCommit) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	g.log.WithFields(map[string]any{"commit": hash.String()[:7]}).Debug(message)
	return nil
}

// History lists the commits that touched the document, newest first.
func (g *GitStore) History(ctx context.Context, id string) ([]Revision, error) {
	if err := ValidateID(id); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	name := id + ".json"
	iter, err := g.repo.Log(&git.LogOptions{FileName: &name, Order: git.LogOrderCommitterTime})
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var revisions []Revision
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		revisions = append(revisions, Revision{Hash: c.Hash.String(), Message: c.Message, When: c.Author.When})
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(revisions) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return revisions, nil
}

// LoadRevision decodes the document as it was at the given commit.
func (g *GitStore) LoadRevision(ctx context.Context, id, hash string) (model.Carousel, error) {
	if err := ctx.Err(); err != nil {
		return model.Carousel{}, err
	}
	if err := ValidateID(id); err != nil {
		return model.Carousel{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	commit, err := g.repo.CommitObject(plumbing.NewHash(hash))
	if err != nil {
		return model.Carousel{}, fmt.Errorf("revision %s: %w", hash, err)
	}
	file, err := commit.File(id + ".json")
	if errors.Is(err, object.ErrFileNotFound) {
		return model.Carousel{}, fmt.Errorf("%w: %s at %s", ErrNotFound, id, hash)
	}
	if err != nil {
		return model.Carousel{}, err
	}
	contents, err := file.Contents()
	if err != nil {
		return model.Carousel{}, err
	}
	return model.Decode([]byte(contents), model.FormatJSON)
}

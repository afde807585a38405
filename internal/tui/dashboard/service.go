package dashboard

import (
	"context"

	"github.com/alexisbeaulieu97/carousel/internal/model"
	"github.com/alexisbeaulieu97/carousel/internal/store"
)

// Library is the part of a document store the dashboard browses.
type Library interface {
	List(ctx context.Context) ([]store.Summary, error)
	Load(ctx context.Context, id string) (model.Carousel, error)
	Delete(ctx context.Context, id string) error
}

// Historian is implemented by stores that keep earlier versions of a
// document, such as store.GitStore.
type Historian interface {
	History(ctx context.Context, id string) ([]store.Revision, error)
}

var (
	_ Library   = store.Store(nil)
	_ Historian = (*store.GitStore)(nil)
)

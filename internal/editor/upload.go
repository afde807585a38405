package editor

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/alexisbeaulieu97/carousel/internal/assets"
	"github.com/alexisbeaulieu97/carousel/internal/document"
	"github.com/alexisbeaulieu97/carousel/internal/model"
)

// Uploader validates images and hands them to the asset store before they
// are referenced from the document.
type Uploader struct {
	Store    assets.Store
	MaxBytes int64
}

// UploadBackground sets an uploaded image as the active slide's background.
// A rejected or failed upload leaves the document untouched and is returned
// both as the error and as an error notice.
func (u Uploader) UploadBackground(ctx context.Context, s State, f assets.File) (State, error) {
	ref, err := u.accept(ctx, f)
	if err != nil {
		return refuse(s, err), err
	}

	styles := s.Slide().Styles
	previous := ""
	if styles.BackgroundImage != nil {
		previous = styles.BackgroundImage.Path
	}
	styles.BackgroundImage = &model.BackgroundImage{URL: ref.URL, Path: ref.Path}
	next, err := document.UpdateSlideStyles(s.Doc, s.ActiveSlide, styles)
	if err != nil {
		return refuse(s, err), err
	}
	return release(uploaded(commit(s, next), ref.Path), previous), nil
}

// UploadImage sets the source of an IMAGE block on the active slide.
func (u Uploader) UploadImage(ctx context.Context, s State, blockID string, f assets.File) (State, error) {
	block, ok := findBlock(s, blockID)
	if !ok {
		err := fmt.Errorf("no block %q on the active slide", blockID)
		return refuse(s, err), err
	}
	content, ok := block.Content.(model.ImageContent)
	if !ok {
		err := fmt.Errorf("block %q is %s, not IMAGE", blockID, block.Type)
		return refuse(s, err), err
	}

	ref, err := u.accept(ctx, f)
	if err != nil {
		return refuse(s, err), err
	}

	previous := content.Path
	content.Src = model.StringPtr(ref.URL)
	content.Path = ref.Path
	next, err := document.UpdateBlock(s.Doc, s.ActiveSlide, blockID, content)
	if err != nil {
		return refuse(s, err), err
	}
	return release(uploaded(commit(s, next), ref.Path), previous), nil
}

// ClearBackground drops the active slide's background image. The stored
// asset stays in place while undo can still bring it back; Prune removes it
// once nothing references it.
func (u Uploader) ClearBackground(_ context.Context, s State) (State, error) {
	styles := s.Slide().Styles
	if styles.BackgroundImage == nil {
		return s, nil
	}
	path := styles.BackgroundImage.Path
	styles.BackgroundImage = nil

	next, err := document.UpdateSlideStyles(s.Doc, s.ActiveSlide, styles)
	if err != nil {
		return refuse(s, err), err
	}
	return release(commit(s, next), path), nil
}

// Prune deletes assets uploaded during this session that were released and
// that neither the document nor its undo and redo history reference. Call it
// once the document is saved. Assets still referenced stay released and are
// checked again on the next call.
func (u Uploader) Prune(ctx context.Context, s State) (State, error) {
	if len(s.released) == 0 || u.Store == nil {
		return s, nil
	}

	inUse := assetPaths(s.Doc)
	for _, doc := range s.past {
		maps.Copy(inUse, assetPaths(doc))
	}
	for _, doc := range s.future {
		maps.Copy(inUse, assetPaths(doc))
	}

	var kept []string
	var errs []error
	for _, path := range s.released {
		if _, ok := inUse[path]; ok {
			kept = append(kept, path)
			continue
		}
		if err := u.Store.Delete(ctx, path); err != nil {
			kept = append(kept, path)
			errs = append(errs, err)
		}
	}
	s.released = kept
	return s, errors.Join(errs...)
}

// uploaded records an asset stored during this session. Only those are ever
// pruned; assets from earlier sessions may be shared with other documents.
func uploaded(s State, path string) State {
	if path != "" && !slices.Contains(s.uploaded, path) {
		s.uploaded = append(slices.Clip(s.uploaded), path)
	}
	return s
}

// release records a session upload as possibly unused.
func release(s State, path string) State {
	if !slices.Contains(s.uploaded, path) || slices.Contains(s.released, path) {
		return s
	}
	s.released = append(slices.Clip(s.released), path)
	return s
}

// assetPaths collects the stored asset paths a document references.
func assetPaths(c model.Carousel) map[string]struct{} {
	paths := make(map[string]struct{})
	for _, slide := range c.Slides {
		if bg := slide.Styles.BackgroundImage; bg != nil && bg.Path != "" {
			paths[bg.Path] = struct{}{}
		}
		for _, b := range slide.Blocks {
			if img, ok := b.Content.(model.ImageContent); ok && img.Path != "" {
				paths[img.Path] = struct{}{}
			}
		}
	}
	return paths
}

func (u Uploader) accept(ctx context.Context, f assets.File) (assets.Ref, error) {
	if _, err := assets.Check(f, u.MaxBytes); err != nil {
		return assets.Ref{}, err
	}
	if u.Store == nil {
		return assets.Ref{}, fmt.Errorf("no asset store configured")
	}
	return u.Store.Upload(ctx, f)
}

func findBlock(s State, id string) (model.Block, bool) {
	slide := s.Slide()
	idx := slide.BlockIndex(id)
	if idx < 0 {
		return model.Block{}, false
	}
	return slide.Blocks[idx], true
}

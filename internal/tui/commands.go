package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/carousel/internal/assets"
	"github.com/alexisbeaulieu97/carousel/internal/export"
	"github.com/alexisbeaulieu97/carousel/internal/model"
	"github.com/alexisbeaulieu97/carousel/internal/store"
	"github.com/alexisbeaulieu97/carousel/internal/translate"
)

// operationTimeout bounds asset store calls made while handling a message.
const operationTimeout = 10 * time.Second

// saveCmd persists doc to the store or, without one, to path.
func saveCmd(st store.Store, path string, doc model.Carousel) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		switch {
		case st != nil:
			id, err := st.Save(ctx, doc)
			if err != nil {
				return SaveErrorMsg{Err: err}
			}
			return SavedMsg{ID: id, At: time.Now()}
		case path != "":
			if err := model.SaveFile(path, doc); err != nil {
				return SaveErrorMsg{Err: err}
			}
			return SavedMsg{ID: doc.ID, At: time.Now()}
		default:
			return SaveErrorMsg{Err: errors.New("no store or file to save to")}
		}
	}
}

// startExport runs the export in the background. Progress and the final
// result arrive on the returned channel, which waitForExport drains one
// message at a time.
func startExport(ctx context.Context, exp *export.Exporter, doc model.Carousel, opts export.Options, outDir string) <-chan tea.Msg {
	ch := make(chan tea.Msg, len(doc.Slides)+1)
	go func() {
		defer close(ch)
		started := time.Now()
		opts.OnProgress = func(p export.Progress) {
			ch <- ExportProgressMsg{Progress: p}
		}

		art, err := exp.Export(ctx, doc, export.Targets(doc), opts)
		if err != nil {
			ch <- ExportDoneMsg{Err: err, Canceled: ctx.Err() != nil}
			return
		}

		path := filepath.Join(outDir, art.Filename)
		if err := writeArtifact(path, art); err != nil {
			ch <- ExportDoneMsg{Err: err}
			return
		}
		ch <- ExportDoneMsg{
			Path:    path,
			Pages:   art.Pages,
			Width:   art.Width,
			Height:  art.Height,
			Elapsed: time.Since(started),
		}
	}()
	return ch
}

func waitForExport(ch <-chan tea.Msg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

func writeArtifact(path string, art *export.Artifact) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := art.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func yankCmd(clip Clipboard, text string) tea.Cmd {
	return func() tea.Msg {
		return ClipboardMsg{Text: text, Err: clip.WriteAll(text)}
	}
}

func pasteCmd(clip Clipboard) tea.Cmd {
	return func() tea.Msg {
		text, err := clip.ReadAll()
		return ClipboardMsg{Text: text, Paste: true, Err: err}
	}
}

// blockTexts returns the translatable strings of every block, keyed by
// slide and block index.
func blockTexts(doc model.Carousel) map[[2]int][]string {
	out := make(map[[2]int][]string)
	for _, t := range translate.ExtractTexts(doc) {
		p, err := translate.ParsePath(t.Path)
		if err != nil {
			continue
		}
		k := [2]int{p.Slide, p.Block}
		out[k] = append(out[k], t.Value)
	}
	return out
}

func caption(texts []string) string {
	return strings.Join(texts, " · ")
}

// readImageCmd reads the file at path for import. Quotes left by terminals
// that paste dropped files are stripped, and a leading ~ is expanded.
func readImageCmd(path, blockID string) tea.Cmd {
	return func() tea.Msg {
		path = strings.Trim(strings.TrimSpace(path), `"'`)
		if path == "" {
			return ImageReadMsg{BlockID: blockID, Err: errors.New("no file given")}
		}
		if rest, ok := strings.CutPrefix(path, "~/"); ok {
			if home, err := os.UserHomeDir(); err == nil {
				path = filepath.Join(home, rest)
			}
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return ImageReadMsg{BlockID: blockID, Err: err}
		}
		return ImageReadMsg{BlockID: blockID, File: assets.File{Name: filepath.Base(path), Data: data}}
	}
}

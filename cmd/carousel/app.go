package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/carousel/internal/assets"
	"github.com/alexisbeaulieu97/carousel/internal/config"
	"github.com/alexisbeaulieu97/carousel/internal/export"
	"github.com/alexisbeaulieu97/carousel/internal/generate"
	"github.com/alexisbeaulieu97/carousel/internal/logger"
	"github.com/alexisbeaulieu97/carousel/internal/model"
	"github.com/alexisbeaulieu97/carousel/internal/store"
	"github.com/alexisbeaulieu97/carousel/internal/translate"
)

// appContext bundles the long-lived services built from the configuration.
type appContext struct {
	cfg   *config.Config
	log   *logger.Logger
	store store.Store
}

// openApp loads the configuration, builds the logger and opens the store.
// Callers must close the returned context.
func openApp(cmd *cobra.Command, flags *rootFlags, name string) (*appContext, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, newCommandError(name, "loading configuration", err, "Fix the config file or pass --config with a valid path.")
	}

	level := cfg.LogLevel
	if flags.verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Options{
		Level:         level,
		HumanReadable: true,
		Writer:        cmd.ErrOrStderr(),
		Component:     "command." + name,
	})
	if err != nil {
		return nil, newCommandError(name, "creating logger", err, "Use one of debug, info, warn or error for log_level.")
	}

	st, err := store.Open(store.Backend(cfg.Store.Backend), cfg.Store.Path, log)
	if err != nil {
		return nil, newCommandError(name, "opening the document store", err, fmt.Sprintf("Check that %s is writable.", cfg.Store.Path))
	}

	return &appContext{cfg: cfg, log: log, store: st}, nil
}

func (a *appContext) Close() error {
	if c, ok := a.store.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// documentRef is where a document came from: a file on disk or a store id.
type documentRef struct {
	ID   string
	Path string
}

// loadDocument resolves ref as a file when one exists at that path, and as
// a store id otherwise.
func (a *appContext) loadDocument(ctx context.Context, ref string) (model.Carousel, documentRef, error) {
	if info, err := os.Stat(ref); err == nil && !info.IsDir() {
		doc, err := model.LoadFile(ref)
		if err != nil {
			return model.Carousel{}, documentRef{}, err
		}
		return doc, documentRef{Path: ref}, nil
	}

	doc, err := a.store.Load(ctx, ref)
	if err != nil {
		return model.Carousel{}, documentRef{}, err
	}
	return doc, documentRef{ID: ref}, nil
}

// saveDocument writes doc back where it came from.
func (a *appContext) saveDocument(ctx context.Context, ref documentRef, doc model.Carousel) (string, error) {
	if ref.Path != "" {
		return ref.Path, model.SaveFile(ref.Path, doc)
	}
	return a.store.Save(ctx, doc)
}

// assetDir is where relative image paths in ref's document resolve.
func (a *appContext) assetDir(ref documentRef) string {
	if ref.Path != "" {
		return filepath.Dir(ref.Path)
	}
	return a.cfg.Uploads.Dir
}

func (a *appContext) exporter(ref documentRef) *export.Exporter {
	loader := assets.NewLoader(assets.LoaderOptions{
		BaseDir:  a.assetDir(ref),
		MaxBytes: 4 * a.cfg.Uploads.MaxBytes,
		Logger:   a.log,
	})
	return export.New(loader, a.log)
}

func (a *appContext) exportOptions() export.Options {
	return export.Options{
		Quality:      a.cfg.Export.Quality,
		AssetTimeout: a.cfg.Export.AssetTimeout.Std(),
	}
}

// translator picks the configured translation service: the HTTP endpoint
// when set, otherwise the glossary. glossary overrides the configured file.
func (a *appContext) translator(glossary string) (translate.Translator, error) {
	if glossary == "" && a.cfg.Translate.Endpoint != "" {
		return &translate.HTTPTranslator{
			Endpoint: a.cfg.Translate.Endpoint,
			APIKey:   config.Env(a.cfg.Translate.APIKeyEnv),
			Client:   &http.Client{},
		}, nil
	}
	if glossary == "" {
		glossary = a.cfg.Translate.Glossary
	}
	if glossary == "" {
		return nil, errors.New("no translation service configured")
	}
	g, err := translate.LoadGlossary(glossary)
	if err != nil {
		return nil, err
	}
	return translate.NewGlossaryTranslator(g), nil
}

// generator picks the configured generation service, falling back to the
// offline outline generator.
func (a *appContext) generator() generate.Generator {
	if a.cfg.Generate.Endpoint != "" {
		return &generate.HTTPGenerator{
			Endpoint: a.cfg.Generate.Endpoint,
			APIKey:   config.Env(a.cfg.Generate.APIKeyEnv),
			Client:   &http.Client{},
		}
	}
	return generate.OutlineGenerator{Handle: a.cfg.Generate.Handle}
}

func (a *appContext) assetStore() (*assets.LocalStore, error) {
	return assets.NewLocalStore(a.cfg.Uploads.Dir, a.cfg.Uploads.MaxBytes, a.log)
}

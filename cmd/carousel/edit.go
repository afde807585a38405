package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/carousel/internal/document"
	"github.com/alexisbeaulieu97/carousel/internal/editor"
	"github.com/alexisbeaulieu97/carousel/internal/model"
	"github.com/alexisbeaulieu97/carousel/internal/tui"
	"github.com/alexisbeaulieu97/carousel/internal/tui/dashboard"
)

type editOptions struct {
	outDir string
}

func newEditCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &editOptions{}

	cmd := &cobra.Command{
		Use:   "edit [id|file]",
		Short: "Open the interactive editor",
		Long: `Open the interactive editor on a stored document or a file. Without an
argument the library opens first; pick a document or press n for a new one.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := ""
			if len(args) == 1 {
				ref = args[0]
			}
			return runEditWith(cmd, rootFlags, ref, opts)
		},
	}

	cmd.Flags().StringVar(&opts.outDir, "export-dir", ".", "Directory for PDFs exported from the editor")

	return cmd
}

func runEdit(cmd *cobra.Command, rootFlags *rootFlags, ref string) error {
	return runEditWith(cmd, rootFlags, ref, &editOptions{outDir: "."})
}

func runEditWith(cmd *cobra.Command, rootFlags *rootFlags, ref string, opts *editOptions) error {
	app, err := openApp(cmd, rootFlags, "edit")
	if err != nil {
		return err
	}
	defer app.Close()

	if ref != "" {
		doc, source, err := app.loadDocument(cmd.Context(), ref)
		if err != nil {
			return newCommandError("edit", fmt.Sprintf("loading %q", ref), err, "Run 'carousel store list' to see stored documents.")
		}
		return app.edit(cmd, doc, source, opts)
	}

	for {
		id, createNew, err := dashboard.Run(cmd.Context(), app.store, supportsUnicode(cmd.OutOrStdout()))
		if err != nil {
			return newCommandError("edit", "running the library", err, "Make sure the terminal is interactive.")
		}

		var (
			doc    model.Carousel
			source documentRef
		)
		switch {
		case createNew:
			doc = document.NewCarousel("")
			source = documentRef{}
		case id != "":
			doc, source, err = app.loadDocument(cmd.Context(), id)
			if err != nil {
				return newCommandError("edit", fmt.Sprintf("loading %q", id), err, "The document may have been removed; reopen the library.")
			}
		default:
			return nil
		}

		if err := app.edit(cmd, doc, source, opts); err != nil {
			return err
		}
	}
}

func (a *appContext) edit(cmd *cobra.Command, doc model.Carousel, source documentRef, opts *editOptions) error {
	editorOpts := tui.Options{
		Exporter: a.exporter(source),
		Export:   a.exportOptions(),
		OutDir:   opts.outDir,
		Log:      a.log,
	}
	if uploads, err := a.assetStore(); err != nil {
		a.log.WithFields(map[string]any{"reason": err.Error()}).Warn("image import disabled")
	} else {
		editorOpts.Uploads = &editor.Uploader{Store: uploads, MaxBytes: a.cfg.Uploads.MaxBytes}
	}
	if source.Path != "" {
		editorOpts.Path = source.Path
	} else {
		editorOpts.Store = a.store
	}

	if _, err := tui.Run(cmd.Context(), doc, source.ID, editorOpts); err != nil {
		return newCommandError("edit", "running the editor", err, "Make sure the terminal is interactive.")
	}
	return nil
}

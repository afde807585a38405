package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/carousel/internal/export"
)

type previewOptions struct {
	slide   int
	out     string
	quality float64
}

func newPreviewCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &previewOptions{}

	cmd := &cobra.Command{
		Use:   "preview <id|file>",
		Short: "Render one slide as a PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd, rootFlags, args[0], opts)
		},
	}

	cmd.Flags().IntVarP(&opts.slide, "slide", "s", 1, "Slide number, starting at 1")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Output file (default: <title>-<slide>.png)")
	cmd.Flags().Float64Var(&opts.quality, "quality", 1, "Raster multiplier from 1 to 4")

	return cmd
}

func runPreview(cmd *cobra.Command, rootFlags *rootFlags, ref string, opts *previewOptions) error {
	app, err := openApp(cmd, rootFlags, "preview")
	if err != nil {
		return err
	}
	defer app.Close()
	ctx := cmd.Context()

	doc, source, err := app.loadDocument(ctx, ref)
	if err != nil {
		return newCommandError("preview", fmt.Sprintf("loading %q", ref), err, "Run 'carousel store list' to see stored documents.")
	}

	data, err := app.exporter(source).RenderSlidePNG(ctx, doc, opts.slide-1, opts.quality)
	if err != nil {
		return newCommandError("preview", fmt.Sprintf("rendering slide %d", opts.slide), err, fmt.Sprintf("Pick a slide between 1 and %d.", len(doc.Slides)))
	}

	path := opts.out
	if path == "" {
		base := export.Filename(doc.Title)
		path = fmt.Sprintf("%s-%d.png", base[:len(base)-len(filepath.Ext(base))], opts.slide)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return newCommandError("preview", fmt.Sprintf("writing %s", path), err, "Check that the output location is writable.")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote slide %d to %s\n", opts.slide, path)
	return nil
}

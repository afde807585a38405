package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/carousel/internal/export"
)

type exportOptions struct {
	out     string
	quality float64
	quiet   bool
}

func newExportCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export <id|file>",
		Short: "Export a carousel as a PDF with one page per slide",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, rootFlags, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Output file or directory (default: <title>.pdf in the current directory)")
	cmd.Flags().Float64Var(&opts.quality, "quality", 0, "Raster multiplier from 1 to 4 (default from config)")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Do not print progress")

	return cmd
}

func runExport(cmd *cobra.Command, rootFlags *rootFlags, ref string, opts *exportOptions) error {
	app, err := openApp(cmd, rootFlags, "export")
	if err != nil {
		return err
	}
	defer app.Close()
	ctx := cmd.Context()

	doc, source, err := app.loadDocument(ctx, ref)
	if err != nil {
		return newCommandError("export", fmt.Sprintf("loading %q", ref), err, "Run 'carousel store list' to see stored documents.")
	}

	options := app.exportOptions()
	if opts.quality != 0 {
		options.Quality = opts.quality
	}
	if !opts.quiet {
		errOut := cmd.ErrOrStderr()
		options.OnProgress = func(p export.Progress) {
			fmt.Fprintf(errOut, "page %d/%d (%d%%)\n", p.Current, p.Total, p.Percentage)
		}
	}

	start := time.Now()
	art, err := app.exporter(source).Export(ctx, doc, export.Targets(doc), options)
	if err != nil {
		return newCommandError("export", "rendering pages", err, "Run 'carousel validate' on the document and check that every image is reachable.")
	}

	path := exportPath(opts.out, art.Filename)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return newCommandError("export", "creating output directory", err, "Check that the output location is writable.")
		}
	}
	if err := os.WriteFile(path, art.Data, 0o644); err != nil {
		return newCommandError("export", fmt.Sprintf("writing %s", path), err, "Check that the output location is writable.")
	}

	app.log.WithFields(map[string]any{
		"pages":    art.Pages,
		"path":     path,
		"duration": time.Since(start).Round(time.Millisecond).String(),
	}).Info("export finished")
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d page(s) to %s\n", art.Pages, path)
	return nil
}

// exportPath resolves --out: empty means the artifact name in the working
// directory, an existing directory or a trailing separator means the
// artifact name inside it, anything else is the file itself.
func exportPath(out, filename string) string {
	if out == "" {
		return filename
	}
	if strings.HasSuffix(out, string(os.PathSeparator)) {
		return filepath.Join(out, filename)
	}
	if info, err := os.Stat(out); err == nil && info.IsDir() {
		return filepath.Join(out, filename)
	}
	return out
}

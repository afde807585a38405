package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/carousel/internal/server"
)

func newServeCmd(rootFlags *rootFlags) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the carousel HTTP API",
		Long: `Serve exposes the document store, export, preview, translation, generation
and uploads over HTTP. Export progress can be followed over a websocket.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, rootFlags, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")

	return cmd
}

func runServe(cmd *cobra.Command, rootFlags *rootFlags, addr string) error {
	app, err := openApp(cmd, rootFlags, "serve")
	if err != nil {
		return err
	}
	defer app.Close()

	if addr == "" {
		addr = app.cfg.Server.Addr
	}

	uploads, err := app.assetStore()
	if err != nil {
		return newCommandError("serve", "preparing the upload directory", err, "Check that uploads.dir is writable.")
	}

	opts := server.Options{
		Store:     app.store,
		Exporter:  app.exporter(documentRef{}),
		Generator: app.generator(),
		Assets:    uploads,
		Export:    app.exportOptions(),
		Log:       app.log,
	}
	if translator, err := app.translator(""); err == nil {
		opts.Translator = translator
	} else {
		app.log.WithFields(map[string]any{"reason": err.Error()}).Warn("translation disabled")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.New(opts).ListenAndServe(ctx, addr); err != nil {
		return newCommandError("serve", "listening on "+addr, err, "Pick a free address with --addr.")
	}
	return nil
}

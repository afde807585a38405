package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/carousel/internal/store"
)

func newStoreCmd(rootFlags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage stored carousels",
	}

	cmd.AddCommand(newStoreListCmd(rootFlags))
	cmd.AddCommand(newStoreRemoveCmd(rootFlags))
	cmd.AddCommand(newStoreHistoryCmd(rootFlags))

	return cmd
}

func newStoreListCmd(rootFlags *rootFlags) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored carousels, most recently updated first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd, rootFlags, "list")
			if err != nil {
				return err
			}
			defer app.Close()

			docs, err := app.store.List(cmd.Context())
			if err != nil {
				return newCommandError("list", "reading the store", err, "Check the store configuration and permissions.")
			}
			if jsonOutput {
				return renderListJSON(cmd, docs)
			}
			return renderListTable(cmd, docs)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

func renderListTable(cmd *cobra.Command, docs []store.Summary) error {
	if len(docs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No carousels stored yet.")
		fmt.Fprintln(cmd.OutOrStdout(), "Create one with: carousel new <title>")
		return nil
	}

	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tTITLE\tSLIDES\tUPDATED")
	for _, d := range docs {
		fmt.Fprintf(writer, "%s\t%s\t%d\t%s\n", d.ID, valueOrFallback(d.Title, "(untitled)"), d.Slides, formatRelativeTime(d.UpdatedAt))
	}
	return writer.Flush()
}

type listJSONPayload struct {
	Version   string          `json:"version"`
	Count     int             `json:"count"`
	Documents []store.Summary `json:"documents"`
}

func renderListJSON(cmd *cobra.Command, docs []store.Summary) error {
	if docs == nil {
		docs = []store.Summary{}
	}
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(listJSONPayload{Version: "1.0", Count: len(docs), Documents: docs})
}

func newStoreRemoveCmd(rootFlags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm <id>...",
		Aliases: []string{"remove"},
		Short:   "Delete stored carousels",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd, rootFlags, "remove")
			if err != nil {
				return err
			}
			defer app.Close()

			for _, id := range args {
				if err := app.store.Delete(cmd.Context(), id); err != nil {
					suggestion := "Check the store configuration and permissions."
					if errors.Is(err, store.ErrNotFound) {
						suggestion = "Run 'carousel store list' to view stored documents."
					}
					return newCommandError("remove carousel", fmt.Sprintf("deleting %q", id), err, suggestion)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", id)
			}
			return nil
		},
	}

	return cmd
}

func newStoreHistoryCmd(rootFlags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history <id>",
		Short: "List the saved revisions of a carousel (git store only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd, rootFlags, "history")
			if err != nil {
				return err
			}
			defer app.Close()

			gs, ok := app.store.(*store.GitStore)
			if !ok {
				return newCommandError("show history", args[0], fmt.Errorf("the %s store keeps no history", app.cfg.Store.Backend), "Set store.backend to git in the config.")
			}
			revisions, err := gs.History(cmd.Context(), args[0])
			if err != nil {
				return newCommandError("show history", fmt.Sprintf("reading revisions of %q", args[0]), err, "Run 'carousel store list' to view stored documents.")
			}

			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(writer, "COMMIT\tWHEN\tMESSAGE")
			for _, r := range revisions {
				fmt.Fprintf(writer, "%s\t%s\t%s\n", r.Hash[:min(7, len(r.Hash))], r.When.Format(time.RFC3339), strings.TrimSpace(r.Message))
			}
			return writer.Flush()
		},
	}

	return cmd
}

func formatRelativeTime(ts time.Time) string {
	if ts.IsZero() {
		return "never"
	}

	delta := time.Since(ts)
	if delta < time.Minute {
		return "just now"
	}
	if delta < time.Hour {
		return fmt.Sprintf("%d minutes ago", int(delta.Minutes()))
	}
	if delta < 24*time.Hour {
		return fmt.Sprintf("%d hours ago", int(delta.Hours()))
	}
	return ts.Format("2006-01-02")
}

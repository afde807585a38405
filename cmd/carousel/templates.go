package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/carousel/internal/document"
	"github.com/alexisbeaulieu97/carousel/internal/style"
)

func newTemplatesCmd() *cobra.Command {
	var backgrounds bool

	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List slide templates, or background styles with --backgrounds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			if backgrounds {
				fmt.Fprintln(writer, "KEY\tLABEL\tKIND\tTONE")
				for _, key := range style.Keys() {
					p := style.ResolveBackground(key)
					fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n", key, p.Label, p.Kind, p.Tone)
				}
				return writer.Flush()
			}

			fmt.Fprintln(writer, "TYPE\tNAME\tDESCRIPTION")
			for _, t := range document.Templates() {
				fmt.Fprintf(writer, "%s\t%s\t%s\n", t.Type, t.Label, t.Description)
			}
			return writer.Flush()
		},
	}

	cmd.Flags().BoolVar(&backgrounds, "backgrounds", false, "List the background style catalog instead")

	return cmd
}

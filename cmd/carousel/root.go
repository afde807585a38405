package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	verbose    bool
	configPath string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "carousel",
		Short:         "Carousel builds square multi-slide documents and exports them as PDF",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Without a subcommand, browse the library.
			return runEdit(cmd, flags, "")
		},
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "Path to config file (default ~/.carousel/config.yaml)")

	cmd.AddCommand(newNewCmd(flags))
	cmd.AddCommand(newShowCmd(flags))
	cmd.AddCommand(newValidateCmd(flags))
	cmd.AddCommand(newExportCmd(flags))
	cmd.AddCommand(newPreviewCmd(flags))
	cmd.AddCommand(newTranslateCmd(flags))
	cmd.AddCommand(newEditCmd(flags))
	cmd.AddCommand(newServeCmd(flags))
	cmd.AddCommand(newTemplatesCmd())
	cmd.AddCommand(newStoreCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

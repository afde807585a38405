package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/carousel/internal/document"
	"github.com/alexisbeaulieu97/carousel/internal/model"
	"github.com/alexisbeaulieu97/carousel/internal/translate"
)

type translateOptions struct {
	target   string
	glossary string
	out      string
	write    bool
	dryRun   bool
}

func newTranslateCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &translateOptions{}

	cmd := &cobra.Command{
		Use:   "translate <id|file>",
		Short: "Translate every text of a carousel",
		Long: `Translate sends every text leaf to the configured translation service and
prints a diff of the changes. By default the translation is saved as a new
document; use --write to overwrite the source, --out to write a file or
--dry-run to only print the diff.`,
		Example: `  carousel translate launch.yaml --to fr --glossary terms.yaml --dry-run
  carousel translate 3f2a... --to de`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(cmd, rootFlags, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.target, "to", "t", "", "Target language, such as fr or pt-BR")
	cmd.Flags().StringVar(&opts.glossary, "glossary", "", "Translate offline with this YAML glossary")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Write the translation to this .json or .yaml file")
	cmd.Flags().BoolVar(&opts.write, "write", false, "Overwrite the source document")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Print the diff without saving")
	_ = cmd.MarkFlagRequired("to")
	cmd.MarkFlagsMutuallyExclusive("out", "write", "dry-run")

	return cmd
}

func runTranslate(cmd *cobra.Command, rootFlags *rootFlags, ref string, opts *translateOptions) error {
	if strings.TrimSpace(opts.target) == "" {
		return newCommandError("translate", "reading --to", fmt.Errorf("target language is required"), "Pass a language with --to, for example --to fr.")
	}

	app, err := openApp(cmd, rootFlags, "translate")
	if err != nil {
		return err
	}
	defer app.Close()
	ctx := cmd.Context()

	doc, source, err := app.loadDocument(ctx, ref)
	if err != nil {
		return newCommandError("translate", fmt.Sprintf("loading %q", ref), err, "Run 'carousel store list' to see stored documents.")
	}

	translator, err := app.translator(opts.glossary)
	if err != nil {
		return newCommandError("translate", "choosing a translation service", err, "Pass --glossary, or set translate.endpoint or translate.glossary in the config.")
	}

	translated, err := translate.NewPipeline(translator, app.log).Translate(ctx, doc, opts.target)
	if err != nil {
		return newCommandError("translate", fmt.Sprintf("translating to %s", opts.target), err, "Nothing was changed. Check the translation service and try again.")
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, translate.RenderPreview(translate.Preview(doc, translated)))

	switch {
	case opts.dryRun:
		return nil
	case opts.out != "":
		if err := model.SaveFile(opts.out, translated); err != nil {
			return newCommandError("translate", fmt.Sprintf("writing %s", opts.out), err, "Check that the output location is writable.")
		}
		fmt.Fprintf(out, "Wrote %s\n", opts.out)
	case opts.write:
		where, err := app.saveDocument(ctx, source, translated)
		if err != nil {
			return newCommandError("translate", "saving the translation", err, "Check the store configuration and permissions.")
		}
		fmt.Fprintf(out, "Updated %s\n", where)
	default:
		copyDoc := document.SetTitle(translated, fmt.Sprintf("%s (%s)", valueOrFallback(doc.Title, "Untitled carousel"), opts.target))
		copyDoc.ID = ""
		id, err := app.store.Save(ctx, copyDoc)
		if err != nil {
			return newCommandError("translate", "saving the translation", err, "Check the store configuration and permissions.")
		}
		fmt.Fprintf(out, "Created %s\n", id)
	}
	return nil
}

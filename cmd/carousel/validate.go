package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/carousel/internal/schema"
)

var errLintFailed = errors.New("document has errors")

func newValidateCmd(rootFlags *rootFlags) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate <id|file>",
		Short: "Check a carousel for schema errors and likely mistakes",
		Long: `Validate reports schema violations as errors and things that render but are
probably unintended, such as empty text or image blocks without a source, as
warnings. The command fails when any error is found, or any warning with --strict.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, rootFlags, args[0], strict)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Treat warnings as errors")

	return cmd
}

func runValidate(cmd *cobra.Command, rootFlags *rootFlags, ref string, strict bool) error {
	app, err := openApp(cmd, rootFlags, "validate")
	if err != nil {
		return err
	}
	defer app.Close()

	doc, _, err := app.loadDocument(cmd.Context(), ref)
	if err != nil {
		return newCommandError("validate", fmt.Sprintf("loading %q", ref), err, "Check the path or id and that the file is valid JSON or YAML.")
	}

	issues := schema.Lint(doc)
	out := cmd.OutOrStdout()
	mark := "[OK]"
	if supportsUnicode(out) {
		mark = "✓"
	}
	if len(issues) == 0 {
		fmt.Fprintf(out, "%s %s is valid\n", mark, ref)
		return nil
	}
	for _, issue := range issues {
		fmt.Fprintln(out, issue.String())
	}
	fmt.Fprintf(out, "\n%d issue(s)\n", len(issues))

	if schema.HasErrors(issues) || strict {
		return newCommandError("validate", ref, errLintFailed, "Fix the issues listed above and run validate again.")
	}
	return nil
}

package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/carousel/internal/model"
	"github.com/alexisbeaulieu97/carousel/internal/style"
	"github.com/alexisbeaulieu97/carousel/internal/translate"
)

type showOptions struct {
	jsonOutput bool
}

func newShowCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &showOptions{}

	cmd := &cobra.Command{
		Use:   "show <id|file>",
		Short: "Show a carousel's slides and text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, rootFlags, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Print the document as JSON")

	return cmd
}

func runShow(cmd *cobra.Command, rootFlags *rootFlags, ref string, opts *showOptions) error {
	app, err := openApp(cmd, rootFlags, "show")
	if err != nil {
		return err
	}
	defer app.Close()

	doc, _, err := app.loadDocument(cmd.Context(), ref)
	if err != nil {
		return newCommandError("show", fmt.Sprintf("loading %q", ref), err, "Run 'carousel store list' to see stored documents.")
	}

	if opts.jsonOutput {
		data, err := model.Encode(doc)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}
	return renderShowTable(cmd, doc)
}

func renderShowTable(cmd *cobra.Command, doc model.Carousel) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Carousel: %s\n", doc.ID)
	fmt.Fprintf(out, "Title:    %s\n", valueOrFallback(doc.Title, "(untitled)"))
	fmt.Fprintf(out, "Size:     %dx%d\n", doc.Settings.Width, doc.Settings.Height)
	fmt.Fprintf(out, "Slides:   %d\n\n", len(doc.Slides))

	texts := make(map[int][]string)
	for _, t := range translate.ExtractTexts(doc) {
		p, err := translate.ParsePath(t.Path)
		if err != nil {
			continue
		}
		texts[p.Slide] = append(texts[p.Slide], t.Value)
	}

	writer := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(writer, "#\tTYPE\tBACKGROUND\tBLOCKS\tTEXT")
	for i, s := range doc.Slides {
		background := style.ResolveBackground(s.Styles.Background).Label
		if s.Styles.BackgroundImage != nil {
			background = "Image"
		}
		text := strings.Join(texts[i], " · ")
		if r := []rune(text); len(r) > 50 {
			text = string(r[:49]) + "…"
		}
		fmt.Fprintf(writer, "%d\t%s\t%s\t%d\t%s\n", i+1, s.Type, background, len(s.Blocks), strings.ReplaceAll(text, "\n", " "))
	}
	return writer.Flush()
}

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/carousel/internal/document"
	"github.com/alexisbeaulieu97/carousel/internal/generate"
	"github.com/alexisbeaulieu97/carousel/internal/model"
)

type newOptions struct {
	from     string
	audience string
	tone     string
	language string
	slides   int
	points   []string
	out      string
}

func newNewCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &newOptions{}

	cmd := &cobra.Command{
		Use:   "new [title]",
		Short: "Create a carousel, blank or generated from a hypothesis",
		Example: `  carousel new "Launch week"
  carousel new --from "Small teams ship faster" --tone bold --slides 6
  carousel new "Draft" --out draft.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := ""
			if len(args) == 1 {
				title = args[0]
			}
			return runNew(cmd, rootFlags, title, opts)
		},
	}

	cmd.Flags().StringVar(&opts.from, "from", "", "Generate the slides from this hypothesis")
	cmd.Flags().StringVar(&opts.audience, "audience", "", "Who the generated carousel is for")
	cmd.Flags().StringVar(&opts.tone, "tone", "", "Tone of the generated text: casual, professional, playful or bold")
	cmd.Flags().StringVar(&opts.language, "language", "", "BCP 47 language of the generated text")
	cmd.Flags().IntVar(&opts.slides, "slides", 0, fmt.Sprintf("Number of slides to generate (max %d)", generate.MaxSlides))
	cmd.Flags().StringArrayVar(&opts.points, "point", nil, "A point the generated carousel should make (repeatable)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Write the document to this .json or .yaml file instead of the store")

	return cmd
}

func runNew(cmd *cobra.Command, rootFlags *rootFlags, title string, opts *newOptions) error {
	app, err := openApp(cmd, rootFlags, "new")
	if err != nil {
		return err
	}
	defer app.Close()
	ctx := cmd.Context()

	var doc model.Carousel
	if strings.TrimSpace(opts.from) != "" {
		doc, err = generate.Generate(ctx, app.generator(), generate.Params{
			Hypothesis: opts.from,
			Audience:   opts.audience,
			Tone:       opts.tone,
			Language:   opts.language,
			SlideCount: opts.slides,
			Points:     opts.points,
		}, app.log)
		if err != nil {
			return newCommandError("create carousel", "generating from hypothesis", err, "Check the generation flags, or drop --from to start blank.")
		}
		if title != "" {
			doc = document.SetTitle(doc, title)
		}
	} else {
		doc = document.NewCarousel(title)
	}

	if opts.out != "" {
		if err := model.SaveFile(opts.out, doc); err != nil {
			return newCommandError("create carousel", fmt.Sprintf("writing %s", opts.out), err, "Check that the directory exists and is writable.")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d slides)\n", opts.out, len(doc.Slides))
		return nil
	}

	id, err := app.store.Save(ctx, doc)
	if err != nil {
		return newCommandError("create carousel", "saving to the store", err, "Check the store configuration and permissions.")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%d slides)\n", id, len(doc.Slides))
	return nil
}

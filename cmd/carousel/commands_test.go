package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/carousel/internal/document"
	"github.com/alexisbeaulieu97/carousel/internal/model"
)

func TestTemplatesCommand(t *testing.T) {
	cfg, _ := setupWorkspace(t, "file")

	stdout, _, err := execute(cfg, "templates")
	require.NoError(t, err)
	require.Contains(t, stdout, "TYPE")
	require.Contains(t, stdout, "Call to action")
	require.Contains(t, stdout, "comparison")

	stdout, _, err = execute(cfg, "templates", "--backgrounds")
	require.NoError(t, err)
	require.Contains(t, stdout, "gradient-sunset")
	require.Contains(t, stdout, "solid-dark")
}

func TestStoreLifecycle(t *testing.T) {
	cfg, _ := setupWorkspace(t, "file")

	stdout, _, err := execute(cfg, "store", "list")
	require.NoError(t, err)
	require.Contains(t, stdout, "No carousels stored yet.")

	stdout, _, err = execute(cfg, "new", "Launch week")
	require.NoError(t, err)
	id := createdID(t, stdout)

	stdout, _, err = execute(cfg, "store", "list")
	require.NoError(t, err)
	require.Contains(t, stdout, id)
	require.Contains(t, stdout, "Launch week")
	require.Contains(t, stdout, "just now")

	stdout, _, err = execute(cfg, "store", "list", "--json")
	require.NoError(t, err)
	require.Contains(t, stdout, `"count": 1`)
	require.Contains(t, stdout, `"title": "Launch week"`)

	stdout, _, err = execute(cfg, "show", id)
	require.NoError(t, err)
	require.Contains(t, stdout, "Title:    Launch week")
	require.Contains(t, stdout, "Slides:   1")
	require.Contains(t, stdout, "NEW SERIES")

	stdout, _, err = execute(cfg, "show", id, "--json")
	require.NoError(t, err)
	require.Contains(t, stdout, `"id": "`+id+`"`)

	_, _, err = execute(cfg, "store", "history", id)
	require.Error(t, err, "the file store keeps no history")
	require.Contains(t, err.Error(), "store.backend to git")

	stdout, _, err = execute(cfg, "store", "rm", id)
	require.NoError(t, err)
	require.Contains(t, stdout, "Removed "+id)

	_, _, err = execute(cfg, "store", "rm", id)
	require.Error(t, err)
	require.Contains(t, err.Error(), "carousel store list")

	_, _, err = execute(cfg, "show", id)
	require.Error(t, err)
}

func TestGitStoreHistory(t *testing.T) {
	cfg, _ := setupWorkspace(t, "git")

	stdout, _, err := execute(cfg, "new", "Versioned")
	require.NoError(t, err)
	id := createdID(t, stdout)

	stdout, _, err = execute(cfg, "store", "history", id)
	require.NoError(t, err)
	require.Contains(t, stdout, "COMMIT")
	require.Contains(t, stdout, "save "+id+": Versioned")
}

func TestNewFromHypothesisToFile(t *testing.T) {
	cfg, dir := setupWorkspace(t, "file")
	out := filepath.Join(dir, "generated.yaml")

	stdout, _, err := execute(cfg, "new", "Shipping",
		"--from", "Small teams ship faster",
		"--slides", "4",
		"--point", "Fewer meetings",
		"--out", out)
	require.NoError(t, err)
	require.Contains(t, stdout, "Wrote "+out)

	doc, err := model.LoadFile(out)
	require.NoError(t, err)
	require.Equal(t, "Shipping", doc.Title)
	require.NotEmpty(t, doc.Slides)

	stdout, _, err = execute(cfg, "validate", out)
	require.NoError(t, err, stdout)

	_, _, err = execute(cfg, "new", "--from", "x", "--tone", "grumpy")
	require.Error(t, err)
	require.Contains(t, err.Error(), "generating from hypothesis")
}

func TestValidateCommand(t *testing.T) {
	cfg, dir := setupWorkspace(t, "file")

	clean := filepath.Join(dir, "clean.json")
	require.NoError(t, model.SaveFile(clean, document.NewCarousel("Clean")))
	stdout, _, err := execute(cfg, "validate", clean)
	require.NoError(t, err)
	require.Contains(t, stdout, "is valid")

	warned := document.AddSlide(document.NewCarousel("Warned"), document.NewSlide(model.SlideBlank))
	warnPath := filepath.Join(dir, "warned.json")
	require.NoError(t, model.SaveFile(warnPath, warned))

	stdout, _, err = execute(cfg, "validate", warnPath)
	require.NoError(t, err, "warnings alone pass")
	require.Contains(t, stdout, "slide has no content")

	_, _, err = execute(cfg, "validate", warnPath, "--strict")
	require.ErrorIs(t, err, errLintFailed)

	broken := document.NewCarousel("Broken")
	broken.Settings = model.Settings{Width: 1080, Height: 720}
	brokenPath := filepath.Join(dir, "broken.json")
	require.NoError(t, model.SaveFile(brokenPath, broken))

	stdout, _, err = execute(cfg, "validate", brokenPath)
	require.ErrorIs(t, err, errLintFailed)
	require.Contains(t, stdout, "error:")
}

func TestExportAndPreviewCommands(t *testing.T) {
	cfg, dir := setupWorkspace(t, "file")

	deck := document.AddSlide(document.NewCarousel("Launch Week"), document.NewSlide(model.SlideList))
	src := filepath.Join(dir, "deck.json")
	require.NoError(t, model.SaveFile(src, deck))

	outDir := filepath.Join(dir, "out") + string(os.PathSeparator)
	stdout, stderr, err := execute(cfg, "export", src, "--out", outDir, "--quality", "1")
	require.NoError(t, err)
	require.Contains(t, stdout, "Exported 2 page(s)")
	require.Contains(t, stderr, "page 2/2 (100%)")

	pdf, err := os.ReadFile(filepath.Join(dir, "out", "launch-week.pdf"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(pdf), "%PDF"))

	pngPath := filepath.Join(dir, "slide.png")
	stdout, _, err = execute(cfg, "preview", src, "--slide", "2", "--out", pngPath)
	require.NoError(t, err)
	require.Contains(t, stdout, "Wrote slide 2")
	png, err := os.ReadFile(pngPath)
	require.NoError(t, err)
	require.Equal(t, "\x89PNG", string(png[:4]))

	_, _, err = execute(cfg, "preview", src, "--slide", "9", "--out", pngPath)
	require.Error(t, err)
	require.Contains(t, err.Error(), "between 1 and 2")
}

func TestExportPath(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		out  string
		want string
	}{
		{name: "default", out: "", want: "deck.pdf"},
		{name: "existing directory", out: dir, want: filepath.Join(dir, "deck.pdf")},
		{name: "trailing separator", out: filepath.Join(dir, "new") + string(os.PathSeparator), want: filepath.Join(dir, "new", "deck.pdf")},
		{name: "file", out: filepath.Join(dir, "custom.pdf"), want: filepath.Join(dir, "custom.pdf")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, exportPath(tt.out, "deck.pdf"))
		})
	}
}

func TestTranslateCommand(t *testing.T) {
	cfg, dir := setupWorkspace(t, "file")

	glossary := filepath.Join(dir, "glossary.yaml")
	require.NoError(t, os.WriteFile(glossary, []byte("languages:\n  fr:\n    \"NEW SERIES\": \"NOUVELLE SÉRIE\"\n"), 0o644))

	src := filepath.Join(dir, "deck.json")
	require.NoError(t, model.SaveFile(src, document.NewCarousel("Deck")))

	stdout, _, err := execute(cfg, "translate", src, "--to", "fr", "--glossary", glossary, "--dry-run")
	require.NoError(t, err)
	require.Contains(t, stdout, "NOUVELLE SÉRIE")
	require.NotContains(t, stdout, "Created")

	stdout, _, err = execute(cfg, "translate", src, "--to", "fr", "--glossary", glossary)
	require.NoError(t, err)
	id := createdID(t, stdout)

	stdout, _, err = execute(cfg, "show", id)
	require.NoError(t, err)
	require.Contains(t, stdout, "Deck (fr)")
	require.Contains(t, stdout, "NOUVELLE SÉRIE")

	stdout, _, err = execute(cfg, "translate", src, "--to", "fr", "--glossary", glossary, "--write")
	require.NoError(t, err)
	require.Contains(t, stdout, "Updated "+src)
	doc, err := model.LoadFile(src)
	require.NoError(t, err)
	require.Equal(t, "Deck", doc.Title)

	_, _, err = execute(cfg, "translate", src, "--to", "fr")
	require.Error(t, err, "no service configured")
	require.Contains(t, err.Error(), "--glossary")
}

func TestMissingConfigFileFails(t *testing.T) {
	_, _, err := execute(filepath.Join(t.TempDir(), "missing.yaml"), "store", "list")
	require.Error(t, err)
	require.Contains(t, err.Error(), "loading configuration")
}

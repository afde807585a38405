package translate

import (
	"strings"

	"github.com/alexisbeaulieu97/carousel/internal/model"
	"github.com/alexisbeaulieu97/carousel/pkg/diff"
)

// Change is one leaf whose text differs between two versions of a document.
type Change struct {
	Path   string
	Before string
	After  string
}

// Spans returns the character level diff of the change.
func (c Change) Spans() []diff.Span {
	return diff.Spans(c.Before, c.After)
}

// Preview lists the leaves that differ between before and after. Both
// documents must have the same structure, which is what the pipeline
// produces.
func Preview(before, after model.Carousel) []Change {
	translated := make(map[string]string)
	for _, t := range ExtractTexts(after) {
		translated[t.Path] = t.Value
	}

	var changes []Change
	for _, t := range ExtractTexts(before) {
		next, ok := translated[t.Path]
		if !ok || next == t.Value {
			continue
		}
		changes = append(changes, Change{Path: t.Path, Before: t.Value, After: next})
	}
	return changes
}

// RenderPreview formats changes as one unified diff section per leaf.
func RenderPreview(changes []Change) string {
	if len(changes) == 0 {
		return "No changes\n"
	}
	var b strings.Builder
	for _, c := range changes {
		b.WriteString(diff.Unified(c.Before, c.After, c.Path, c.Path))
	}
	return b.String()
}

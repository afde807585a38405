// Package diff renders text differences for translation previews.
package diff

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

const (
	maxDiffLines    = 10000
	truncateMessage = "... (diff truncated, exceeds 10,000 lines) ..."
)

// Op classifies a span of a character level diff.
type Op int

const (
	Equal Op = iota
	Delete
	Insert
)

// Span is a run of text sharing one Op.
type Span struct {
	Op   Op
	Text string
}

// Spans returns a character level diff, cleaned up so that spans fall on
// word boundaries where possible.
func Spans(before, after string) []Span {
	if before == after {
		if before == "" {
			return nil
		}
		return []Span{{Op: Equal, Text: before}}
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(before, after, false))

	spans := make([]Span, 0, len(diffs))
	for _, d := range diffs {
		spans = append(spans, Span{Op: opOf(d.Type), Text: d.Text})
	}
	return spans
}

// Unified renders a line oriented diff with " ", "-" and "+" prefixes.
// Returns an empty string if the inputs are identical. Output beyond 10,000
// lines is truncated with a marker.
func Unified(before, after, beforeLabel, afterLabel string) string {
	if before == after {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(ensureNewline(before), ensureNewline(after))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var buf strings.Builder
	fmt.Fprintf(&buf, "--- %s\n", beforeLabel)
	fmt.Fprintf(&buf, "+++ %s\n", afterLabel)
	fmt.Fprintf(&buf, "@@ -1,%d +1,%d @@\n", countLines(before), countLines(after))

	written := 3
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			if written >= maxDiffLines {
				buf.WriteString(truncateMessage)
				buf.WriteString("\n")
				return buf.String()
			}
			buf.WriteString(prefix)
			buf.WriteString(line)
			written++
		}
	}
	return buf.String()
}

func opOf(t diffmatchpatch.Operation) Op {
	switch t {
	case diffmatchpatch.DiffDelete:
		return Delete
	case diffmatchpatch.DiffInsert:
		return Insert
	default:
		return Equal
	}
}

func ensureNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}

func countLines(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(ensureNewline(s), "\n")
}

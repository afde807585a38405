package diff

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnifiedIdenticalContent(t *testing.T) {
	t.Parallel()

	require.Empty(t, Unified("line1\nline2\n", "line1\nline2\n", "before", "after"))
}

func TestUnifiedSingleLineChange(t *testing.T) {
	t.Parallel()

	out := Unified("line1\nline2\nline3\n", "line1\nmodified\nline3\n", "before", "after")
	require.Contains(t, out, "--- before\n")
	require.Contains(t, out, "+++ after\n")
	require.Contains(t, out, " line1\n")
	require.Contains(t, out, "-line2\n")
	require.Contains(t, out, "+modified\n")
	require.Contains(t, out, " line3\n")
}

func TestUnifiedWithoutTrailingNewline(t *testing.T) {
	t.Parallel()

	out := Unified("Hello", "Bonjour", "en", "fr")
	require.Contains(t, out, "-Hello\n")
	require.Contains(t, out, "+Bonjour\n")
	require.Contains(t, out, "@@ -1,1 +1,1 @@")
}

func TestUnifiedIsDeterministic(t *testing.T) {
	t.Parallel()

	a := Unified("a\nb\n", "a\nc\n", "x", "y")
	b := Unified("a\nb\n", "a\nc\n", "x", "y")
	require.Equal(t, a, b)
}

func TestUnifiedTruncation(t *testing.T) {
	t.Parallel()

	var before, after strings.Builder
	for i := 0; i < 6000; i++ {
		fmt.Fprintf(&before, "old %d\n", i)
		fmt.Fprintf(&after, "new %d\n", i)
	}
	out := Unified(before.String(), after.String(), "before", "after")
	require.True(t, strings.HasSuffix(out, truncateMessage+"\n"))
	require.LessOrEqual(t, strings.Count(out, "\n"), maxDiffLines+1)
}

func TestSpans(t *testing.T) {
	t.Parallel()

	require.Nil(t, Spans("", ""))
	require.Equal(t, []Span{{Op: Equal, Text: "same"}}, Spans("same", "same"))

	spans := Spans("Your headline", "Your title")
	var before, after strings.Builder
	for _, s := range spans {
		if s.Op != Insert {
			before.WriteString(s.Text)
		}
		if s.Op != Delete {
			after.WriteString(s.Text)
		}
	}
	require.Equal(t, "Your headline", before.String())
	require.Equal(t, "Your title", after.String())
	require.Equal(t, Span{Op: Equal, Text: "Your "}, spans[0])
}

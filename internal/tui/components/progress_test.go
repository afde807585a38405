package components

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewProgress(t *testing.T) {
	t.Parallel()

	t.Run("creates progress with specified total", func(t *testing.T) {
		t.Parallel()
		p := NewProgress(10, "")
		require.NotNil(t, p.bar)
		require.Equal(t, 10, p.Total())
		require.Equal(t, "Exporting", p.label)
	})

	t.Run("keeps a custom label", func(t *testing.T) {
		t.Parallel()
		p := NewProgress(3, "Rendering")
		require.Contains(t, p.View(1), "Rendering 1/3")
	})
}

func TestProgressRatio(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		total     int
		completed int
		want      float64
	}{
		{"zero total", 0, 0, 0},
		{"half way", 10, 5, 0.5},
		{"done", 4, 4, 1},
		{"beyond total is capped", 10, 15, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.InDelta(t, tc.want, NewProgress(tc.total, "").Ratio(tc.completed), 1e-9)
		})
	}
}

func TestProgressView(t *testing.T) {
	t.Parallel()

	p := NewProgress(5, "")
	for completed := 0; completed <= 5; completed++ {
		view := p.View(completed)
		label := "Exporting " + string(rune('0'+completed)) + "/5"
		require.Contains(t, view, label)
		require.Greater(t, len(strings.TrimSpace(view)), len(label), "expected a bar next to the label")
	}
}

package components

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSummaryView(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		data    SummaryData
		want    []string
		notWant []string
	}{
		{
			name: "success",
			data: SummaryData{Path: "out/deck.pdf", Pages: 5, Width: 1080, Height: 1080, Elapsed: 1500 * time.Millisecond},
			want: []string{"✓ Exported 5 page(s)", "1080x1080 pt", "Saved to: out/deck.pdf", "Took: 1.5s"},
		},
		{
			name:    "failure",
			data:    SummaryData{Err: errors.New("slide 3: asset timed out")},
			want:    []string{"✗ Export failed", "slide 3: asset timed out"},
			notWant: []string{"Saved to"},
		},
		{
			name:    "cancelled wins over error",
			data:    SummaryData{Cancelled: true, Err: errors.New("context canceled")},
			want:    []string{"✗ Export cancelled"},
			notWant: []string{"context canceled"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			view := NewSummary(tc.data).View()
			for _, w := range tc.want {
				require.Contains(t, view, w)
			}
			for _, w := range tc.notWant {
				require.NotContains(t, view, w)
			}
		})
	}
}

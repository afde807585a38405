package typeface

import (
	"image"
	"image/color"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAdvanceScalesWithSize(t *testing.T) {
	t.Parallel()

	bank := Default()
	small := bank.Advance("Carousel", 24, Regular)
	large := bank.Advance("Carousel", 48, Regular)

	require.Greater(t, small, 0.0)
	require.InDelta(t, small*2, large, 1.0)
	require.Greater(t, bank.Advance("Carousel", 24, Bold), small*0.9)
	require.Zero(t, bank.Advance("", 24, Regular))
}

func TestMetrics(t *testing.T) {
	t.Parallel()

	ascent, descent := Default().Metrics(40, Regular)
	require.Greater(t, ascent, 20.0)
	require.Greater(t, descent, 0.0)
}

func TestDrawPaintsPixels(t *testing.T) {
	t.Parallel()

	img := image.NewRGBA(image.Rect(0, 0, 200, 60))
	Default().Draw(img, "Hi", 10, 45, 40, Bold, color.White)

	painted := false
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			painted = true
			break
		}
	}
	require.True(t, painted)
}

func TestBankIsSafeForConcurrentUse(t *testing.T) {
	t.Parallel()

	bank, err := NewBank()
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = bank.Advance("concurrent", float64(20+i%2), Weight(i%4))
		}(i)
	}
	wg.Wait()
	require.LessOrEqual(t, bank.Faces(), 8)
}

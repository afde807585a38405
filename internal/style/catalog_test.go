package style

import (
	"image/color"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/carousel/internal/model"
)

func TestResolveBackgroundKinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key  model.StyleKey
		kind Kind
	}{
		{"solid-light", KindSolid},
		{"gradient-sunset", KindGradient},
		{"mesh-aurora", KindMesh},
	}

	for _, tt := range tests {
		p := ResolveBackground(tt.key)
		require.Equal(t, tt.kind, p.Kind, tt.key)
		require.Equal(t, tt.key, p.Key)
	}
}

func TestUnknownKeyFallsBackToSolidDark(t *testing.T) {
	t.Parallel()

	p := ResolveBackground("neon-unicorn")
	require.Equal(t, DefaultKey, p.Key)
	require.Equal(t, KindSolid, p.Kind)
	require.False(t, Known("neon-unicorn"))
}

func TestBackgroundImageBypassesCatalogWithOverlay(t *testing.T) {
	t.Parallel()

	p := ResolveSlide(model.SlideStyles{
		Background:      "solid-light",
		BackgroundImage: &model.BackgroundImage{URL: "https://cdn.example.com/bg.jpg"},
	})

	require.Equal(t, KindImage, p.Kind)
	require.Equal(t, "https://cdn.example.com/bg.jpg", p.URL)
	require.NotNil(t, p.Overlay)
	require.Equal(t, uint8(77), p.Overlay.Top.A)
	require.Equal(t, uint8(128), p.Overlay.Bottom.A)
	require.Equal(t, ToneDark, p.Tone)
}

func TestEmptyBackgroundImageURLIsIgnored(t *testing.T) {
	t.Parallel()

	p := ResolveSlide(model.SlideStyles{Background: "gradient-ocean", BackgroundImage: &model.BackgroundImage{}})
	require.Equal(t, KindGradient, p.Kind)
	require.Nil(t, p.Overlay)
}

func TestResolvedPaintCannotMutateCatalog(t *testing.T) {
	t.Parallel()

	p := ResolveBackground("gradient-sunset")
	p.Stops[0].Color = color.RGBA{}

	again := ResolveBackground("gradient-sunset")
	require.NotEqual(t, color.RGBA{}, again.Stops[0].Color)
}

func TestCatalogIsSafeForConcurrentReaders(t *testing.T) {
	t.Parallel()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, key := range Keys() {
				_ = ResolveBackground(key)
			}
		}()
	}
	wg.Wait()
}

func TestPremiumKeysAreMeshes(t *testing.T) {
	t.Parallel()

	keys := PremiumKeys()
	require.NotEmpty(t, keys)
	for _, key := range keys {
		require.Equal(t, KindMesh, ResolveBackground(key).Kind)
	}
}

func TestPaddingPresets(t *testing.T) {
	t.Parallel()

	require.Equal(t, 48.0, Padding(model.PaddingCompact))
	require.Equal(t, 80.0, Padding(model.PaddingNormal))
	require.Equal(t, 120.0, Padding(model.PaddingSpacious))
	require.Equal(t, 80.0, Padding("huge"))
}

func TestParseHex(t *testing.T) {
	t.Parallel()

	c, err := ParseHex("#fff")
	require.NoError(t, err)
	require.Equal(t, color.RGBA{255, 255, 255, 255}, c)

	c, err = ParseHex("#11223380")
	require.NoError(t, err)
	require.Equal(t, color.RGBA{0x11, 0x22, 0x33, 0x80}, c)
	require.Equal(t, "#11223380", Hex(c))

	_, err = ParseHex("blue")
	require.Error(t, err)

	require.Equal(t, color.RGBA{1, 2, 3, 255}, ColorOr("nope", color.RGBA{1, 2, 3, 255}))
}

func TestIsPremium(t *testing.T) {
	t.Parallel()

	require.True(t, IsPremium("mesh-aurora"))
	require.False(t, IsPremium("solid-dark"))
	require.False(t, IsPremium("missing"))
}

package fonts

import (
	"testing"

	gtfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/fontscan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryBuiltins(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, []string{Proportional, Monospace}, r.Families())
	assert.True(t, r.Has("proportional"))
	assert.False(t, r.Has("Comic Sans"))

	face := r.Face(Proportional, 20)
	require.NotNil(t, face)
	assert.Same(t, face, r.Face("PROPORTIONAL", 20))
	assert.NotNil(t, r.Face("missing family", 12))
}

func TestLoadSystemNoNames(t *testing.T) {
	loaded, err := NewRegistry().LoadSystem(nil, t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestLoadFileMissing(t *testing.T) {
	err := NewRegistry().LoadFile("x", "/nonexistent/font.ttf", 0)
	assert.Error(t, err)
}

func TestPickFootprintPrefersRegular(t *testing.T) {
	fps := []fontscan.Footprint{
		{Family: "Other"},
		{Family: "Noto Sans", Aspect: gtfont.Aspect{Style: gtfont.StyleItalic, Weight: gtfont.WeightNormal}},
		{Family: "Noto Sans", Aspect: gtfont.Aspect{Style: gtfont.StyleNormal, Weight: gtfont.WeightBold}},
		{Family: "noto sans", Aspect: gtfont.Aspect{Style: gtfont.StyleNormal, Weight: gtfont.WeightNormal}},
	}
	fp, ok := pickFootprint(fps, "Noto Sans")
	require.True(t, ok)
	assert.Equal(t, gtfont.WeightNormal, fp.Aspect.Weight)
	assert.Equal(t, gtfont.StyleNormal, fp.Aspect.Style)

	_, ok = pickFootprint(fps, "Missing")
	assert.False(t, ok)
}

package pagination

import (
	"math"
	"testing"

	"github.com/jonathan/resume-preview/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		name        string
		totalHeight float64
		pageHeight  float64
		wantCount   int
		wantOffsets []float64
	}{
		{"exactly one page", 842, 842, 1, []float64{0}},
		{"slight overflow", 1000, 842, 2, []float64{0, 842}},
		{"empty document", 0, 842, 1, []float64{0}},
		{"three pages", 2000, 842, 3, []float64{0, 842, 1684}},
		{"exact multiple", 1684, 842, 2, []float64{0, 842}},
		{"one unit over", 843, 842, 2, []float64{0, 842}},
		{"negative clamps to zero", -50, 842, 1, []float64{0}},
		{"NaN clamps to zero", math.NaN(), 842, 1, []float64{0}},
		{"zero page height uses A4", 1000, 0, 2, []float64{0, 842}},
		{"custom page height", 250, 100, 3, []float64{0, 100, 200}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paginate(tt.totalHeight, tt.pageHeight)
			assert.Equal(t, tt.wantCount, got.PageCount)
			assert.Equal(t, tt.wantOffsets, got.Offsets)
		})
	}
}

func TestPaginate_Formula(t *testing.T) {
	for h := 0.0; h <= 5000; h += 37.5 {
		got := Paginate(h, types.OriginalHeight)
		want := int(math.Max(1, math.Ceil(h/types.OriginalHeight)))
		require.Equal(t, want, got.PageCount, "height %v", h)
		require.Len(t, got.Offsets, got.PageCount)
		for i, off := range got.Offsets {
			assert.Equal(t, float64(i)*types.OriginalHeight, off)
		}
	}
}

func TestPaginate_ClampsToMaxPages(t *testing.T) {
	tests := []struct {
		name          string
		totalHeight   float64
		wantCount     int
		wantTruncated bool
	}{
		{"exactly max pages", MaxHeight, MaxPages, false},
		{"one page over max", MaxHeight + 1, MaxPages, true},
		{"huge height", 842 * 2e7, MaxPages, true},
		{"beyond int range", 1e300, MaxPages, true},
		{"positive infinity", math.Inf(1), MaxPages, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paginate(tt.totalHeight, types.OriginalHeight)
			assert.Equal(t, tt.wantCount, got.PageCount)
			assert.Len(t, got.Offsets, tt.wantCount)
			assert.Equal(t, tt.wantTruncated, got.Truncated)
			assert.Equal(t, float64(MaxPages-1)*types.OriginalHeight, got.Offsets[len(got.Offsets)-1])
		})
	}
}

func TestPaginate_Idempotent(t *testing.T) {
	first := Paginate(1913.25, 842)
	second := Paginate(1913.25, 842)
	assert.Equal(t, first, second)
}

func TestNewGeometry(t *testing.T) {
	g, err := NewGeometry(595)
	require.NoError(t, err)
	assert.Equal(t, 1.0, g.Scale)
	assert.Equal(t, 842.0, g.DisplayPageHeight)

	g, err = NewGeometry(297.5)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, g.Scale, 1e-9)
	assert.InDelta(t, 421, g.DisplayPageHeight, 1e-9)
	assert.Equal(t, types.OriginalHeight, g.PageHeightOriginal)

	for _, w := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := NewGeometry(w)
		assert.Error(t, err, "width %v", w)
	}
}

func TestLayout_Pages(t *testing.T) {
	pages := Paginate(1000, 842).Pages(842)
	assert.Equal(t, []types.Page{
		{Index: 0, VerticalOffset: 0, Height: 842},
		{Index: 1, VerticalOffset: 842, Height: 842},
	}, pages)
}

func TestLayout_Transforms(t *testing.T) {
	g, err := NewGeometry(297.5)
	require.NoError(t, err)

	tr := Paginate(1000, 842).Transforms(g)
	require.Len(t, tr, 2)

	assert.Equal(t, 0.0, tr[0].TranslateY)
	assert.False(t, math.Signbit(tr[0].TranslateY))
	assert.InDelta(t, -421, tr[1].TranslateY, 1e-9)
	for _, x := range tr {
		assert.Equal(t, g.Scale, x.Scale)
		assert.Equal(t, g.DisplayWidth, x.ClipWidth)
		assert.Equal(t, g.DisplayPageHeight, x.ClipHeight)
	}

	assert.Equal(t, "translateY(0px) scale(0.5)", tr[0].CSS())
	assert.Equal(t, "translateY(-421px) scale(0.5)", tr[1].CSS())
}

func TestLayout_PageAt(t *testing.T) {
	l := Paginate(2000, 842) // 3 pages

	tests := []struct {
		scrollX float64
		want    int
	}{
		{0, 0},
		{100, 0},
		{160, 1},
		{300, 1},
		{600, 2},
		{5000, 2},
		{-40, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, l.PageAt(tt.scrollX, 300), "scrollX %v", tt.scrollX)
	}

	assert.Equal(t, 0, Paginate(100, 842).PageAt(900, 300), "single page never advances")
	assert.Equal(t, 0, l.PageAt(600, 0))
}

// Package pagination slices a continuous document height into windowed pages.
package pagination

import (
	"fmt"
	"math"

	"github.com/jonathan/resume-preview/internal/types"
)

// Geometry is the fixed mapping between the logical A4 canvas and the display.
// It is built once per viewer and passed explicitly.
type Geometry struct {
	OriginalWidth      float64 `json:"originalWidth"`
	OriginalHeight     float64 `json:"originalHeight"`
	DisplayWidth       float64 `json:"displayWidth"`
	Scale              float64 `json:"scale"`
	PageHeightOriginal float64 `json:"pageHeightOriginal"`
	DisplayPageHeight  float64 `json:"displayPageHeight"`
}

// NewGeometry derives the page geometry for a display width.
func NewGeometry(displayWidth float64) (Geometry, error) {
	if displayWidth <= 0 || math.IsNaN(displayWidth) || math.IsInf(displayWidth, 0) {
		return Geometry{}, fmt.Errorf("display width must be positive, got %v", displayWidth)
	}
	scale := displayWidth / types.OriginalWidth
	return Geometry{
		OriginalWidth:      types.OriginalWidth,
		OriginalHeight:     types.OriginalHeight,
		DisplayWidth:       displayWidth,
		Scale:              scale,
		PageHeightOriginal: types.OriginalHeight,
		DisplayPageHeight:  types.OriginalHeight * scale,
	}, nil
}

// MaxPages caps the number of page windows one layout can hold.
const MaxPages = 1000

// MaxHeight is the tallest document that paginates without truncation at A4 page height.
const MaxHeight = MaxPages * types.OriginalHeight

// Layout is the result of slicing: how many pages and where each begins.
type Layout struct {
	PageCount int       `json:"pageCount"`
	Offsets   []float64 `json:"offsets"`
	Truncated bool      `json:"truncated,omitempty"` // height needed more than MaxPages
}

// Paginate computes the page count and start offsets for a measured height.
// There is always at least one page; the last page may hold trailing blank space.
// Heights needing more than MaxPages pages, including +Inf, are clamped to
// MaxPages and reported through Truncated.
func Paginate(totalHeight, pageHeight float64) Layout {
	if math.IsNaN(totalHeight) || totalHeight < 0 {
		totalHeight = 0
	}
	if math.IsNaN(pageHeight) || math.IsInf(pageHeight, 0) || pageHeight <= 0 {
		pageHeight = types.OriginalHeight
	}
	// Compare in float space so huge quotients never reach int conversion.
	pages := math.Max(1, math.Ceil(totalHeight/pageHeight))
	truncated := pages > MaxPages
	count := MaxPages
	if !truncated {
		count = int(pages)
	}
	offsets := make([]float64, count)
	for i := range offsets {
		offsets[i] = float64(i) * pageHeight
	}
	return Layout{PageCount: count, Offsets: offsets, Truncated: truncated}
}

// Pages expands the layout into page records.
func (l Layout) Pages(pageHeight float64) []types.Page {
	pages := make([]types.Page, len(l.Offsets))
	for i, off := range l.Offsets {
		pages[i] = types.Page{Index: i, VerticalOffset: off, Height: pageHeight}
	}
	return pages
}

// Transform is how one page frame views the shared tree.
type Transform struct {
	Scale      float64 `json:"scale"`
	TranslateY float64 `json:"translateY"`
	ClipWidth  float64 `json:"clipWidth"`
	ClipHeight float64 `json:"clipHeight"`
}

// CSS returns the transform in CSS form, translating before scaling.
func (t Transform) CSS() string {
	return fmt.Sprintf("translateY(%spx) scale(%s)", trimFloat(t.TranslateY), trimFloat(t.Scale))
}

// Transforms returns one transform per page. translateY is -offset*scale so
// the page's offset lands at the top of its clip window.
func (l Layout) Transforms(g Geometry) []Transform {
	out := make([]Transform, len(l.Offsets))
	for i, off := range l.Offsets {
		ty := -off * g.Scale
		if ty == 0 {
			ty = 0 // normalize -0
		}
		out[i] = Transform{
			Scale:      g.Scale,
			TranslateY: ty,
			ClipWidth:  g.DisplayWidth,
			ClipHeight: g.DisplayPageHeight,
		}
	}
	return out
}

// PageAt maps a horizontal scroll offset to a page index clamped to the layout.
func (l Layout) PageAt(scrollX, pageWidth float64) int {
	if l.PageCount <= 1 || pageWidth <= 0 || math.IsNaN(scrollX) {
		return 0
	}
	idx := int(math.Round(scrollX / pageWidth))
	if idx < 0 {
		return 0
	}
	if idx > l.PageCount-1 {
		return l.PageCount - 1
	}
	return idx
}

func trimFloat(v float64) string {
	s := fmt.Sprintf("%.4f", v)
	for len(s) > 1 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	if s == "-0" {
		s = "0"
	}
	return s
}

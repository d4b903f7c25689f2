package measure

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/jonathan/resume-preview/internal/rendering"
	"github.com/jonathan/resume-preview/internal/types"
	"github.com/mattn/go-runewidth"
)

const (
	// glyphAdvance is the average advance of one monospace cell, in em
	glyphAdvance = 0.52
	defaultFont  = 10.0
	defaultLine  = 1.4
)

// EstimateSurface computes a height without painting by flowing the tree's
// text runs through greedy line wrapping. It reports exactly one reading.
type EstimateSurface struct{}

// Mount estimates doc and reports the height before returning.
func (EstimateSurface) Mount(ctx context.Context, doc *rendering.Document, onLayout func(height float64)) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, &SurfaceError{Surface: "estimate", Message: "context done before mount", Cause: err}
	}
	onLayout(Estimate(doc))
	return func() {}, nil
}

// Estimate returns the approximate laid-out height of doc at the original width.
func Estimate(doc *rendering.Document) float64 {
	if doc == nil || doc.Root == nil {
		return 0
	}
	return blockHeight(doc.Root, types.OriginalWidth, textStyle{size: defaultFont, line: defaultLine})
}

// textStyle is the inherited part of the cascade
type textStyle struct {
	size float64
	line float64
}

func (t textStyle) inherit(s rendering.Style) textStyle {
	if v, ok := parseLength(s.Get("font-size"), 0); ok {
		t.size = v
	}
	if v := s.Get("line-height"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			t.line = f
		}
	}
	return t
}

// outerHeight is a node's height including its vertical margins
func outerHeight(n *rendering.Node, avail float64, ts textStyle) float64 {
	return box(n.Style, "margin-top", avail) + blockHeight(n, avail, ts) + box(n.Style, "margin-bottom", avail)
}

// blockHeight lays n out inside avail width and returns its border-box height
func blockHeight(n *rendering.Node, avail float64, ts textStyle) float64 {
	ts = ts.inherit(n.Style)
	width := avail
	if v, ok := parseLength(n.Style.Get("width"), avail); ok {
		width = v
	}
	padTop, padBottom := box(n.Style, "padding-top", avail), box(n.Style, "padding-bottom", avail)
	padLeft, padRight := box(n.Style, "padding-left", avail), box(n.Style, "padding-right", avail)
	inner := math.Max(width-padLeft-padRight, 1)

	var content float64
	switch {
	case len(n.Children) == 0:
		content = textHeight(n.Text, inner, ts)
	case isInline(n):
		content = inlineHeight(n, inner, ts)
	case n.Style.Get("display") == "flex":
		content = flexHeight(n, inner, ts)
	default:
		content = textHeight(n.Text, inner, ts)
		for _, c := range n.Children {
			content += outerHeight(c, inner, ts)
		}
	}
	return padTop + content + padBottom
}

// isInline reports whether every child is an inline span, so the node is one text run
func isInline(n *rendering.Node) bool {
	for _, c := range n.Children {
		if c.Tag != "span" {
			return false
		}
	}
	return true
}

func inlineHeight(n *rendering.Node, inner float64, ts textStyle) float64 {
	size := ts.size
	for _, c := range n.Children {
		if v, ok := parseLength(c.Style.Get("font-size"), 0); ok && v > size {
			size = v
		}
	}
	return textHeight(n.TextContent(), inner, textStyle{size: size, line: ts.line})
}

// flexHeight handles a row. A row of unsized spans is a single text run;
// otherwise the children sit side by side and the tallest wins.
func flexHeight(n *rendering.Node, inner float64, ts textStyle) float64 {
	sized := false
	for _, c := range n.Children {
		if c.Style.Get("width") != "" {
			sized = true
			break
		}
	}
	if !sized && isInline(n) {
		return inlineHeight(n, inner, ts)
	}
	var tallest float64
	for _, c := range n.Children {
		tallest = math.Max(tallest, outerHeight(c, inner, ts))
	}
	return tallest
}

// textHeight wraps content greedily on spaces at the given width
func textHeight(content string, width float64, ts textStyle) float64 {
	content = strings.TrimSpace(content)
	if content == "" {
		return 0
	}
	cell := ts.size * glyphAdvance
	space := cell
	lines := 1
	used := 0.0
	for _, word := range strings.Fields(content) {
		w := float64(runewidth.StringWidth(word)) * cell
		if w > width {
			// over-long words break across lines
			if used > 0 {
				lines++
			}
			extra := int(math.Ceil(w/width)) - 1
			lines += extra
			used = w - float64(extra)*width
			continue
		}
		switch {
		case used == 0:
			used = w
		case used+space+w <= width:
			used += space + w
		default:
			lines++
			used = w
		}
	}
	return float64(lines) * ts.size * ts.line
}

// box resolves a padding or margin side, honouring the shorthand declaration
func box(s rendering.Style, prop string, avail float64) float64 {
	if v, ok := parseLength(s.Get(prop), avail); ok {
		return v
	}
	shorthand := prop[:strings.IndexByte(prop, '-')]
	if v, ok := parseLength(s.Get(shorthand), avail); ok {
		return v
	}
	return 0
}

// parseLength reads "12px" or "35%" (relative to base)
func parseLength(v string, base float64) (float64, bool) {
	v = strings.TrimSpace(v)
	switch {
	case strings.HasSuffix(v, "px"):
		f, err := strconv.ParseFloat(strings.TrimSuffix(v, "px"), 64)
		return f, err == nil
	case strings.HasSuffix(v, "%") && base > 0:
		f, err := strconv.ParseFloat(strings.TrimSuffix(v, "%"), 64)
		return f / 100 * base, err == nil
	}
	return 0, false
}

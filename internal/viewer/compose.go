package viewer

import (
	"fmt"
	"html"
	"strings"

	"github.com/jonathan/resume-preview/internal/rendering"
	"github.com/jonathan/resume-preview/internal/types"
)

// ViewerCSS styles the loading indicator and the page strip
const ViewerCSS = `@keyframes resume-spin{to{transform:rotate(360deg)}}` +
	`.resume-spinner{width:28px;height:28px;border:3px solid #d0d5dd;border-top-color:#344054;border-radius:50%;animation:resume-spin 0.9s linear infinite}` +
	`.resume-pages{display:flex;flex-direction:row;overflow-x:auto;overflow-y:hidden;scroll-snap-type:x mandatory}` +
	`.resume-page{flex:0 0 auto;overflow:hidden;position:relative;scroll-snap-align:start;scroll-snap-stop:always}` +
	`.resume-indicator{text-align:center;font:12px Helvetica,Arial,sans-serif;color:#475467;margin-top:8px}`

// Render composes the current presentation. Before pagination it is a
// loading indicator plus the hidden measurement host; afterwards it is one
// clipped frame per page, each a transformed view of the same tree.
func (v *Viewer) Render() string {
	v.mu.Lock()
	doc := v.doc
	state := v.state
	layout := v.layout
	current := v.currentPage
	v.mu.Unlock()

	g := v.geom
	var sb strings.Builder
	fmt.Fprintf(&sb, `<div class="resume-viewer" data-state="%s" style="width:%gpx">`, state, g.DisplayWidth)

	if state != StatePaginated || doc == nil {
		fmt.Fprintf(&sb, `<div class="resume-loading" role="status" aria-busy="true" style="display:flex;align-items:center;justify-content:center;width:%gpx;height:%gpx">`,
			g.DisplayWidth, g.DisplayPageHeight)
		sb.WriteString(`<div class="resume-spinner"></div></div>`)
		if doc != nil {
			fmt.Fprintf(&sb, `<div data-block="measure" aria-hidden="true" style="position:absolute;left:-10000px;top:0;width:%gpx;opacity:0;pointer-events:none">`,
				types.OriginalWidth)
			sb.WriteString(doc.HTML())
			sb.WriteString(`</div>`)
		}
		sb.WriteString(`</div>`)
		return sb.String()
	}

	tree := doc.HTML()
	fmt.Fprintf(&sb, `<div class="resume-pages" data-block="pages" data-page-count="%d" style="width:%gpx">`, layout.PageCount, g.DisplayWidth)
	for i, tr := range layout.Transforms(g) {
		fmt.Fprintf(&sb, `<div class="resume-page" data-page="%d" style="width:%gpx;height:%gpx;background:%s">`,
			i, tr.ClipWidth, tr.ClipHeight, html.EscapeString(rendering.SanitizeCSSValue(doc.Background)))
		fmt.Fprintf(&sb, `<div style="width:%gpx;transform-origin:top left;transform:%s">`, types.OriginalWidth, tr.CSS())
		sb.WriteString(frameTree(tree, i))
		sb.WriteString(`</div></div>`)
	}
	sb.WriteString(`</div>`)

	if label := indicator(current, layout.PageCount); label != "" {
		fmt.Fprintf(&sb, `<div class="resume-indicator" data-block="indicator" aria-live="polite">%s</div>`, label)
	}
	sb.WriteString(`</div>`)
	return sb.String()
}

// frameTree gives the copy of the tree in frame i its own root id so ids stay
// unique across frames. Text and attribute values are escaped, so the only
// literal match is the root element's own attribute.
func frameTree(tree string, i int) string {
	return strings.Replace(tree, `id="resume-root"`, fmt.Sprintf(`id="resume-root-page-%d"`, i+1), 1)
}

// Page wraps Render in a standalone HTML page.
func (v *Viewer) Page() string {
	var sb strings.Builder
	sb.WriteString(`<!DOCTYPE html><html><head><meta charset="utf-8"><style>`)
	sb.WriteString(rendering.BaseCSS)
	sb.WriteString(ViewerCSS)
	sb.WriteString(`</style></head><body>`)
	sb.WriteString(v.Render())
	sb.WriteString(`</body></html>`)
	return sb.String()
}

// Package rendering interprets a TemplateSchema over ResumeData into a continuous HTML document tree.
package rendering

import (
	"sort"
	"strings"

	"github.com/jonathan/resume-preview/internal/templates"
	"github.com/jonathan/resume-preview/internal/types"
)

const (
	// pageMargin is the inner padding of the document canvas
	pageMargin = 36.0
	// columnGutter separates the two columns of split layouts
	columnGutter = 14.0
	// fontFamily is applied to the document root
	fontFamily = "Helvetica, Arial, sans-serif"
)

// Document is the continuous, unpaginated render of one resume at OriginalWidth
type Document struct {
	Root       *Node
	Background string
	Sections   []types.SectionPlacement
}

// Width returns the logical width the document was rendered at.
func (d *Document) Width() float64 {
	return types.OriginalWidth
}

// HTML returns the document tree as an HTML fragment rooted at #resume-root.
func (d *Document) HTML() string {
	var sb strings.Builder
	d.Root.WriteHTML(&sb)
	return sb.String()
}

// Page wraps the fragment in a standalone HTML page with a base stylesheet.
func (d *Document) Page() string {
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html><html><head><meta charset=\"utf-8\"><style>")
	sb.WriteString(BaseCSS)
	sb.WriteString("</style></head><body>")
	d.Root.WriteHTML(&sb)
	sb.WriteString("</body></html>")
	return sb.String()
}

// BaseCSS resets user-agent spacing so measured heights depend only on the tree's own styles
const BaseCSS = "*{box-sizing:border-box;margin:0;padding:0}html,body{background:transparent}ul{list-style-position:outside}"

// renderContext carries the normalized schema and the data for one render
type renderContext struct {
	schema types.TemplateSchema
	data   *types.ResumeData
}

// Render interprets schema over data. It is a pure function: identical inputs
// always produce a byte-identical tree, which the measurement pass relies on.
func Render(schema types.TemplateSchema, data types.ResumeData) *Document {
	s := schema.Normalize()
	rc := &renderContext{schema: s, data: &data}

	root := el("div", Style{
		{"box-sizing", "border-box"},
		{"width", px(types.OriginalWidth)},
		{"padding", px(pageMargin)},
		{"background", s.Colors.Background},
		{"color", s.Colors.Text},
		{"font-family", fontFamily},
		{"font-size", px(s.Typography.BodySize)},
		{"font-weight", itoa(s.Typography.BodyWeight)},
		{"line-height", num(s.Typography.LineHeight)},
	})
	root.attr("id", "resume-root")
	if s.ID != "" {
		root.attr("data-template", s.ID)
	}

	doc := &Document{Root: root, Background: s.Colors.Background}

	root.Children = append(root.Children, rc.header())

	visible := VisibleSections(s.Sections)
	switch s.Layout.Type {
	case types.LayoutTwoColumn:
		full, left, right := Partition(visible)
		root.Children = append(root.Children, rc.renderAll(doc, full, string(types.ColumnFull))...)
		leftNodes := rc.renderAll(doc, left, string(types.ColumnLeft))
		rightNodes := rc.renderAll(doc, right, string(types.ColumnRight))
		if len(leftNodes) > 0 || len(rightNodes) > 0 {
			leftWidth, rightWidth := columnWidths(s.Layout)
			root.Children = append(root.Children,
				columns(
					column("column-left", leftWidth, columnGutter, "", leftNodes),
					column("column-right", rightWidth, 0, "", rightNodes),
				))
		}
	case types.LayoutSidebar:
		side, main := partitionSidebar(visible)
		sideNodes := rc.renderAll(doc, side, "sidebar")
		mainNodes := rc.renderAll(doc, main, "main")
		if len(sideNodes) > 0 || len(mainNodes) > 0 {
			root.Children = append(root.Children,
				columns(
					column("column-sidebar", s.Layout.LeftColumnWidth, columnGutter, s.Colors.Accent, sideNodes),
					column("column-main", s.Layout.RightColumnWidth, 0, "", mainNodes),
				))
		}
	default:
		root.Children = append(root.Children, rc.renderAll(doc, visible, string(types.ColumnFull))...)
	}

	return doc
}

// RenderTemplate is the legacy path: it resolves a built-in template by ID and renders it.
func RenderTemplate(templateID string, data types.ResumeData) (*Document, error) {
	if templateID == "" {
		templateID = templates.DefaultID
	}
	schema, ok := templates.Get(templateID)
	if !ok {
		return nil, &TemplateError{
			TemplateID: templateID,
			Message:    "unknown template",
		}
	}
	return Render(schema, data), nil
}

// VisibleSections filters out hidden sections and stable-sorts the rest by
// order, so ties keep their original array position.
func VisibleSections(sections []types.SectionConfig) []types.SectionConfig {
	visible := make([]types.SectionConfig, 0, len(sections))
	for _, sec := range sections {
		if sec.Show {
			visible = append(visible, sec)
		}
	}
	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].Order < visible[j].Order
	})
	return visible
}

// Partition splits two-column sections into the full-width band, the left
// slot and the right slot. Unassigned sections go left, except experience
// which goes right.
func Partition(sections []types.SectionConfig) (full, left, right []types.SectionConfig) {
	for _, sec := range sections {
		switch ResolveColumn(sec) {
		case types.ColumnFull:
			full = append(full, sec)
		case types.ColumnRight:
			right = append(right, sec)
		default:
			left = append(left, sec)
		}
	}
	return full, left, right
}

// ResolveColumn returns the slot a section occupies in the two-column layout.
func ResolveColumn(sec types.SectionConfig) types.Column {
	switch sec.Column {
	case types.ColumnFull, types.ColumnLeft, types.ColumnRight:
		return sec.Column
	}
	if sec.Type == types.SectionExperience {
		return types.ColumnRight
	}
	return types.ColumnLeft
}

// columnWidths gives the right slot, which holds experience by default, the
// larger of the two declared widths.
func columnWidths(l types.Layout) (left, right float64) {
	narrow, wide := l.LeftColumnWidth, l.RightColumnWidth
	if narrow > wide {
		narrow, wide = wide, narrow
	}
	return narrow, wide
}

// sidebarTypes are the sections the sidebar layout moves into its side column
var sidebarTypes = map[types.SectionType]bool{
	types.SectionSkills:         true,
	types.SectionLanguages:      true,
	types.SectionCertifications: true,
}

func partitionSidebar(sections []types.SectionConfig) (side, main []types.SectionConfig) {
	for _, sec := range sections {
		if sidebarTypes[sec.Type] {
			side = append(side, sec)
		} else {
			main = append(main, sec)
		}
	}
	return side, main
}

// renderAll dispatches each section and records where the non-empty ones landed
func (rc *renderContext) renderAll(doc *Document, sections []types.SectionConfig, columnName string) []*Node {
	var nodes []*Node
	for _, sec := range sections {
		render, ok := sectionRenderers[sec.Type]
		if !ok || rc.data.Count(sec.Type) == 0 {
			continue
		}
		for _, out := range render(rc, sec) {
			out.node.attr("data-column", columnName)
			nodes = append(nodes, out.node)
			doc.Sections = append(doc.Sections, types.SectionPlacement{
				Type:   sec.Type,
				Title:  out.title,
				Column: columnName,
				Items:  out.items,
			})
		}
	}
	return nodes
}

func columns(children ...*Node) *Node {
	n := el("div", Style{
		{"display", "flex"},
		{"flex-direction", "row"},
		{"align-items", "flex-start"},
	}, children...)
	return n.attr("data-block", "columns")
}

func column(name string, width, gutter float64, background string, children []*Node) *Node {
	style := Style{
		{"box-sizing", "border-box"},
		{"width", pct(width)},
	}
	inset := 0.0
	if background != "" {
		inset = 10
		style = append(style, Decl{"background", background}, Decl{"padding", px(inset)})
	}
	if gutter > 0 {
		style = append(style, Decl{"padding-right", px(gutter + inset)})
	}
	n := el("div", style, children...)
	return n.attr("data-block", name)
}

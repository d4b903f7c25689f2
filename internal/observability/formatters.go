// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/jonathan/resume-preview/internal/pagination"
	"github.com/jonathan/resume-preview/internal/preview"
	"github.com/jonathan/resume-preview/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 8
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		// Truncate long lines by display width
		if runewidth.StringWidth(line) > inner {
			line = runewidth.Truncate(line, inner, "...")
		}
		fmt.Fprintf(p.out, "│ %s │\n", pad(line, inner))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// PrintSchema outputs a summary of a template schema.
func (p *Printer) PrintSchema(schema *types.TemplateSchema) {
	if schema == nil {
		return
	}

	var sb strings.Builder
	name := schema.Name
	if name == "" {
		name = schema.ID
	}
	sb.WriteString(fmt.Sprintf("Template: %s\n", name))
	sb.WriteString(fmt.Sprintf("Layout:   %s", schema.Layout.Type))
	if schema.Layout.Type != types.LayoutSingleColumn {
		sb.WriteString(fmt.Sprintf(" (%g/%g)", schema.Layout.LeftColumnWidth, schema.Layout.RightColumnWidth))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Header:   %s\n", schema.Header.Style))
	sb.WriteString("\n")

	sections := schema.Normalize().Sections
	sb.WriteString(fmt.Sprintf("Sections (%d):\n", len(sections)))
	for _, s := range sections {
		mark := "•"
		if !s.Show {
			mark = "∘"
		}
		sb.WriteString(fmt.Sprintf("  %s %-14s %s", mark, s.Type, s.Title))
		if s.Column != types.ColumnUnset {
			sb.WriteString(fmt.Sprintf(" [%s]", s.Column))
		}
		sb.WriteString("\n")
	}

	p.printBox("TEMPLATE SCHEMA", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSections outputs the rendered section placements.
func (p *Printer) PrintSections(sections []types.SectionPlacement) {
	if len(sections) == 0 {
		p.printBox("RENDERED SECTIONS", "Header only")
		return
	}

	var sb strings.Builder
	count := min(len(sections), maxItemsToShow)
	for i := 0; i < count; i++ {
		s := sections[i]
		sb.WriteString(fmt.Sprintf("%-14s %-6s %d items  %s\n", s.Type, s.Column, s.Items, s.Title))
	}
	if len(sections) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(sections)-maxItemsToShow))
	}

	p.printBox("RENDERED SECTIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintLayout outputs the page windows of a paginated document.
func (p *Printer) PrintLayout(g pagination.Geometry, height float64, layout pagination.Layout) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Height:   %.1f (page %.0f)\n", height, g.PageHeightOriginal))
	sb.WriteString(fmt.Sprintf("Display:  %gpx, scale %.4g\n", g.DisplayWidth, g.Scale))
	sb.WriteString(fmt.Sprintf("Pages:    %d\n", layout.PageCount))
	sb.WriteString("\n")

	transforms := layout.Transforms(g)
	count := min(len(transforms), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  %d. offset %-8g %s\n", i+1, layout.Offsets[i], transforms[i].CSS()))
	}
	if len(transforms) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more pages\n", len(transforms)-maxItemsToShow))
	}

	p.printBox("PAGINATION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintPreview outputs a complete preview result.
func (p *Printer) PrintPreview(res *preview.Result) {
	if res == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Template: %s\n", res.TemplateID))
	sb.WriteString(fmt.Sprintf("Height:   %.1f\n", res.Height))
	sb.WriteString(fmt.Sprintf("Pages:    %d", res.Layout.PageCount))
	if res.Indicator != "" {
		sb.WriteString(fmt.Sprintf(" (%s)", res.Indicator))
	}
	sb.WriteString("\n")
	if res.Cached {
		sb.WriteString("Source:   height cache\n")
	} else {
		sb.WriteString("Source:   measured\n")
	}

	p.printBox("PREVIEW", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintValidation outputs the result of validating one input file.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintValidation(path string, err error) {
	if err == nil {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %s │\n", pad("✅ VALID: "+path, boxWidth-4))
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	p.printBox("⚠ INVALID: "+path, strings.TrimSuffix(err.Error(), "\n"))
}

// Package templates provides the built-in resume templates expressed as schema instances.
package templates

import (
	"sort"

	"github.com/jonathan/resume-preview/internal/types"
)

// Template IDs accepted by the legacy templateId path
const (
	Classic      = "classic"
	Modern       = "modern"
	Minimal      = "minimal"
	Professional = "professional"
	Creative     = "creative"
)

// DefaultID is used when no template is requested
const DefaultID = Classic

// standardSections returns the usual section order with every section shown
func standardSections() []types.SectionConfig {
	return []types.SectionConfig{
		{Type: types.SectionSummary, Show: true, Order: 0},
		{Type: types.SectionExperience, Show: true, Order: 1},
		{Type: types.SectionEducation, Show: true, Order: 2},
		{Type: types.SectionSkills, Show: true, Order: 3},
		{Type: types.SectionProjects, Show: true, Order: 4},
		{Type: types.SectionCertifications, Show: true, Order: 5},
		{Type: types.SectionLanguages, Show: true, Order: 6},
		{Type: types.SectionCustom, Show: true, Order: 7},
	}
}

var builtin = map[string]types.TemplateSchema{
	Classic: {
		ID:     Classic,
		Name:   "Classic",
		Layout: types.Layout{Type: types.LayoutSingleColumn},
		Colors: types.Colors{
			Primary:       "#1a1a1a",
			Text:          "#222222",
			TextSecondary: "#555555",
			Divider:       "#999999",
		},
		Typography: types.Typography{
			NameSize:           26,
			NameWeight:         700,
			SectionTitleSize:   13,
			SectionTitleWeight: 700,
			BodySize:           10,
		},
		Spacing: types.Spacing{Section: 16, Item: 10, Bullet: 3},
		Header: types.HeaderConfig{
			NameAlign:    "center",
			ContactAlign: "center",
			ShowLinkedIn: true,
			ShowWebsite:  true,
			Style:        types.HeaderUnderline,
			Separator:    "|",
		},
		Sections: standardSections(),
	},
	Modern: {
		ID:     Modern,
		Name:   "Modern",
		Layout: types.Layout{Type: types.LayoutTwoColumn, LeftColumnWidth: 35, RightColumnWidth: 65},
		Colors: types.Colors{
			Primary:       "#2563eb",
			Secondary:     "#1e40af",
			Accent:        "#dbeafe",
			Text:          "#1f2937",
			TextSecondary: "#6b7280",
			Background:    "#ffffff",
			Divider:       "#bfdbfe",
		},
		Typography: types.Typography{
			NameSize:               28,
			NameWeight:             800,
			SectionTitleSize:       12,
			SectionTitleWeight:     700,
			BodySize:               9.5,
			EntryTitleSize:         11,
			ProjectDescriptionSize: 9,
		},
		Spacing: types.Spacing{Section: 14, Item: 8, Bullet: 2},
		Header: types.HeaderConfig{
			NameAlign:    "left",
			ContactAlign: "left",
			ShowLinkedIn: true,
			ShowWebsite:  true,
			Style:        types.HeaderSimple,
		},
		Sections: []types.SectionConfig{
			{Type: types.SectionSummary, Show: true, Order: 0, Column: types.ColumnFull},
			{Type: types.SectionExperience, Show: true, Order: 1},
			{Type: types.SectionProjects, Show: true, Order: 2, Column: types.ColumnRight},
			{Type: types.SectionSkills, Show: true, Order: 3},
			{Type: types.SectionEducation, Show: true, Order: 4},
			{Type: types.SectionCertifications, Show: true, Order: 5},
			{Type: types.SectionLanguages, Show: true, Order: 6},
			{Type: types.SectionCustom, Show: true, Order: 7},
		},
	},
	Minimal: {
		ID:     Minimal,
		Name:   "Minimal",
		Layout: types.Layout{Type: types.LayoutSingleColumn},
		Colors: types.Colors{
			Primary: "#111111",
			Text:    "#333333",
		},
		Typography: types.Typography{
			NameSize:           22,
			NameWeight:         300,
			SectionTitleSize:   11,
			SectionTitleWeight: 600,
			BodySize:           9.5,
		},
		Spacing: types.Spacing{Section: 12, Item: 6, Bullet: 2},
		Header: types.HeaderConfig{
			NameAlign:    "left",
			ContactAlign: "left",
			ShowLinkedIn: false,
			ShowWebsite:  true,
			Style:        types.HeaderSimple,
			Separator:    "·",
		},
		Sections: standardSections(),
	},
	Professional: {
		ID:     Professional,
		Name:   "Professional",
		Layout: types.Layout{Type: types.LayoutSidebar, LeftColumnWidth: 32, RightColumnWidth: 68},
		Colors: types.Colors{
			Primary:       "#0f3d3e",
			Secondary:     "#567572",
			Accent:        "#e8f0ef",
			Text:          "#1c1c1c",
			TextSecondary: "#4a4a4a",
			Background:    "#ffffff",
		},
		Typography: types.Typography{
			NameSize:           24,
			NameWeight:         700,
			SectionTitleSize:   12,
			SectionTitleWeight: 700,
			BodySize:           9.5,
			EntryTitleSize:     10.5,
			EntryTitleWeight:   700,
		},
		Spacing: types.Spacing{Section: 14, Item: 8, Bullet: 2},
		Header: types.HeaderConfig{
			NameAlign:    "left",
			ContactAlign: "left",
			ShowLinkedIn: true,
			ShowWebsite:  false,
			Style:        types.HeaderSimple,
		},
		Sections: standardSections(),
	},
	Creative: {
		ID:     Creative,
		Name:   "Creative",
		Layout: types.Layout{Type: types.LayoutTwoColumn, LeftColumnWidth: 62, RightColumnWidth: 38},
		Colors: types.Colors{
			Primary:    "#7c3aed",
			Secondary:  "#db2777",
			Text:       "#1f1f1f",
			Background: "#ffffff",
		},
		Typography: types.Typography{
			NameSize:           30,
			NameWeight:         800,
			TitleSize:          13,
			SectionTitleSize:   13,
			SectionTitleWeight: 800,
			BodySize:           9.5,
			LineHeight:         1.5,
		},
		Spacing: types.Spacing{Section: 16, Item: 9, Bullet: 3},
		Header: types.HeaderConfig{
			NameAlign:    "center",
			ContactAlign: "center",
			ShowLinkedIn: true,
			ShowWebsite:  true,
			Style:        types.HeaderBanner,
		},
		Sections: []types.SectionConfig{
			{Type: types.SectionSummary, Show: true, Order: 0, Column: types.ColumnFull},
			{Type: types.SectionExperience, Show: true, Order: 1},
			{Type: types.SectionProjects, Show: true, Order: 2, Column: types.ColumnRight},
			{Type: types.SectionEducation, Show: true, Order: 3, Column: types.ColumnRight},
			{Type: types.SectionSkills, Show: true, Order: 4},
			{Type: types.SectionLanguages, Show: true, Order: 5},
			{Type: types.SectionCertifications, Show: true, Order: 6},
			{Type: types.SectionCustom, Show: true, Order: 7},
		},
	},
}

// Get returns a copy of the built-in schema for id.
func Get(id string) (types.TemplateSchema, bool) {
	s, ok := builtin[id]
	if !ok {
		return types.TemplateSchema{}, false
	}
	s.Sections = append([]types.SectionConfig(nil), s.Sections...)
	return s, true
}

// IDs returns the built-in template IDs in sorted order.
func IDs() []string {
	ids := make([]string, 0, len(builtin))
	for id := range builtin {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// All returns copies of every built-in schema, ordered by ID.
func All() []types.TemplateSchema {
	ids := IDs()
	out := make([]types.TemplateSchema, 0, len(ids))
	for _, id := range ids {
		s, _ := Get(id)
		out = append(out, s)
	}
	return out
}

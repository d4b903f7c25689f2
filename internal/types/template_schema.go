// Package types provides type definitions for structured data used throughout the resume-preview system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// LayoutType selects how sections are arranged on the page
type LayoutType string

const (
	LayoutSingleColumn LayoutType = "single-column"
	LayoutTwoColumn    LayoutType = "two-column"
	LayoutSidebar      LayoutType = "sidebar"
)

// SectionType is the closed set of section variants the renderer understands
type SectionType string

const (
	SectionSummary        SectionType = "summary"
	SectionExperience     SectionType = "experience"
	SectionEducation      SectionType = "education"
	SectionSkills         SectionType = "skills"
	SectionProjects       SectionType = "projects"
	SectionCertifications SectionType = "certifications"
	SectionLanguages      SectionType = "languages"
	SectionCustom         SectionType = "custom"
)

// AllSectionTypes lists every SectionType in declaration order.
var AllSectionTypes = []SectionType{
	SectionSummary,
	SectionExperience,
	SectionEducation,
	SectionSkills,
	SectionProjects,
	SectionCertifications,
	SectionLanguages,
	SectionCustom,
}

// Valid reports whether t is one of the known section variants.
func (t SectionType) Valid() bool {
	for _, known := range AllSectionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Column assigns a section to a slot of the two-column layout
type Column string

const (
	ColumnUnset Column = ""
	ColumnFull  Column = "full"
	ColumnLeft  Column = "left"
	ColumnRight Column = "right"
)

// HeaderStyle controls the decoration of the header block
type HeaderStyle string

const (
	HeaderSimple    HeaderStyle = "simple"
	HeaderUnderline HeaderStyle = "underline"
	HeaderBanner    HeaderStyle = "banner"
)

// TemplateSchema is the declarative visual description of a resume, independent of its content
type TemplateSchema struct {
	ID         string          `json:"id,omitempty"`
	Name       string          `json:"name,omitempty"`
	Layout     Layout          `json:"layout"`
	Colors     Colors          `json:"colors"`
	Typography Typography      `json:"typography"`
	Spacing    Spacing         `json:"spacing"`
	Header     HeaderConfig    `json:"header"`
	Sections   []SectionConfig `json:"sections" validate:"dive"`
}

// Layout describes the column arrangement. Widths are percentages of the page width.
type Layout struct {
	Type             LayoutType `json:"type" validate:"required,oneof=single-column two-column sidebar"`
	LeftColumnWidth  float64    `json:"leftColumnWidth,omitempty" validate:"gte=0,lte=100"`
	RightColumnWidth float64    `json:"rightColumnWidth,omitempty" validate:"gte=0,lte=100"`
}

// Colors holds the palette. Optional fields fall back to a sibling during Normalize.
type Colors struct {
	Primary       string `json:"primary" validate:"required"`
	Secondary     string `json:"secondary,omitempty"`
	Accent        string `json:"accent,omitempty"`
	Text          string `json:"text" validate:"required"`
	TextSecondary string `json:"textSecondary,omitempty"`
	Background    string `json:"background,omitempty"`
	Divider       string `json:"divider,omitempty"`
}

// Typography holds font sizes (original-document units) and CSS font weights
type Typography struct {
	NameSize               float64 `json:"nameSize" validate:"gt=0"`
	NameWeight             int     `json:"nameWeight,omitempty" validate:"gte=0,lte=1000"`
	TitleSize              float64 `json:"titleSize,omitempty" validate:"gte=0"`
	SectionTitleSize       float64 `json:"sectionTitleSize" validate:"gt=0"`
	SectionTitleWeight     int     `json:"sectionTitleWeight,omitempty" validate:"gte=0,lte=1000"`
	BodySize               float64 `json:"bodySize" validate:"gt=0"`
	BodyWeight             int     `json:"bodyWeight,omitempty" validate:"gte=0,lte=1000"`
	EntryTitleSize         float64 `json:"entryTitleSize,omitempty" validate:"gte=0"`
	EntryTitleWeight       int     `json:"entryTitleWeight,omitempty" validate:"gte=0,lte=1000"`
	ProjectDescriptionSize float64 `json:"projectDescriptionSize,omitempty" validate:"gte=0"`
	LineHeight             float64 `json:"lineHeight,omitempty" validate:"gte=0"`
}

// Spacing holds vertical gaps in original-document units
type Spacing struct {
	Section float64 `json:"section" validate:"gte=0"`
	Item    float64 `json:"item" validate:"gte=0"`
	Bullet  float64 `json:"bullet" validate:"gte=0"`
}

// HeaderConfig controls the name/contact block
type HeaderConfig struct {
	NameAlign    string      `json:"nameAlign,omitempty" validate:"omitempty,oneof=left center right"`
	ContactAlign string      `json:"contactAlign,omitempty" validate:"omitempty,oneof=left center right"`
	ShowLinkedIn bool        `json:"showLinkedIn"`
	ShowWebsite  bool        `json:"showWebsite"`
	Style        HeaderStyle `json:"style,omitempty" validate:"omitempty,oneof=simple underline banner"`
	Separator    string      `json:"separator,omitempty"`
}

// SectionConfig places one section in the document
type SectionConfig struct {
	Type            SectionType `json:"type" validate:"required,oneof=summary experience education skills projects certifications languages custom"`
	Title           string      `json:"title,omitempty"`
	Show            bool        `json:"show"`
	Order           int         `json:"order"`
	Column          Column      `json:"column,omitempty" validate:"omitempty,oneof=full left right"`
	CustomSectionID string      `json:"customSectionId,omitempty"`
}

// Validate validates the TemplateSchema using the validator.
func (s *TemplateSchema) Validate() error {
	validate := validator.New()
	if err := validate.Struct(s); err != nil {
		return err
	}
	if s.Layout.Type != LayoutSingleColumn && s.Layout.LeftColumnWidth+s.Layout.RightColumnWidth > 100 {
		return fmt.Errorf("layout column widths exceed 100%%: %.1f + %.1f", s.Layout.LeftColumnWidth, s.Layout.RightColumnWidth)
	}
	return nil
}

// Normalize returns a copy of the schema with every optional field resolved
// to its fallback. The receiver is left untouched.
func (s TemplateSchema) Normalize() TemplateSchema {
	out := s
	out.Sections = append([]SectionConfig(nil), s.Sections...)

	c := &out.Colors
	if c.TextSecondary == "" {
		c.TextSecondary = c.Text
	}
	if c.Secondary == "" {
		c.Secondary = c.Primary
	}
	if c.Accent == "" {
		c.Accent = c.Secondary
	}
	if c.Divider == "" {
		c.Divider = c.TextSecondary
	}
	if c.Background == "" {
		c.Background = "#ffffff"
	}

	t := &out.Typography
	if t.NameWeight == 0 {
		t.NameWeight = 700
	}
	if t.SectionTitleWeight == 0 {
		t.SectionTitleWeight = 700
	}
	if t.BodyWeight == 0 {
		t.BodyWeight = 400
	}
	if t.TitleSize == 0 {
		t.TitleSize = t.BodySize + 2
	}
	if t.EntryTitleSize == 0 {
		t.EntryTitleSize = t.BodySize + 1
	}
	if t.EntryTitleWeight == 0 {
		t.EntryTitleWeight = 600
	}
	if t.ProjectDescriptionSize == 0 {
		t.ProjectDescriptionSize = t.BodySize
	}
	if t.LineHeight == 0 {
		t.LineHeight = 1.4
	}

	h := &out.Header
	if h.NameAlign == "" {
		h.NameAlign = "left"
	}
	if h.ContactAlign == "" {
		h.ContactAlign = h.NameAlign
	}
	if h.Style == "" {
		h.Style = HeaderSimple
	}
	if h.Separator == "" {
		h.Separator = "•"
	}

	l := &out.Layout
	if l.Type == "" {
		l.Type = LayoutSingleColumn
	}
	if l.LeftColumnWidth == 0 && l.RightColumnWidth == 0 {
		switch l.Type {
		case LayoutTwoColumn:
			l.LeftColumnWidth, l.RightColumnWidth = 50, 50
		case LayoutSidebar:
			l.LeftColumnWidth, l.RightColumnWidth = 32, 68
		}
	} else if l.RightColumnWidth == 0 {
		l.RightColumnWidth = 100 - l.LeftColumnWidth
	} else if l.LeftColumnWidth == 0 {
		l.LeftColumnWidth = 100 - l.RightColumnWidth
	}

	return out
}

package types

// Page is one window onto the continuous document. It is derived, never persisted.
type Page struct {
	Index          int     `json:"index"`
	VerticalOffset float64 `json:"verticalOffset"` // original-document units
	Height         float64 `json:"height"`
}

// SectionPlacement records where a rendered section ended up.
type SectionPlacement struct {
	Type   SectionType `json:"type"`
	Title  string      `json:"title"`
	Column string      `json:"column"`
	Items  int         `json:"items"`
}

// Fixed logical A4 canvas at 72 DPI. All height and offset math happens in these units.
const (
	OriginalWidth  = 595.0
	OriginalHeight = 842.0
)

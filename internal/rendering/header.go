package rendering

import (
	"github.com/jonathan/resume-preview/internal/types"
)

// ContactLine joins the present contact fields with the schema's separator glyph.
// LinkedIn and website are only included when the header config shows them.
func ContactLine(h types.HeaderConfig, p types.PersonalInfo) string {
	sep := h.Separator
	if sep == "" {
		sep = "•"
	}
	items := []string{p.Email, p.Phone, p.Location}
	if h.ShowLinkedIn {
		items = append(items, p.LinkedIn)
	}
	if h.ShowWebsite {
		items = append(items, p.Website)
	}
	return JoinNonEmpty(" "+sep+" ", items...)
}

func (rc *renderContext) header() *Node {
	s := rc.schema
	p := rc.data.PersonalInfo

	nameColor := s.Colors.Primary
	style := Style{{"margin-bottom", px(s.Spacing.Section)}}
	switch s.Header.Style {
	case types.HeaderBanner:
		nameColor = s.Colors.Background
		style = append(style,
			Decl{"background", s.Colors.Primary},
			Decl{"color", s.Colors.Background},
			Decl{"padding", px(16)},
		)
	case types.HeaderUnderline:
		style = append(style,
			Decl{"border-bottom", "2px solid " + s.Colors.Primary},
			Decl{"padding-bottom", px(8)},
		)
	}

	name := text("h1", p.FullName, Style{
		{"font-size", px(s.Typography.NameSize)},
		{"font-weight", itoa(s.Typography.NameWeight)},
		{"color", nameColor},
		{"text-align", s.Header.NameAlign},
		{"line-height", "1.15"},
	})

	var title *Node
	if p.Title != "" {
		titleColor := s.Colors.Secondary
		if s.Header.Style == types.HeaderBanner {
			titleColor = s.Colors.Background
		}
		title = text("div", p.Title, Style{
			{"font-size", px(s.Typography.TitleSize)},
			{"color", titleColor},
			{"text-align", s.Header.NameAlign},
			{"margin-top", px(2)},
		})
	}

	var contact *Node
	if line := ContactLine(s.Header, p); line != "" {
		contactColor := s.Colors.TextSecondary
		if s.Header.Style == types.HeaderBanner {
			contactColor = s.Colors.Background
		}
		contact = text("div", line, Style{
			{"font-size", px(s.Typography.BodySize)},
			{"color", contactColor},
			{"text-align", s.Header.ContactAlign},
			{"margin-top", px(4)},
		})
		contact.attr("data-block", "contact")
	}

	n := el("header", style, name, title, contact)
	return n.attr("data-block", "header")
}

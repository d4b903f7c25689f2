package rendering

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/resume-preview/internal/types"
)

// sectionOutput is one rendered section block
type sectionOutput struct {
	node  *Node
	title string
	items int
}

// sectionRenderer renders one section variant. It returns nothing when the
// backing data is empty, so no header is ever emitted for an empty section.
type sectionRenderer func(rc *renderContext, cfg types.SectionConfig) []sectionOutput

// sectionRenderers has exactly one entry per SectionType
var sectionRenderers = map[types.SectionType]sectionRenderer{
	types.SectionSummary:        renderSummary,
	types.SectionExperience:     renderExperience,
	types.SectionEducation:      renderEducation,
	types.SectionSkills:         renderSkills,
	types.SectionProjects:       renderProjects,
	types.SectionCertifications: renderCertifications,
	types.SectionLanguages:      renderLanguages,
	types.SectionCustom:         renderCustom,
}

// DefaultTitle returns the heading used when a section config has no title
func DefaultTitle(t types.SectionType) string {
	switch t {
	case types.SectionSummary:
		return "Summary"
	case types.SectionExperience:
		return "Experience"
	case types.SectionEducation:
		return "Education"
	case types.SectionSkills:
		return "Skills"
	case types.SectionProjects:
		return "Projects"
	case types.SectionCertifications:
		return "Certifications"
	case types.SectionLanguages:
		return "Languages"
	}
	return ""
}

func titleFor(cfg types.SectionConfig) string {
	if cfg.Title != "" {
		return cfg.Title
	}
	return DefaultTitle(cfg.Type)
}

// section wraps entries under a styled heading
func (rc *renderContext) section(t types.SectionType, title string, entries []*Node) *Node {
	s := rc.schema
	heading := text("h2", title, Style{
		{"font-size", px(s.Typography.SectionTitleSize)},
		{"font-weight", itoa(s.Typography.SectionTitleWeight)},
		{"color", s.Colors.Primary},
		{"text-transform", "uppercase"},
		{"letter-spacing", "0.5px"},
		{"border-bottom", "1px solid " + s.Colors.Divider},
		{"padding-bottom", px(2)},
		{"margin-bottom", px(s.Spacing.Item)},
	})
	n := el("section", Style{{"margin-bottom", px(s.Spacing.Section)}}, append([]*Node{heading}, entries...)...)
	return n.attr("data-section", string(t))
}

// entry wraps one repeated item and tags it with its rendering key
func (rc *renderContext) entry(key string, children ...*Node) *Node {
	n := el("div", Style{{"margin-bottom", px(rc.schema.Spacing.Item)}}, children...)
	return n.attr("data-key", key)
}

// titleRow puts an entry title on the left and its date on the right
func (rc *renderContext) titleRow(title, date string) *Node {
	s := rc.schema
	left := text("span", title, Style{
		{"font-size", px(s.Typography.EntryTitleSize)},
		{"font-weight", itoa(s.Typography.EntryTitleWeight)},
		{"color", s.Colors.Text},
	})
	var right *Node
	if date != "" {
		right = text("span", date, Style{
			{"font-size", px(s.Typography.BodySize)},
			{"color", s.Colors.TextSecondary},
			{"white-space", "nowrap"},
			{"padding-left", px(8)},
		})
	}
	return el("div", Style{
		{"display", "flex"},
		{"flex-direction", "row"},
		{"justify-content", "space-between"},
		{"align-items", "baseline"},
	}, left, right)
}

// subtitle renders a secondary line, or nothing when empty
func (rc *renderContext) subtitle(content string) *Node {
	if content == "" {
		return nil
	}
	return text("div", content, Style{
		{"font-size", px(rc.schema.Typography.BodySize)},
		{"color", rc.schema.Colors.TextSecondary},
		{"font-style", "italic"},
	})
}

// paragraph renders body text at the given size, or nothing when empty
func (rc *renderContext) paragraph(content string, size float64) *Node {
	if strings.TrimSpace(content) == "" {
		return nil
	}
	return text("p", content, Style{
		{"font-size", px(size)},
		{"color", rc.schema.Colors.Text},
		{"margin-top", px(rc.schema.Spacing.Bullet)},
	})
}

// bullets renders a list, skipping blank items
func (rc *renderContext) bullets(items []string) *Node {
	s := rc.schema
	var lis []*Node
	for _, item := range items {
		if strings.TrimSpace(item) == "" {
			continue
		}
		lis = append(lis, text("li", item, Style{
			{"font-size", px(s.Typography.BodySize)},
			{"margin-bottom", px(s.Spacing.Bullet)},
		}))
	}
	if len(lis) == 0 {
		return nil
	}
	return el("ul", Style{
		{"padding-left", px(14)},
		{"margin-top", px(s.Spacing.Bullet)},
	}, lis...)
}

// labeled renders "Label: value" with a bold label
func (rc *renderContext) labeled(label, value string) *Node {
	if value == "" {
		return nil
	}
	size := px(rc.schema.Typography.BodySize)
	var lead *Node
	if label != "" {
		lead = text("span", label+": ", Style{{"font-size", size}, {"font-weight", "600"}})
	}
	return el("p", Style{{"margin-top", px(rc.schema.Spacing.Bullet)}},
		lead,
		text("span", value, Style{{"font-size", size}}),
	)
}

// dateRange formats start/end, using "Present" for current roles
func dateRange(start, end string, current bool) string {
	if current {
		end = "Present"
	}
	return JoinNonEmpty(" – ", start, end)
}

// key returns a stable rendering key: the entity ID, or a positional fallback
func key(t types.SectionType, id string, index int) string {
	if id != "" {
		return id
	}
	return fmt.Sprintf("%s-%d", t, index)
}

func itoa(v int) string {
	return strconv.Itoa(v)
}

func one(node *Node, title string, items int) []sectionOutput {
	return []sectionOutput{{node: node, title: title, items: items}}
}

func renderSummary(rc *renderContext, cfg types.SectionConfig) []sectionOutput {
	summary := strings.TrimSpace(rc.data.PersonalInfo.Summary)
	if summary == "" {
		return nil
	}
	title := titleFor(cfg)
	body := rc.paragraph(summary, rc.schema.Typography.BodySize)
	return one(rc.section(cfg.Type, title, []*Node{body}), title, 1)
}

func renderExperience(rc *renderContext, cfg types.SectionConfig) []sectionOutput {
	if len(rc.data.Experience) == 0 {
		return nil
	}
	entries := make([]*Node, 0, len(rc.data.Experience))
	for i, e := range rc.data.Experience {
		entries = append(entries, rc.entry(key(cfg.Type, e.ID, i),
			rc.titleRow(e.Position, dateRange(e.StartDate, e.EndDate, e.Current)),
			rc.subtitle(JoinNonEmpty(" · ", e.Company, e.Location)),
			rc.paragraph(e.Description, rc.schema.Typography.BodySize),
			rc.bullets(e.Achievements),
		))
	}
	title := titleFor(cfg)
	return one(rc.section(cfg.Type, title, entries), title, len(entries))
}

func renderEducation(rc *renderContext, cfg types.SectionConfig) []sectionOutput {
	if len(rc.data.Education) == 0 {
		return nil
	}
	entries := make([]*Node, 0, len(rc.data.Education))
	for i, e := range rc.data.Education {
		heading := JoinNonEmpty(" in ", e.Degree, e.Field)
		if heading == "" {
			heading = e.Institution
		}
		var gpa *Node
		if e.GPA != "" {
			gpa = rc.labeled("GPA", e.GPA)
		}
		entries = append(entries, rc.entry(key(cfg.Type, e.ID, i),
			rc.titleRow(heading, dateRange(e.StartDate, e.EndDate, false)),
			rc.subtitle(JoinNonEmpty(" · ", e.Institution, e.Location)),
			gpa,
			rc.paragraph(e.Description, rc.schema.Typography.BodySize),
		))
	}
	title := titleFor(cfg)
	return one(rc.section(cfg.Type, title, entries), title, len(entries))
}

func renderSkills(rc *renderContext, cfg types.SectionConfig) []sectionOutput {
	if len(rc.data.Skills) == 0 {
		return nil
	}
	// Group by category in first-appearance order
	var order []string
	groups := make(map[string][]string)
	keys := make(map[string]string)
	for i, sk := range rc.data.Skills {
		name := sk.Name
		if sk.Level != "" {
			name = fmt.Sprintf("%s (%s)", sk.Name, sk.Level)
		}
		if _, seen := groups[sk.Category]; !seen {
			order = append(order, sk.Category)
			keys[sk.Category] = key(cfg.Type, sk.ID, i)
		}
		groups[sk.Category] = append(groups[sk.Category], name)
	}
	entries := make([]*Node, 0, len(order))
	for _, category := range order {
		line := rc.labeled(category, JoinNonEmpty(", ", groups[category]...))
		if line == nil {
			continue
		}
		line.attr("data-key", keys[category])
		entries = append(entries, line)
	}
	title := titleFor(cfg)
	return one(rc.section(cfg.Type, title, entries), title, len(rc.data.Skills))
}

func renderProjects(rc *renderContext, cfg types.SectionConfig) []sectionOutput {
	if len(rc.data.Projects) == 0 {
		return nil
	}
	entries := make([]*Node, 0, len(rc.data.Projects))
	for i, p := range rc.data.Projects {
		entries = append(entries, rc.entry(key(cfg.Type, p.ID, i),
			rc.titleRow(p.Name, dateRange(p.StartDate, p.EndDate, false)),
			rc.paragraph(p.Description, rc.schema.Typography.ProjectDescriptionSize),
			rc.labeled("Technologies", strings.Join(p.Technologies, ", ")),
			rc.subtitle(p.Link),
		))
	}
	title := titleFor(cfg)
	return one(rc.section(cfg.Type, title, entries), title, len(entries))
}

func renderCertifications(rc *renderContext, cfg types.SectionConfig) []sectionOutput {
	if len(rc.data.Certifications) == 0 {
		return nil
	}
	entries := make([]*Node, 0, len(rc.data.Certifications))
	for i, c := range rc.data.Certifications {
		entries = append(entries, rc.entry(key(cfg.Type, c.ID, i),
			rc.titleRow(c.Name, c.Date),
			rc.subtitle(c.Issuer),
		))
	}
	title := titleFor(cfg)
	return one(rc.section(cfg.Type, title, entries), title, len(entries))
}

func renderLanguages(rc *renderContext, cfg types.SectionConfig) []sectionOutput {
	if len(rc.data.Languages) == 0 {
		return nil
	}
	entries := make([]*Node, 0, len(rc.data.Languages))
	for i, l := range rc.data.Languages {
		line := rc.labeled(l.Name, l.Proficiency)
		if line == nil {
			line = text("p", l.Name, Style{{"font-size", px(rc.schema.Typography.BodySize)}})
		}
		line.attr("data-key", key(cfg.Type, l.ID, i))
		entries = append(entries, line)
	}
	title := titleFor(cfg)
	return one(rc.section(cfg.Type, title, entries), title, len(entries))
}

// renderCustom emits one section per non-empty custom group, or only the
// group named by customSectionId when it is set.
func renderCustom(rc *renderContext, cfg types.SectionConfig) []sectionOutput {
	var outs []sectionOutput
	for gi, group := range rc.data.CustomSections {
		if cfg.CustomSectionID != "" && group.ID != cfg.CustomSectionID {
			continue
		}
		if len(group.Items) == 0 {
			continue
		}
		entries := make([]*Node, 0, len(group.Items))
		for i, item := range group.Items {
			entries = append(entries, rc.entry(key(cfg.Type, item.ID, i),
				rc.titleRow(item.Title, item.Date),
				rc.subtitle(item.Subtitle),
				rc.paragraph(item.Description, rc.schema.Typography.BodySize),
			))
		}
		title := group.Title
		if cfg.Title != "" && cfg.CustomSectionID != "" {
			title = cfg.Title
		}
		node := rc.section(cfg.Type, title, entries)
		node.attr("data-custom-id", key(cfg.Type, group.ID, gi))
		outs = append(outs, sectionOutput{node: node, title: title, items: len(entries)})
	}
	return outs
}

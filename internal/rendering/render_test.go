package rendering

import (
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/resume-preview/internal/templates"
	"github.com/jonathan/resume-preview/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchema(layout types.Layout) types.TemplateSchema {
	return types.TemplateSchema{
		ID:     "test",
		Layout: layout,
		Colors: types.Colors{Primary: "#123456", Text: "#222222"},
		Typography: types.Typography{
			NameSize:         24,
			SectionTitleSize: 13,
			BodySize:         10,
		},
		Spacing: types.Spacing{Section: 14, Item: 8, Bullet: 2},
		Header:  types.HeaderConfig{NameAlign: "center", ShowLinkedIn: true},
		Sections: []types.SectionConfig{
			{Type: types.SectionSummary, Show: true, Order: 0},
			{Type: types.SectionExperience, Show: true, Order: 1},
			{Type: types.SectionEducation, Show: true, Order: 2},
			{Type: types.SectionSkills, Show: true, Order: 3},
			{Type: types.SectionProjects, Show: true, Order: 4},
			{Type: types.SectionCertifications, Show: true, Order: 5},
			{Type: types.SectionLanguages, Show: true, Order: 6},
			{Type: types.SectionCustom, Show: true, Order: 7},
		},
	}
}

func fullData() types.ResumeData {
	return types.ResumeData{
		PersonalInfo: types.PersonalInfo{
			FullName: "Ada Lovelace",
			Title:    "Analyst",
			Email:    "ada@example.com",
			Phone:    "555-0100",
			LinkedIn: "linkedin.com/in/ada",
			Website:  "ada.dev",
			Summary:  "First programmer.",
		},
		Experience: []types.Experience{
			{ID: "exp-1", Company: "Analytical Engines", Position: "Engineer", StartDate: "1842", Current: true,
				Achievements: []string{"Wrote the first algorithm", ""}},
		},
		Education: []types.Education{
			{ID: "edu-1", Institution: "Home", Degree: "Mathematics", StartDate: "1830", EndDate: "1835"},
		},
		Skills: []types.Skill{
			{ID: "sk-1", Name: "Mathematics", Category: "Core"},
			{ID: "sk-2", Name: "Poetry", Category: "Other"},
			{ID: "sk-3", Name: "Logic", Category: "Core", Level: "Expert"},
		},
		Projects: []types.Project{
			{ID: "pr-1", Name: "Note G", Description: "Bernoulli numbers", Technologies: []string{"Punch cards"}},
		},
		Certifications: []types.Certification{{ID: "ce-1", Name: "Royal Society", Issuer: "London"}},
		Languages:      []types.Language{{ID: "la-1", Name: "English", Proficiency: "Native"}, {ID: "la-2", Name: "French"}},
		CustomSections: []types.CustomSection{
			{ID: "cs-1", Title: "Awards", Items: []types.CustomItem{{ID: "ci-1", Title: "Medal", Date: "1850"}}},
			{ID: "cs-2", Title: "Empty group"},
		},
	}
}

func parse(t *testing.T, doc *Document) *goquery.Document {
	t.Helper()
	q, err := goquery.NewDocumentFromReader(strings.NewReader(doc.Page()))
	require.NoError(t, err)
	return q
}

func TestRender_IsPure(t *testing.T) {
	schema := testSchema(types.Layout{Type: types.LayoutTwoColumn})
	data := fullData()

	first := Render(schema, data).HTML()
	second := Render(schema, data).HTML()

	assert.Equal(t, first, second, "identical inputs must produce byte-identical trees")
}

func TestRender_HeaderOnly(t *testing.T) {
	data := types.ResumeData{PersonalInfo: types.PersonalInfo{FullName: "Grace Hopper"}}

	doc := Render(testSchema(types.Layout{Type: types.LayoutSingleColumn}), data)
	q := parse(t, doc)

	assert.Equal(t, "Grace Hopper", q.Find("header h1").Text())
	assert.Equal(t, 0, q.Find("[data-section]").Length(), "no section blocks for empty data")
	assert.Equal(t, 0, q.Find("[data-block=contact]").Length(), "contact line omitted when empty")
	assert.Empty(t, doc.Sections)
}

func TestRender_EmptySectionsOmitted(t *testing.T) {
	data := fullData()
	data.Experience = nil
	data.Languages = []types.Language{}

	q := parse(t, Render(testSchema(types.Layout{Type: types.LayoutSingleColumn}), data))

	assert.Equal(t, 0, q.Find("[data-section=experience]").Length())
	assert.Equal(t, 0, q.Find("[data-section=languages]").Length())
	assert.Equal(t, 1, q.Find("[data-section=skills]").Length())
	assert.NotContains(t, q.Text(), "Experience", "no empty heading")
}

func TestRender_BlankSummaryOmitted(t *testing.T) {
	data := fullData()
	data.PersonalInfo.Summary = "  \n "

	doc := Render(testSchema(types.Layout{Type: types.LayoutSingleColumn}), data)
	q := parse(t, doc)

	assert.Equal(t, 0, q.Find("[data-section=summary]").Length())
	for _, placed := range doc.Sections {
		assert.NotEqual(t, types.SectionSummary, placed.Type)
	}
	assert.Equal(t, 0, data.Count(types.SectionSummary))
}

func TestRender_CustomGroupWithoutItemsOmitted(t *testing.T) {
	q := parse(t, Render(testSchema(types.Layout{Type: types.LayoutSingleColumn}), fullData()))

	custom := q.Find("[data-section=custom]")
	require.Equal(t, 1, custom.Length())
	assert.Equal(t, "cs-1", custom.AttrOr("data-custom-id", ""))
	assert.NotContains(t, q.Text(), "Empty group")
}

func TestRender_CustomSectionFilter(t *testing.T) {
	schema := testSchema(types.Layout{Type: types.LayoutSingleColumn})
	schema.Sections = []types.SectionConfig{
		{Type: types.SectionCustom, Show: true, CustomSectionID: "cs-2", Title: "Nothing"},
	}

	doc := Render(schema, fullData())
	assert.Empty(t, doc.Sections, "filtered group is empty so nothing renders")
}

func TestRender_HiddenSectionsSkipped(t *testing.T) {
	schema := testSchema(types.Layout{Type: types.LayoutSingleColumn})
	for i := range schema.Sections {
		if schema.Sections[i].Type == types.SectionSkills {
			schema.Sections[i].Show = false
		}
	}

	q := parse(t, Render(schema, fullData()))
	assert.Equal(t, 0, q.Find("[data-section=skills]").Length())
}

func TestRender_SectionOrder(t *testing.T) {
	schema := testSchema(types.Layout{Type: types.LayoutSingleColumn})
	schema.Sections = []types.SectionConfig{
		{Type: types.SectionLanguages, Show: true, Order: 2},
		{Type: types.SectionSkills, Show: true, Order: 1},
		{Type: types.SectionEducation, Show: true, Order: 1},
		{Type: types.SectionExperience, Show: true, Order: 0},
	}

	doc := Render(schema, fullData())

	got := make([]types.SectionType, 0, len(doc.Sections))
	for _, p := range doc.Sections {
		got = append(got, p.Type)
	}
	assert.Equal(t, []types.SectionType{
		types.SectionExperience,
		types.SectionSkills, // tie with education, earlier in the array
		types.SectionEducation,
		types.SectionLanguages,
	}, got)
}

func TestPartition_Defaults(t *testing.T) {
	sections := []types.SectionConfig{
		{Type: types.SectionSummary, Column: types.ColumnFull},
		{Type: types.SectionExperience},
		{Type: types.SectionEducation},
		{Type: types.SectionSkills, Column: types.ColumnRight},
		{Type: types.SectionExperience, Column: types.ColumnLeft},
		{Type: types.SectionLanguages},
	}

	full, left, right := Partition(sections)

	assert.Len(t, full, 1)
	assert.Equal(t, types.SectionSummary, full[0].Type)
	assert.Equal(t, []types.SectionType{types.SectionEducation, types.SectionExperience, types.SectionLanguages},
		sectionTypes(left))
	assert.Equal(t, []types.SectionType{types.SectionExperience, types.SectionSkills}, sectionTypes(right))
	assert.Equal(t, len(sections), len(full)+len(left)+len(right), "every section lands in exactly one slot")
}

func TestResolveColumn(t *testing.T) {
	for _, st := range types.AllSectionTypes {
		want := types.ColumnLeft
		if st == types.SectionExperience {
			want = types.ColumnRight
		}
		assert.Equal(t, want, ResolveColumn(types.SectionConfig{Type: st}), st)
	}
}

func TestRender_TwoColumnWidths(t *testing.T) {
	schema := testSchema(types.Layout{Type: types.LayoutTwoColumn, LeftColumnWidth: 65, RightColumnWidth: 35})

	q := parse(t, Render(schema, fullData()))

	narrow := q.Find("[data-block=column-left]")
	wide := q.Find("[data-block=column-right]")
	assert.Contains(t, narrow.AttrOr("style", ""), "width:35%")
	assert.Contains(t, wide.AttrOr("style", ""), "width:65%")

	for _, st := range []string{"skills", "certifications", "languages"} {
		assert.Equal(t, 1, narrow.Find("[data-section="+st+"]").Length(), "%s should be in the narrower column", st)
	}
	assert.Equal(t, 1, wide.Find("[data-section=experience]").Length(), "experience should be in the wider column")
}

func TestRender_TwoColumnFullBandAboveSplit(t *testing.T) {
	schema := testSchema(types.Layout{Type: types.LayoutTwoColumn})
	schema.Sections[0].Column = types.ColumnFull

	q := parse(t, Render(schema, fullData()))

	summary := q.Find("#resume-root > [data-section=summary]")
	assert.Equal(t, 1, summary.Length(), "full sections render directly under the root")
	assert.True(t, summary.NextAllFiltered("[data-block=columns]").Length() == 1, "columns follow the full band")
}

func TestRender_Sidebar(t *testing.T) {
	schema := testSchema(types.Layout{Type: types.LayoutSidebar})
	schema.Sections[1].Column = types.ColumnLeft // ignored outside two-column

	doc := Render(schema, fullData())
	q := parse(t, doc)

	side := q.Find("[data-block=column-sidebar]")
	main := q.Find("[data-block=column-main]")
	assert.Equal(t, 3, side.Find("[data-section]").Length())
	assert.Equal(t, 1, main.Find("[data-section=experience]").Length())
	assert.Contains(t, side.AttrOr("style", ""), "width:32%")
}

func TestRender_SchemaTypographyApplied(t *testing.T) {
	schema := testSchema(types.Layout{Type: types.LayoutSingleColumn})
	schema.Typography.SectionTitleSize = 17
	schema.Typography.ProjectDescriptionSize = 8.5
	schema.Colors.Primary = "#abcdef"

	q := parse(t, Render(schema, fullData()))

	h2 := q.Find("[data-section=skills] h2")
	assert.Contains(t, h2.AttrOr("style", ""), "font-size:17px")
	assert.Contains(t, h2.AttrOr("style", ""), "color:#abcdef")
	assert.Contains(t, q.Find("[data-section=projects] p").First().AttrOr("style", ""), "font-size:8.5px")
}

func TestRender_SkillGrouping(t *testing.T) {
	q := parse(t, Render(testSchema(types.Layout{Type: types.LayoutSingleColumn}), fullData()))

	lines := q.Find("[data-section=skills] p")
	require.Equal(t, 2, lines.Length())
	assert.Equal(t, "Core: Mathematics, Logic (Expert)", lines.Eq(0).Text())
	assert.Equal(t, "Other: Poetry", lines.Eq(1).Text())
}

func TestRender_EntryKeys(t *testing.T) {
	data := fullData()
	data.Education[0].ID = ""

	q := parse(t, Render(testSchema(types.Layout{Type: types.LayoutSingleColumn}), data))

	assert.Equal(t, 1, q.Find("[data-key=exp-1]").Length())
	assert.Equal(t, 1, q.Find("[data-key=education-0]").Length(), "positional fallback key")
}

func TestRender_EscapesContent(t *testing.T) {
	data := types.ResumeData{PersonalInfo: types.PersonalInfo{FullName: `<script>alert("x")</script>`}}
	schema := testSchema(types.Layout{Type: types.LayoutSingleColumn})
	schema.Colors.Primary = `red;}</style><script>`

	out := Render(schema, data).HTML()

	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestRender_BannerHeader(t *testing.T) {
	schema := testSchema(types.Layout{Type: types.LayoutSingleColumn})
	schema.Header.Style = types.HeaderBanner

	q := parse(t, Render(schema, fullData()))

	style := q.Find("header").AttrOr("style", "")
	assert.Contains(t, style, "background:#123456")
	assert.Contains(t, q.Find("header h1").AttrOr("style", ""), "color:#ffffff")
}

func TestContactLine(t *testing.T) {
	p := types.PersonalInfo{Email: "a@b.c", Phone: "", Location: "Paris", LinkedIn: "in/a", Website: "a.dev"}

	tests := []struct {
		name   string
		header types.HeaderConfig
		want   string
	}{
		{"default separator, socials hidden", types.HeaderConfig{}, "a@b.c • Paris"},
		{"linkedin shown", types.HeaderConfig{ShowLinkedIn: true, Separator: "|"}, "a@b.c | Paris | in/a"},
		{"all shown", types.HeaderConfig{ShowLinkedIn: true, ShowWebsite: true}, "a@b.c • Paris • in/a • a.dev"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContactLine(tt.header, p))
		})
	}

	assert.Equal(t, "", ContactLine(types.HeaderConfig{ShowWebsite: true}, types.PersonalInfo{}))
}

func TestSectionRenderers_Exhaustive(t *testing.T) {
	for _, st := range types.AllSectionTypes {
		_, ok := sectionRenderers[st]
		assert.True(t, ok, "no renderer for %s", st)
	}
	assert.Len(t, sectionRenderers, len(types.AllSectionTypes))
}

func TestRender_ExperienceDates(t *testing.T) {
	q := parse(t, Render(testSchema(types.Layout{Type: types.LayoutSingleColumn}), fullData()))

	row := q.Find("[data-key=exp-1] span")
	assert.Equal(t, "Engineer", row.Eq(0).Text())
	assert.Equal(t, "1842 – Present", row.Eq(1).Text())
	assert.Equal(t, 1, q.Find("[data-key=exp-1] li").Length(), "blank achievements are skipped")
}

func TestRenderTemplate(t *testing.T) {
	for _, id := range templates.IDs() {
		doc, err := RenderTemplate(id, fullData())
		require.NoError(t, err)
		assert.NotEmpty(t, doc.Sections, id)
	}

	_, err := RenderTemplate("does-not-exist", fullData())
	var tmplErr *TemplateError
	require.True(t, errors.As(err, &tmplErr))
	assert.Equal(t, "does-not-exist", tmplErr.TemplateID)
}

func TestRenderTemplate_DefaultID(t *testing.T) {
	doc, err := RenderTemplate("", fullData())
	require.NoError(t, err)
	v, _ := doc.Root.Attr("data-template")
	assert.Equal(t, templates.DefaultID, v)
}

func sectionTypes(sections []types.SectionConfig) []types.SectionType {
	out := make([]types.SectionType, 0, len(sections))
	for _, s := range sections {
		out = append(out, s.Type)
	}
	return out
}

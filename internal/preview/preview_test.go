package preview

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jonathan/resume-preview/internal/cache"
	"github.com/jonathan/resume-preview/internal/measure"
	"github.com/jonathan/resume-preview/internal/rendering"
	"github.com/jonathan/resume-preview/internal/templates"
	"github.com/jonathan/resume-preview/internal/types"
	"github.com/jonathan/resume-preview/internal/viewer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(c cache.HeightCache) *Engine {
	return &Engine{
		Surface:      measure.EstimateSurface{},
		SurfaceName:  "estimate",
		Cache:        c,
		DisplayWidth: 595,
		SettleWindow: 10 * time.Millisecond,
	}
}

func data() types.ResumeData {
	return types.ResumeData{
		PersonalInfo: types.PersonalInfo{FullName: "Ada Lovelace", Summary: "Mathematician."},
		Skills:       []types.Skill{{Name: "Analysis"}},
	}
}

func TestPreview_Basic(t *testing.T) {
	res, err := newEngine(nil).Preview(context.Background(), Request{Data: data()})
	require.NoError(t, err)

	assert.Equal(t, templates.DefaultID, res.TemplateID)
	assert.Equal(t, 1, res.Layout.PageCount)
	assert.Equal(t, []types.Page{{Index: 0, VerticalOffset: 0, Height: types.OriginalHeight}}, res.Pages)
	assert.Greater(t, res.Height, 0.0)
	assert.False(t, res.Cached)
	assert.Empty(t, res.Indicator)
	require.Len(t, res.Sections, 2)
	assert.Equal(t, types.SectionSummary, res.Sections[0].Type)
	assert.True(t, res.Viewer.Snapshot().IsReady)
}

func TestPreview_HeaderOnly(t *testing.T) {
	res, err := newEngine(nil).Preview(context.Background(), Request{
		TemplateID: templates.Modern,
		Data:       types.ResumeData{PersonalInfo: types.PersonalInfo{FullName: "Grace Hopper"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Layout.PageCount)
	assert.Empty(t, res.Sections)
}

func TestPreview_UsesCache(t *testing.T) {
	c := cache.NewMemoryCache(time.Minute)
	e := newEngine(c)

	first, err := e.Preview(context.Background(), Request{Data: data()})
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.Equal(t, 1, c.Len())

	second, err := e.Preview(context.Background(), Request{Data: data()})
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Height, second.Height)
	assert.Equal(t, first.Layout, second.Layout)
}

func TestPreview_CachedHeightPaginates(t *testing.T) {
	c := cache.NewMemoryCache(time.Minute)
	e := newEngine(c)

	schema, ok := templates.Get(templates.Classic)
	require.True(t, ok)
	key := cache.Key(rendering.Render(schema, data().EnsureIDs()), "estimate")
	require.NoError(t, c.Set(context.Background(), key, 2000))

	res, err := e.Preview(context.Background(), Request{Data: data()})
	require.NoError(t, err)
	assert.True(t, res.Cached)
	assert.Equal(t, 2000.0, res.Height)
	assert.Equal(t, 3, res.Layout.PageCount)
	assert.Equal(t, []float64{0, 842, 1684}, res.Layout.Offsets)
	assert.Equal(t, "1/3", res.Indicator)
}

func TestPreview_InlineSchema(t *testing.T) {
	schema := types.TemplateSchema{
		Layout:     types.Layout{Type: types.LayoutTwoColumn, LeftColumnWidth: 65, RightColumnWidth: 35},
		Colors:     types.Colors{Primary: "#111111", Text: "#222222"},
		Typography: types.Typography{NameSize: 20, SectionTitleSize: 12, BodySize: 10},
		Sections: []types.SectionConfig{
			{Type: types.SectionSkills, Show: true},
			{Type: types.SectionSummary, Show: true, Order: 1},
		},
	}
	res, err := newEngine(nil).Preview(context.Background(), Request{Schema: &schema, Data: data()})
	require.NoError(t, err)
	require.Len(t, res.Sections, 2)
	assert.Equal(t, "left", res.Sections[0].Column)
}

func TestPreview_Errors(t *testing.T) {
	bad := types.TemplateSchema{
		Layout:     types.Layout{Type: types.LayoutSingleColumn},
		Colors:     types.Colors{Primary: "#111", Text: "#222"},
		Typography: types.Typography{NameSize: 20, SectionTitleSize: 12, BodySize: 10},
		Sections:   []types.SectionConfig{{Type: "photos", Show: true}},
	}

	tests := []struct {
		name    string
		engine  *Engine
		req     Request
		message string
	}{
		{"unknown template", newEngine(nil), Request{TemplateID: "nope", Data: data()}, "unknown template"},
		{"unknown section type", newEngine(nil), Request{Schema: &bad, Data: data()}, "invalid schema"},
		{"missing name", newEngine(nil), Request{Data: types.ResumeData{}}, "invalid resume data"},
		{"bad width", &Engine{Surface: measure.EstimateSurface{}}, Request{Data: data()}, "invalid display width"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.engine.Preview(context.Background(), tt.req)
			var pe *Error
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.message, pe.Message)
		})
	}
}

// silentSurface mounts but never reports a layout
type silentSurface struct{}

func (silentSurface) Mount(context.Context, *rendering.Document, func(float64)) (func(), error) {
	return func() {}, nil
}

func TestPreview_NotConverged(t *testing.T) {
	e := newEngine(nil)
	e.Surface = silentSurface{}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := e.Preview(ctx, Request{Data: data()})
	var nc *measure.NotConvergedError
	assert.ErrorAs(t, err, &nc)
}

func TestPreview_OnState(t *testing.T) {
	var mu sync.Mutex
	var states []viewer.State

	_, err := newEngine(nil).Preview(context.Background(), Request{
		Data: data(),
		OnState: func(id string, s viewer.Snapshot) {
			mu.Lock()
			defer mu.Unlock()
			assert.Equal(t, templates.Classic, id)
			states = append(states, s.State)
		},
	})
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, states)
	assert.Equal(t, viewer.StateUnmeasured, states[0])
	assert.Equal(t, viewer.StatePaginated, states[len(states)-1])
}

func TestPreviewTemplates(t *testing.T) {
	results, err := newEngine(cache.NewMemoryCache(0)).PreviewTemplates(context.Background(), nil, data())
	require.NoError(t, err)

	ids := templates.IDs()
	require.Len(t, results, len(ids))
	for i, res := range results {
		assert.Equal(t, ids[i], res.TemplateID, "results keep input order")
		assert.GreaterOrEqual(t, res.Layout.PageCount, 1)
	}
}

func TestPreviewTemplates_Error(t *testing.T) {
	_, err := newEngine(nil).PreviewTemplates(context.Background(), []string{templates.Classic, "missing"}, data())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "template missing")
}

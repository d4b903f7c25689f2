package viewer

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/resume-preview/internal/measure"
	"github.com/jonathan/resume-preview/internal/pagination"
	"github.com/jonathan/resume-preview/internal/templates"
	"github.com/jonathan/resume-preview/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWindow = 20 * time.Millisecond

func newTestViewer(t *testing.T, displayWidth float64) *Viewer {
	t.Helper()
	g, err := pagination.NewGeometry(displayWidth)
	require.NoError(t, err)
	return New(g, Options{SettleWindow: testWindow})
}

func classic(t *testing.T) types.TemplateSchema {
	t.Helper()
	s, ok := templates.Get(templates.Classic)
	require.True(t, ok)
	return s
}

func nameOnly(name string) types.ResumeData {
	return types.ResumeData{PersonalInfo: types.PersonalInfo{FullName: name}}
}

func waitPaginated(t *testing.T, v *Viewer) Snapshot {
	t.Helper()
	require.Eventually(t, func() bool { return v.Snapshot().IsReady }, time.Second, 5*time.Millisecond)
	return v.Snapshot()
}

func TestViewer_InitialState(t *testing.T) {
	v := newTestViewer(t, 595)
	s := v.Snapshot()

	assert.Equal(t, StateUnmeasured, s.State)
	assert.False(t, s.IsReady)
	assert.Equal(t, 0, s.PageCount)
	assert.Nil(t, v.Document())
	assert.Equal(t, "", v.Indicator())
}

func TestViewer_SetInputIdentity(t *testing.T) {
	v := newTestViewer(t, 595)
	schema := classic(t)

	assert.True(t, v.SetInput(schema, nameOnly("A")))
	assert.False(t, v.SetInput(schema, nameOnly("A")), "same identity is not a reset")
	assert.True(t, v.SetInput(schema, nameOnly("B")))

	other := schema
	other.Colors.Primary = "#000000"
	assert.True(t, v.SetInput(other, nameOnly("B")), "schema changes count too")
}

func TestViewer_MeasureToPaginated(t *testing.T) {
	v := newTestViewer(t, 595)
	v.SetInput(classic(t), nameOnly("A"))

	v.BeginMeasure()
	assert.Equal(t, StateMeasuring, v.Snapshot().State)

	v.OnLayout(300)
	v.OnLayout(1000)
	s := waitPaginated(t, v)

	assert.Equal(t, StatePaginated, s.State)
	assert.Equal(t, 1000.0, s.Height)
	assert.Equal(t, 2, s.PageCount)
	assert.Equal(t, []float64{0, 842}, s.Offsets)
	assert.Equal(t, "1/2", s.Indicator)
}

func TestViewer_OnLayoutStartsMeasuring(t *testing.T) {
	v := newTestViewer(t, 595)
	v.SetInput(classic(t), nameOnly("A"))

	v.OnLayout(0) // not ready, but the subtree is mounted
	assert.Equal(t, StateMeasuring, v.Snapshot().State)

	time.Sleep(3 * testWindow)
	assert.False(t, v.Snapshot().IsReady, "zero height never commits")
}

func TestViewer_OnLayoutWithoutInput(t *testing.T) {
	v := newTestViewer(t, 595)
	v.OnLayout(500)
	v.BeginMeasure()
	assert.Equal(t, StateUnmeasured, v.Snapshot().State)
}

func TestViewer_ResetOnInputChange(t *testing.T) {
	v := newTestViewer(t, 300)
	v.SetInput(classic(t), nameOnly("A"))
	v.OnLayout(2000)
	waitPaginated(t, v)

	v.OnScrollEnd(600)
	require.Equal(t, 2, v.Snapshot().CurrentPage)

	v.SetInput(classic(t), nameOnly("B"))
	s := v.Snapshot()
	assert.Equal(t, StateUnmeasured, s.State)
	assert.False(t, s.IsReady)
	assert.Equal(t, 0, s.CurrentPage)
	assert.Equal(t, 0.0, s.Height)
	assert.Equal(t, 0, s.PageCount)
	assert.Contains(t, v.Document().HTML(), ">B<")
}

func TestViewer_Restore(t *testing.T) {
	v := newTestViewer(t, 595)
	assert.False(t, v.Restore(900), "no input yet")

	v.SetInput(classic(t), nameOnly("A"))
	assert.False(t, v.Restore(0))
	assert.True(t, v.Restore(1700))

	s := v.Snapshot()
	assert.True(t, s.IsReady, "restore commits immediately")
	assert.Equal(t, 3, s.PageCount)
}

func TestViewer_StaleCommitDiscarded(t *testing.T) {
	v := newTestViewer(t, 595)
	v.SetInput(classic(t), nameOnly("A"))
	v.OnLayout(5000)

	v.SetInput(classic(t), nameOnly("B"))
	time.Sleep(4 * testWindow)

	s := v.Snapshot()
	assert.False(t, s.IsReady, "a reading from the previous input must not paginate the new one")
	assert.Equal(t, 0.0, s.Height)
}

func TestViewer_ScrollMapping(t *testing.T) {
	v := newTestViewer(t, 300)
	v.SetInput(classic(t), nameOnly("A"))
	v.OnLayout(2000) // 3 pages
	waitPaginated(t, v)

	tests := []struct {
		offset float64
		want   int
	}{
		{160, 1},
		{599, 2},
		{10000, 2},
		{-100, 0},
		{140, 0},
	}
	for _, tt := range tests {
		v.OnScrollEnd(tt.offset)
		assert.Equal(t, tt.want, v.Snapshot().CurrentPage, "offset %v", tt.offset)
	}
}

func TestViewer_ScrollIgnoredBeforePagination(t *testing.T) {
	v := newTestViewer(t, 300)
	v.SetInput(classic(t), nameOnly("A"))

	v.OnScrollEnd(900)
	assert.Equal(t, 0, v.Snapshot().CurrentPage)
}

func TestViewer_ScrollThrottled(t *testing.T) {
	g, err := pagination.NewGeometry(300)
	require.NoError(t, err)
	v := New(g, Options{SettleWindow: testWindow, ScrollInterval: time.Hour})
	v.SetInput(classic(t), nameOnly("A"))
	v.OnLayout(2000)
	waitPaginated(t, v)

	assert.True(t, v.OnScroll(300))
	assert.Equal(t, 1, v.Snapshot().CurrentPage)

	assert.False(t, v.OnScroll(600), "second sample inside the interval is dropped")
	assert.Equal(t, 1, v.Snapshot().CurrentPage)

	v.OnScrollEnd(600)
	assert.Equal(t, 2, v.Snapshot().CurrentPage, "scroll end always applies")
}

func TestViewer_SinglePageHasNoIndicator(t *testing.T) {
	v := newTestViewer(t, 595)
	v.SetInput(classic(t), nameOnly("Grace Hopper"))

	unmount, err := v.Attach(context.Background(), measure.EstimateSurface{})
	require.NoError(t, err)
	defer unmount()

	s := waitPaginated(t, v)
	assert.Equal(t, 1, s.PageCount)
	assert.Equal(t, []float64{0}, s.Offsets)
	assert.Equal(t, "", s.Indicator)
	assert.Equal(t, "", v.Indicator())
}

func TestViewer_AttachWithoutInput(t *testing.T) {
	v := newTestViewer(t, 595)
	_, err := v.Attach(context.Background(), measure.EstimateSurface{})
	assert.Error(t, err)
}

func TestViewer_Subscribe(t *testing.T) {
	v := newTestViewer(t, 595)

	var mu sync.Mutex
	var states []State
	unsubscribe := v.Subscribe(func(s Snapshot) {
		mu.Lock()
		states = append(states, s.State)
		mu.Unlock()
	})

	v.SetInput(classic(t), nameOnly("A"))
	v.BeginMeasure()
	v.OnLayout(900)
	waitPaginated(t, v)

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(states) == 3
	}, time.Second, 5*time.Millisecond)
	mu.Lock()
	assert.Equal(t, []State{StateUnmeasured, StateMeasuring, StatePaginated}, states)
	mu.Unlock()

	unsubscribe()
	v.SetInput(classic(t), nameOnly("B"))
	mu.Lock()
	assert.Len(t, states, 3)
	mu.Unlock()
}

func TestViewer_WaitReady(t *testing.T) {
	v := newTestViewer(t, 595)
	v.SetInput(classic(t), nameOnly("A"))

	go v.OnLayout(842)
	s, err := v.WaitReady(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, s.PageCount)

	v.SetInput(classic(t), nameOnly("B"))
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_, err = v.WaitReady(ctx)
	var nc *measure.NotConvergedError
	assert.ErrorAs(t, err, &nc)
}

func TestViewer_ConcurrentCallbacks(t *testing.T) {
	v := newTestViewer(t, 300)
	v.SetInput(classic(t), nameOnly("A"))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				v.OnLayout(float64(1000 + i + j))
				v.OnScroll(float64(j * 10))
				s := v.Snapshot()
				assert.Len(t, s.Offsets, s.PageCount)
			}
		}(i)
	}
	wg.Wait()

	s := waitPaginated(t, v)
	assert.Equal(t, 2, s.PageCount)
}

func TestRender_Loading(t *testing.T) {
	v := newTestViewer(t, 297.5)
	v.SetInput(classic(t), nameOnly("Ada"))

	q, err := goquery.NewDocumentFromReader(strings.NewReader(v.Page()))
	require.NoError(t, err)

	assert.Equal(t, 1, q.Find(".resume-spinner").Length())
	assert.Equal(t, 1, q.Find("[data-block=measure] #resume-root").Length(), "hidden subtree is mounted for measurement")
	assert.Equal(t, 0, q.Find("[data-page]").Length())
	assert.Equal(t, "unmeasured", q.Find(".resume-viewer").AttrOr("data-state", ""))
}

func TestRender_Paginated(t *testing.T) {
	v := newTestViewer(t, 297.5)
	v.SetInput(classic(t), nameOnly("Ada"))
	v.OnLayout(1000)
	waitPaginated(t, v)

	page := v.Page()
	assert.Contains(t, page, "scroll-snap-type:x mandatory")

	q, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	require.NoError(t, err)

	frames := q.Find("[data-page]")
	require.Equal(t, 2, frames.Length())
	assert.Equal(t, 0, q.Find(".resume-spinner").Length())
	assert.Equal(t, 1, frames.Eq(0).Find("#resume-root-page-1").Length(), "every frame views the same tree")
	assert.Equal(t, 1, frames.Eq(1).Find("#resume-root-page-2").Length())
	assert.Equal(t, 0, q.Find("#resume-root").Length(), "frame copies never reuse the document id")
	assert.Equal(t, frames.Eq(0).Find("[data-section]").Length(), frames.Eq(1).Find("[data-section]").Length())

	style := frames.Eq(1).AttrOr("style", "")
	assert.Contains(t, style, "width:297.5px")
	assert.Contains(t, style, "height:421px")
	assert.Contains(t, frames.Eq(0).Children().First().AttrOr("style", ""), "translateY(0px) scale(0.5)")
	assert.Contains(t, frames.Eq(1).Children().First().AttrOr("style", ""), "translateY(-421px) scale(0.5)")
	assert.Equal(t, "1/2", q.Find("[data-block=indicator]").Text())
}

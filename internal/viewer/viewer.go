// Package viewer drives one preview through measurement and pagination and
// composes the paged, scroll-snapped presentation.
package viewer

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/jonathan/resume-preview/internal/measure"
	"github.com/jonathan/resume-preview/internal/pagination"
	"github.com/jonathan/resume-preview/internal/rendering"
	"github.com/jonathan/resume-preview/internal/types"
	"golang.org/x/time/rate"
)

// State is the viewer lifecycle position
type State string

const (
	StateUnmeasured State = "unmeasured"
	StateMeasuring  State = "measuring"
	StatePaginated  State = "paginated"
)

// DefaultScrollInterval bounds how often scroll samples update the current page
const DefaultScrollInterval = 16 * time.Millisecond

// Options configures a Viewer
type Options struct {
	SettleWindow   time.Duration
	ScrollInterval time.Duration
}

// Snapshot is a consistent copy of the viewer state
type Snapshot struct {
	State       State     `json:"state"`
	IsReady     bool      `json:"isReady"`
	Height      float64   `json:"height"`
	PageCount   int       `json:"pageCount"`
	Offsets     []float64 `json:"offsets"`
	CurrentPage int       `json:"currentPage"`
	Indicator   string    `json:"indicator,omitempty"`
	Identity    string    `json:"identity"`
}

// Viewer owns the measure-paginate cycle for one Schema and Data pair.
// Timer and scroll callbacks arrive on other goroutines, so all state sits
// behind one mutex and every input change bumps a generation that stale
// commits are checked against.
type Viewer struct {
	mu       sync.Mutex
	geom     pagination.Geometry
	window   time.Duration
	settler  *measure.Settler
	limiter  *rate.Limiter
	gen      uint64
	hasInput bool
	identity uint64

	doc         *rendering.Document
	state       State
	height      float64
	layout      pagination.Layout
	currentPage int

	subs    map[int]func(Snapshot)
	nextSub int
}

// New creates an idle viewer for the given geometry.
func New(geom pagination.Geometry, opts Options) *Viewer {
	if opts.SettleWindow <= 0 {
		opts.SettleWindow = measure.DefaultSettleWindow
	}
	if opts.ScrollInterval <= 0 {
		opts.ScrollInterval = DefaultScrollInterval
	}
	return &Viewer{
		geom:    geom,
		window:  opts.SettleWindow,
		limiter: rate.NewLimiter(rate.Every(opts.ScrollInterval), 1),
		state:   StateUnmeasured,
		subs:    make(map[int]func(Snapshot)),
	}
}

// Identity hashes the canonical JSON of schema and data.
func Identity(schema types.TemplateSchema, data types.ResumeData) uint64 {
	payload, err := json.Marshal(struct {
		Schema types.TemplateSchema `json:"schema"`
		Data   types.ResumeData     `json:"data"`
	}{schema, data})
	if err != nil {
		// NaN sizes do not marshal
		return xxhash.Sum64String(fmt.Sprintf("%#v%#v", schema, data))
	}
	return xxhash.Sum64(payload)
}

// SetInput installs a new Schema and Data pair. When its identity differs from
// the current one the whole cycle resets atomically: the settle timer is
// cancelled, readiness and height are cleared, the current page returns to 0
// and the tree is re-rendered. It reports whether a reset happened.
func (v *Viewer) SetInput(schema types.TemplateSchema, data types.ResumeData) bool {
	id := Identity(schema, data)

	v.mu.Lock()
	if v.hasInput && id == v.identity {
		v.mu.Unlock()
		return false
	}
	if v.settler != nil {
		v.settler.Reset()
	}
	v.gen++
	gen := v.gen
	v.settler = measure.NewSettler(v.window, func(h float64) { v.commit(gen, h) })
	v.hasInput = true
	v.identity = id
	v.doc = rendering.Render(schema, data.EnsureIDs())
	v.state = StateUnmeasured
	v.height = 0
	v.layout = pagination.Layout{}
	v.currentPage = 0
	snap := v.snapshotLocked()
	v.mu.Unlock()

	v.notify(snap)
	return true
}

// BeginMeasure marks the hidden subtree as mounted.
func (v *Viewer) BeginMeasure() {
	v.mu.Lock()
	if !v.hasInput || v.state != StateUnmeasured {
		v.mu.Unlock()
		return
	}
	v.state = StateMeasuring
	snap := v.snapshotLocked()
	v.mu.Unlock()

	v.notify(snap)
}

// OnLayout feeds a layout-completion reading into the settle window.
func (v *Viewer) OnLayout(height float64) {
	v.mu.Lock()
	if !v.hasInput {
		v.mu.Unlock()
		return
	}
	var snap *Snapshot
	if v.state == StateUnmeasured {
		v.state = StateMeasuring
		s := v.snapshotLocked()
		snap = &s
	}
	settler := v.settler
	v.mu.Unlock()

	if snap != nil {
		v.notify(*snap)
	}
	settler.Observe(height)
}

// Restore commits a height already known for the current tree, such as one
// read back from a cache, without waiting out the settle window.
func (v *Viewer) Restore(height float64) bool {
	if !measure.Ready(height) {
		return false
	}
	v.mu.Lock()
	if !v.hasInput {
		v.mu.Unlock()
		return false
	}
	v.settler.Reset()
	gen := v.gen
	v.mu.Unlock()

	v.commit(gen, height)
	return true
}

func (v *Viewer) commit(gen uint64, height float64) {
	v.mu.Lock()
	if gen != v.gen {
		v.mu.Unlock()
		return
	}
	v.height = height
	v.layout = pagination.Paginate(height, v.geom.PageHeightOriginal)
	v.state = StatePaginated
	if v.currentPage > v.layout.PageCount-1 {
		v.currentPage = v.layout.PageCount - 1
	}
	snap := v.snapshotLocked()
	v.mu.Unlock()

	v.notify(snap)
}

// OnScroll samples a horizontal scroll offset. Samples arriving faster than
// the scroll interval are dropped; it reports whether this one was applied.
func (v *Viewer) OnScroll(offsetX float64) bool {
	if !v.limiter.Allow() {
		return false
	}
	v.applyScroll(offsetX)
	return true
}

// OnScrollEnd applies the final resting offset unconditionally.
func (v *Viewer) OnScrollEnd(offsetX float64) {
	v.applyScroll(offsetX)
}

func (v *Viewer) applyScroll(offsetX float64) {
	v.mu.Lock()
	if v.state != StatePaginated {
		v.mu.Unlock()
		return
	}
	page := v.layout.PageAt(offsetX, v.geom.DisplayWidth)
	if page == v.currentPage {
		v.mu.Unlock()
		return
	}
	v.currentPage = page
	snap := v.snapshotLocked()
	v.mu.Unlock()

	v.notify(snap)
}

// Attach mounts the current tree on surface and routes its layout readings
// into the viewer. The caller must invoke the returned unmount.
func (v *Viewer) Attach(ctx context.Context, surface measure.Surface) (func(), error) {
	v.mu.Lock()
	doc := v.doc
	v.mu.Unlock()
	if doc == nil {
		return nil, fmt.Errorf("viewer has no input")
	}
	v.BeginMeasure()
	return surface.Mount(ctx, doc, v.OnLayout)
}

// WaitReady blocks until the viewer is paginated or ctx ends.
func (v *Viewer) WaitReady(ctx context.Context) (Snapshot, error) {
	ready := make(chan Snapshot, 1)
	cancel := v.Subscribe(func(s Snapshot) {
		if s.IsReady {
			select {
			case ready <- s:
			default:
			}
		}
	})
	defer cancel()

	if s := v.Snapshot(); s.IsReady {
		return s, nil
	}
	select {
	case s := <-ready:
		return s, nil
	case <-ctx.Done():
		return v.Snapshot(), &measure.NotConvergedError{Window: v.window, Cause: ctx.Err()}
	}
}

// Subscribe registers fn for every state change. It returns an unsubscribe func.
func (v *Viewer) Subscribe(fn func(Snapshot)) func() {
	v.mu.Lock()
	id := v.nextSub
	v.nextSub++
	v.subs[id] = fn
	v.mu.Unlock()

	return func() {
		v.mu.Lock()
		delete(v.subs, id)
		v.mu.Unlock()
	}
}

func (v *Viewer) notify(s Snapshot) {
	v.mu.Lock()
	fns := make([]func(Snapshot), 0, len(v.subs))
	for _, fn := range v.subs {
		fns = append(fns, fn)
	}
	v.mu.Unlock()

	for _, fn := range fns {
		fn(s)
	}
}

// Snapshot returns a consistent copy of the current state.
func (v *Viewer) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshotLocked()
}

func (v *Viewer) snapshotLocked() Snapshot {
	return Snapshot{
		State:       v.state,
		IsReady:     v.state == StatePaginated,
		Height:      v.height,
		PageCount:   v.layout.PageCount,
		Offsets:     append([]float64(nil), v.layout.Offsets...),
		CurrentPage: v.currentPage,
		Indicator:   indicator(v.currentPage, v.layout.PageCount),
		Identity:    fmt.Sprintf("%016x", v.identity),
	}
}

// Indicator returns "current/total" with a 1-based current page, or "" for a single page.
func (v *Viewer) Indicator() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return indicator(v.currentPage, v.layout.PageCount)
}

func indicator(current, total int) string {
	if total <= 1 {
		return ""
	}
	return fmt.Sprintf("%d/%d", current+1, total)
}

// Geometry returns the geometry the viewer was built with.
func (v *Viewer) Geometry() pagination.Geometry {
	return v.geom
}

// Document returns the current continuous tree, or nil before the first input.
func (v *Viewer) Document() *rendering.Document {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.doc
}

package measure

import (
	"math"
	"sync"
	"time"
)

// DefaultSettleWindow is how long layout must stay quiet before a height is committed
const DefaultSettleWindow = 150 * time.Millisecond

// Settler debounces layout-completion events. Every observation restarts a
// single timer; only the reading that survives the full window is committed.
type Settler struct {
	mu     sync.Mutex
	window time.Duration
	timer  *time.Timer
	gen    uint64
	last   float64
	commit func(height float64)
}

// NewSettler creates a settler that calls commit with each settled height.
// A non-positive window falls back to DefaultSettleWindow.
func NewSettler(window time.Duration, commit func(height float64)) *Settler {
	if window <= 0 {
		window = DefaultSettleWindow
	}
	return &Settler{window: window, commit: commit}
}

// Ready reports whether a reading is usable. Zero, negative and non-finite
// heights mean the subtree has not laid out yet.
func Ready(height float64) bool {
	return height > 0 && !math.IsNaN(height) && !math.IsInf(height, 0)
}

// Observe records a layout reading and restarts the settle window.
// Readings that are not Ready are dropped without touching the timer.
func (s *Settler) Observe(height float64) {
	if !Ready(height) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	gen := s.gen
	s.last = height
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.window, func() { s.fire(gen) })
}

// Reset cancels the pending timer and invalidates any commit already racing to run.
func (s *Settler) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	s.last = 0
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Pending reports whether a settle timer is in flight.
func (s *Settler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}

// Window returns the configured settle window.
func (s *Settler) Window() time.Duration {
	return s.window
}

func (s *Settler) fire(gen uint64) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	height := s.last
	s.timer = nil
	s.mu.Unlock()

	if s.commit != nil {
		s.commit(height)
	}
}

// Package cache stores measured document heights. Rendering is pure, so equal
// HTML at equal width on the same surface always measures the same.
package cache

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/jonathan/resume-preview/internal/rendering"
)

// DefaultTTL is how long a measured height stays cached
const DefaultTTL = 24 * time.Hour

// HeightCache looks up and records measured heights by key
type HeightCache interface {
	Get(ctx context.Context, key string) (height float64, ok bool, err error)
	Set(ctx context.Context, key string, height float64) error
}

// Key derives the cache key for doc measured on the named surface.
func Key(doc *rendering.Document, surface string) string {
	h := xxhash.New()
	_, _ = h.WriteString(surface)
	_, _ = h.WriteString("|")
	_, _ = h.WriteString(strconv.FormatFloat(doc.Width(), 'f', -1, 64))
	_, _ = h.WriteString("|")
	_, _ = h.WriteString(doc.HTML())
	return "height:" + strconv.FormatUint(h.Sum64(), 16)
}

type memoryEntry struct {
	height  float64
	expires time.Time
}

// MemoryCache is an in-process HeightCache with per-entry expiry
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryCache creates an in-process cache. A non-positive ttl uses DefaultTTL.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryCache{entries: make(map[string]memoryEntry), ttl: ttl, now: time.Now}
}

// Get returns the cached height if present and unexpired.
func (c *MemoryCache) Get(_ context.Context, key string) (float64, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return 0, false, nil
	}
	if c.now().After(e.expires) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return 0, false, nil
	}
	return e.height, true, nil
}

// Set records height under key.
func (c *MemoryCache) Set(_ context.Context, key string, height float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = memoryEntry{height: height, expires: c.now().Add(c.ttl)}
	return nil
}

// Len returns the number of stored entries, expired or not.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

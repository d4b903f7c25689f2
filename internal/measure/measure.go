// Package measure determines the true rendered height of a continuous document.
package measure

import (
	"context"
	"log"
	"time"

	"github.com/jonathan/resume-preview/internal/rendering"
)

// Surface mounts a document somewhere it can lay out without being seen and
// reports each layout-completion reading through onLayout. The returned
// unmount releases whatever the surface holds.
type Surface interface {
	Mount(ctx context.Context, doc *rendering.Document, onLayout func(height float64)) (unmount func(), err error)
}

// Measure mounts doc on surface and blocks until its height settles.
// It returns *NotConvergedError when ctx ends before that happens.
func Measure(ctx context.Context, surface Surface, doc *rendering.Document, window time.Duration, verbose bool) (float64, error) {
	committed := make(chan float64, 1)
	settler := NewSettler(window, func(height float64) {
		select {
		case committed <- height:
		default:
		}
	})
	defer settler.Reset()

	start := time.Now()
	unmount, err := surface.Mount(ctx, doc, settler.Observe)
	if err != nil {
		return 0, err
	}
	defer unmount()

	select {
	case h := <-committed:
		if verbose {
			log.Printf("[MEASURE] settled at %.2f after %s", h, time.Since(start).Round(time.Millisecond))
		}
		return h, nil
	case <-ctx.Done():
		if verbose {
			log.Printf("[MEASURE] gave up after %s: %v", time.Since(start).Round(time.Millisecond), ctx.Err())
		}
		return 0, &NotConvergedError{Window: settler.Window(), Cause: ctx.Err()}
	}
}

// Package preview orchestrates one render, measure and paginate cycle per request.
package preview

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-preview/internal/cache"
	"github.com/jonathan/resume-preview/internal/measure"
	"github.com/jonathan/resume-preview/internal/pagination"
	"github.com/jonathan/resume-preview/internal/templates"
	"github.com/jonathan/resume-preview/internal/types"
	"github.com/jonathan/resume-preview/internal/viewer"
)

// maxConcurrentPreviews bounds how many documents PreviewTemplates measures at once
const maxConcurrentPreviews = 4

// StateCallback is called on every viewer state transition
type StateCallback func(templateID string, snap viewer.Snapshot)

// Engine runs previews against one measurement surface
type Engine struct {
	Surface        measure.Surface
	SurfaceName    string
	Cache          cache.HeightCache // optional
	DisplayWidth   float64
	SettleWindow   time.Duration
	ScrollInterval time.Duration
	Verbose        bool
}

// Request selects a schema (inline, or a built-in template by ID) and the data to show
type Request struct {
	TemplateID string                `json:"templateId,omitempty"`
	Schema     *types.TemplateSchema `json:"schema,omitempty"`
	Data       types.ResumeData      `json:"data"`
	OnState    StateCallback         `json:"-"`
}

// Result is a paginated preview
type Result struct {
	TemplateID string                   `json:"templateId,omitempty"`
	Geometry   pagination.Geometry      `json:"geometry"`
	Height     float64                  `json:"height"`
	Layout     pagination.Layout        `json:"layout"`
	Pages      []types.Page             `json:"pages"`
	Sections   []types.SectionPlacement `json:"sections"`
	Indicator  string                   `json:"indicator,omitempty"`
	Cached     bool                     `json:"cached"`
	Viewer     *viewer.Viewer           `json:"-"`
}

// ResolveSchema returns the inline schema, or the built-in template named by
// TemplateID (DefaultID when both are empty).
func ResolveSchema(req Request) (types.TemplateSchema, error) {
	if req.Schema != nil {
		return *req.Schema, nil
	}
	id := req.TemplateID
	if id == "" {
		id = templates.DefaultID
	}
	schema, ok := templates.Get(id)
	if !ok {
		return types.TemplateSchema{}, &Error{TemplateID: id, Message: "unknown template"}
	}
	return schema, nil
}

// Preview renders, measures and paginates one document.
func (e *Engine) Preview(ctx context.Context, req Request) (*Result, error) {
	schema, err := ResolveSchema(req)
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(); err != nil {
		return nil, &Error{TemplateID: schema.ID, Message: "invalid schema", Cause: err}
	}
	if err := req.Data.Validate(); err != nil {
		return nil, &Error{TemplateID: schema.ID, Message: "invalid resume data", Cause: err}
	}

	geom, err := pagination.NewGeometry(e.DisplayWidth)
	if err != nil {
		return nil, &Error{TemplateID: schema.ID, Message: "invalid display width", Cause: err}
	}

	v := viewer.New(geom, viewer.Options{SettleWindow: e.SettleWindow, ScrollInterval: e.ScrollInterval})
	if req.OnState != nil {
		id := schema.ID
		unsubscribe := v.Subscribe(func(s viewer.Snapshot) { req.OnState(id, s) })
		defer unsubscribe()
	}
	v.SetInput(schema, req.Data)
	doc := v.Document()

	start := time.Now()
	key := cache.Key(doc, e.SurfaceName)
	cached := false
	if e.Cache != nil {
		h, ok, err := e.Cache.Get(ctx, key)
		if err != nil && e.Verbose {
			log.Printf("[PREVIEW] cache lookup failed, measuring instead: %v", err)
		}
		if ok {
			cached = v.Restore(h)
		}
	}

	if !cached {
		unmount, err := v.Attach(ctx, e.Surface)
		if err != nil {
			return nil, &Error{TemplateID: schema.ID, Message: "failed to mount document", Cause: err}
		}
		_, err = v.WaitReady(ctx)
		unmount()
		if err != nil {
			return nil, &Error{TemplateID: schema.ID, Message: "measurement did not settle", Cause: err}
		}
	}

	snap := v.Snapshot()
	if !cached && e.Cache != nil {
		if err := e.Cache.Set(ctx, key, snap.Height); err != nil && e.Verbose {
			log.Printf("[PREVIEW] cache store failed: %v", err)
		}
	}

	if e.Verbose {
		log.Printf("[PREVIEW] %s: height=%.1f pages=%d cached=%t in %s",
			displayID(schema.ID), snap.Height, snap.PageCount, cached, time.Since(start).Round(time.Millisecond))
	}

	layout := pagination.Layout{PageCount: snap.PageCount, Offsets: snap.Offsets}
	return &Result{
		TemplateID: schema.ID,
		Geometry:   geom,
		Height:     snap.Height,
		Layout:     layout,
		Pages:      layout.Pages(geom.PageHeightOriginal),
		Sections:   doc.Sections,
		Indicator:  snap.Indicator,
		Cached:     cached,
		Viewer:     v,
	}, nil
}

// PreviewTemplates previews the same data under several built-in templates
// concurrently. Each document gets its own geometry and viewer. Results keep
// the order of ids.
func (e *Engine) PreviewTemplates(ctx context.Context, ids []string, data types.ResumeData) ([]*Result, error) {
	if len(ids) == 0 {
		ids = templates.IDs()
	}
	results := make([]*Result, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentPreviews)
	for i, id := range ids {
		g.Go(func() error {
			res, err := e.Preview(gctx, Request{TemplateID: id, Data: data})
			if err != nil {
				return fmt.Errorf("template %s: %w", id, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func displayID(id string) string {
	if id == "" {
		return "(inline schema)"
	}
	return id
}

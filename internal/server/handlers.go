package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/jonathan/resume-preview/internal/export"
	"github.com/jonathan/resume-preview/internal/pagination"
	"github.com/jonathan/resume-preview/internal/preview"
	"github.com/jonathan/resume-preview/internal/rendering"
	"github.com/jonathan/resume-preview/internal/schemas"
	"github.com/jonathan/resume-preview/internal/templates"
	"github.com/jonathan/resume-preview/internal/types"
	"github.com/jonathan/resume-preview/internal/viewer"
	schemafiles "github.com/jonathan/resume-preview/schemas"
)

// DocumentRequest selects a schema (inline or by template ID) and carries the resume data
type DocumentRequest struct {
	TemplateID string                `json:"templateId,omitempty"`
	Schema     *types.TemplateSchema `json:"schema,omitempty"`
	Data       *types.ResumeData     `json:"data" validate:"required"`
}

// RenderResponse is the continuous document for /render
type RenderResponse struct {
	TemplateID string                   `json:"templateId,omitempty"`
	Width      float64                  `json:"width"`
	HTML       string                   `json:"html"`
	Sections   []types.SectionPlacement `json:"sections"`
}

// PaginateRequest is the body for /paginate
type PaginateRequest struct {
	Height       float64  `json:"height" validate:"gte=0,lte=842000"` // pagination.MaxHeight
	DisplayWidth float64  `json:"displayWidth,omitempty" validate:"omitempty,gt=0"`
	ScrollX      *float64 `json:"scrollX,omitempty"`
}

// PaginateResponse describes the page windows for a measured height
type PaginateResponse struct {
	Geometry    pagination.Geometry    `json:"geometry"`
	Layout      pagination.Layout      `json:"layout"`
	Pages       []types.Page           `json:"pages"`
	Transforms  []pagination.Transform `json:"transforms"`
	CurrentPage *int                   `json:"currentPage,omitempty"`
}

// PreviewRequest is the body for /preview and /preview/stream
type PreviewRequest struct {
	DocumentRequest
	DisplayWidth  float64 `json:"displayWidth,omitempty" validate:"omitempty,gt=0"`
	IncludeMarkup bool    `json:"includeMarkup,omitempty"`
}

// PreviewResponse is a paginated preview
type PreviewResponse struct {
	*preview.Result
	Transforms []pagination.Transform `json:"transforms"`
	Markup     string                 `json:"markup,omitempty"`
}

// BatchRequest is the body for /preview/batch
type BatchRequest struct {
	TemplateIDs []string          `json:"templateIds,omitempty" validate:"dive,required"`
	Data        *types.ResumeData `json:"data" validate:"required"`
}

// BatchResponse holds one preview per requested template, in request order
type BatchResponse struct {
	Results []PreviewResponse `json:"results"`
}

// ExportRequest is the body for /export
type ExportRequest struct {
	DocumentRequest
	Format string `json:"format,omitempty" validate:"omitempty,oneof=html pdf"`
}

// TemplateSummary is one entry of the template catalogue
type TemplateSummary struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Layout   types.LayoutType `json:"layout"`
	Sections int              `json:"sections"`
}

// rawDocument re-reads a body to check the schema and data against the JSON Schemas
type rawDocument struct {
	Schema json.RawMessage `json:"schema,omitempty"`
	Data   json.RawMessage `json:"data,omitempty"`
}

// handleListTemplates lists the built-in templates
func (s *Server) handleListTemplates(w http.ResponseWriter, _ *http.Request) {
	all := templates.All()
	out := make([]TemplateSummary, 0, len(all))
	for _, t := range all {
		out = append(out, TemplateSummary{
			ID:       t.ID,
			Name:     t.Name,
			Layout:   t.Layout.Type,
			Sections: len(t.Sections),
		})
	}
	s.jsonResponse(w, http.StatusOK, out)
}

// handleGetTemplate returns one built-in template schema
func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	schema, ok := templates.Get(id)
	if !ok {
		s.failWith(w, r, &ErrTemplateNotFound{ID: id})
		return
	}
	s.jsonResponse(w, http.StatusOK, schema)
}

// handleGetSchema serves the embedded JSON Schema documents
func (s *Server) handleGetSchema(w http.ResponseWriter, r *http.Request) {
	var file string
	switch r.PathValue("name") {
	case "template", "template-schema":
		file = schemafiles.TemplateSchemaFile
	case "resume", "resume-data":
		file = schemafiles.ResumeDataFile
	default:
		s.errorResponse(w, http.StatusNotFound, "schema not found: "+r.PathValue("name"))
		return
	}

	content, err := schemafiles.FS.ReadFile(file)
	if err != nil {
		s.failWith(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/schema+json")
	w.WriteHeader(http.StatusOK)
	w.Write(content) //nolint:errcheck
}

// handleRender renders the continuous document without measuring it
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req DocumentRequest
	if !s.decode(w, r, &req) {
		return
	}

	schema, doc, err := s.document(req)
	if err != nil {
		s.failWith(w, r, err)
		return
	}

	if strings.Contains(r.Header.Get("Accept"), "text/html") {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, doc.Page()) //nolint:errcheck
		return
	}

	s.jsonResponse(w, http.StatusOK, RenderResponse{
		TemplateID: schema.ID,
		Width:      doc.Width(),
		HTML:       doc.HTML(),
		Sections:   doc.Sections,
	})
}

// handlePaginate slices a measured height into pages
func (s *Server) handlePaginate(w http.ResponseWriter, r *http.Request) {
	var req PaginateRequest
	if !s.decode(w, r, &req) {
		return
	}

	width := req.DisplayWidth
	if width == 0 {
		width = s.engine.DisplayWidth
	}
	geom, err := pagination.NewGeometry(width)
	if err != nil {
		s.failWith(w, r, &ErrValidation{Field: "displayWidth", Message: err.Error()})
		return
	}

	layout := pagination.Paginate(req.Height, geom.PageHeightOriginal)
	resp := PaginateResponse{
		Geometry:   geom,
		Layout:     layout,
		Pages:      layout.Pages(geom.PageHeightOriginal),
		Transforms: layout.Transforms(geom),
	}
	if req.ScrollX != nil {
		page := layout.PageAt(*req.ScrollX, geom.DisplayWidth)
		resp.CurrentPage = &page
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handlePreview renders, measures and paginates one document
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	var req PreviewRequest
	if !s.decode(w, r, &req) {
		return
	}

	res, err := s.engineFor(req.DisplayWidth).Preview(r.Context(), req.previewRequest())
	if err != nil {
		s.failWith(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, newPreviewResponse(res, req.IncludeMarkup))
}

// handlePreviewStream runs a preview and streams every viewer state change via SSE
func (s *Server) handlePreviewStream(w http.ResponseWriter, r *http.Request) {
	var req PreviewRequest
	if !s.decode(w, r, &req) {
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	sse.WriteComment("preview started") //nolint:errcheck

	// Snapshots arrive from the surface and settle timer goroutines
	var (
		mu   sync.Mutex
		done bool
	)
	preq := req.previewRequest()
	preq.OnState = func(templateID string, snap viewer.Snapshot) {
		mu.Lock()
		defer mu.Unlock()
		if done {
			return
		}
		event := struct {
			TemplateID string `json:"templateId,omitempty"`
			viewer.Snapshot
		}{templateID, snap}
		if err := sse.WriteEvent("state", event); err != nil && s.verbose {
			log.Printf("Error writing SSE event: %v", err)
		}
	}

	res, err := s.engineFor(req.DisplayWidth).Preview(r.Context(), preq)

	mu.Lock()
	defer mu.Unlock()
	done = true
	if err != nil {
		sse.WriteError(errorMessage(err))
		return
	}
	sse.WriteComplete(newPreviewResponse(res, req.IncludeMarkup))
}

// handlePreviewBatch previews the same data under several templates
func (s *Server) handlePreviewBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if !s.decode(w, r, &req) {
		return
	}
	for _, id := range req.TemplateIDs {
		if _, ok := templates.Get(id); !ok {
			s.failWith(w, r, &ErrTemplateNotFound{ID: id})
			return
		}
	}

	results, err := s.engine.PreviewTemplates(r.Context(), req.TemplateIDs, *req.Data)
	if err != nil {
		s.failWith(w, r, err)
		return
	}

	resp := BatchResponse{Results: make([]PreviewResponse, 0, len(results))}
	for _, res := range results {
		resp.Results = append(resp.Results, newPreviewResponse(res, false))
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleExport returns the print page as HTML or PDF
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var req ExportRequest
	if !s.decode(w, r, &req) {
		return
	}

	_, doc, err := s.document(req.DocumentRequest)
	if err != nil {
		s.failWith(w, r, err)
		return
	}

	pdf := req.Format == "pdf"
	res, err := export.Export(r.Context(), doc, pdf, s.exportOpts)
	if err != nil {
		s.failWith(w, r, err)
		return
	}

	if pdf {
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="resume.pdf"`)
		w.WriteHeader(http.StatusOK)
		w.Write(res.PDF) //nolint:errcheck
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, res.HTML) //nolint:errcheck
}

// decode reads the body into dst, checks any schema and data against the
// JSON Schemas, then runs struct validation. It writes the error response
// itself and reports whether the handler should continue.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.errorResponse(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return false
		}
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	if err := dec.Decode(dst); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}

	var raw rawDocument
	if json.Unmarshal(body, &raw) == nil {
		if err := checkRaw(raw); err != nil {
			s.failWith(w, r, err)
			return false
		}
	}

	if err := s.validator.Struct(dst); err != nil {
		s.failWith(w, r, err)
		return false
	}
	return true
}

func checkRaw(raw rawDocument) error {
	if len(raw.Schema) > 0 && !bytes.Equal(raw.Schema, []byte("null")) {
		if err := schemas.ValidateTemplateSchema(raw.Schema); err != nil {
			return fmt.Errorf("schema: %w", err)
		}
	}
	if len(raw.Data) > 0 && !bytes.Equal(raw.Data, []byte("null")) {
		if err := schemas.ValidateResumeData(raw.Data); err != nil {
			return fmt.Errorf("data: %w", err)
		}
	}
	return nil
}

// document resolves and validates the schema and data, then renders.
func (s *Server) document(req DocumentRequest) (types.TemplateSchema, *rendering.Document, error) {
	schema, err := preview.ResolveSchema(preview.Request{TemplateID: req.TemplateID, Schema: req.Schema})
	if err != nil {
		return types.TemplateSchema{}, nil, err
	}
	if err := schema.Validate(); err != nil {
		return types.TemplateSchema{}, nil, &preview.Error{TemplateID: schema.ID, Message: "invalid schema", Cause: err}
	}
	if err := req.Data.Validate(); err != nil {
		return types.TemplateSchema{}, nil, &preview.Error{TemplateID: schema.ID, Message: "invalid resume data", Cause: err}
	}
	return schema, rendering.Render(schema, req.Data.EnsureIDs()), nil
}

// engineFor returns the shared engine, or a copy with a different display width.
func (s *Server) engineFor(displayWidth float64) *preview.Engine {
	if displayWidth == 0 || displayWidth == s.engine.DisplayWidth {
		return s.engine
	}
	e := *s.engine
	e.DisplayWidth = displayWidth
	return &e
}

func (r PreviewRequest) previewRequest() preview.Request {
	return preview.Request{
		TemplateID: r.TemplateID,
		Schema:     r.Schema,
		Data:       *r.Data,
	}
}

func newPreviewResponse(res *preview.Result, markup bool) PreviewResponse {
	resp := PreviewResponse{
		Result:     res,
		Transforms: res.Layout.Transforms(res.Geometry),
	}
	if markup && res.Viewer != nil {
		resp.Markup = res.Viewer.Render()
	}
	return resp
}

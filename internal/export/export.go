// Package export turns the continuous document into print HTML and PDF.
// It is a separate path from the on-screen pagination: the browser's print
// engine breaks pages itself using the injected @page rules.
package export

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"github.com/jonathan/resume-preview/internal/rendering"
)

// A4 paper size in inches, as PrintToPDF expects
const (
	a4WidthInches  = 8.27
	a4HeightInches = 11.69
)

// PrintCSS sizes the sheet to A4 with no browser margins and keeps entries whole
const PrintCSS = `@page{size:A4;margin:0}` +
	`@media print{html,body{-webkit-print-color-adjust:exact;print-color-adjust:exact}}` +
	`#resume-root{margin:0 auto}` +
	`[data-key]{break-inside:avoid}` +
	`h2{break-after:avoid}`

// PrintHTML returns a standalone print-ready page for doc.
func PrintHTML(doc *rendering.Document) (string, error) {
	if doc == nil || doc.Root == nil {
		return "", &Error{Message: "no document to export"}
	}
	q, err := goquery.NewDocumentFromReader(strings.NewReader(doc.Page()))
	if err != nil {
		return "", &Error{Message: "failed to parse rendered page", Cause: err}
	}

	head := q.Find("head")
	head.AppendHtml("<style data-print>" + PrintCSS + "</style>")
	if name := strings.TrimSpace(q.Find("#resume-root header h1").First().Text()); name != "" {
		head.AppendHtml("<title></title>")
		head.Find("title").SetText(name)
	}

	out, err := q.Html()
	if err != nil {
		return "", &Error{Message: "failed to serialize print page", Cause: err}
	}
	return out, nil
}

// PDFOptions configures the headless browser used for printing
type PDFOptions struct {
	Headless  bool
	NoSandbox bool
	Timeout   time.Duration
	Verbose   bool
}

// DefaultPDFOptions returns headless, sandbox-free settings with a 30s timeout.
func DefaultPDFOptions() PDFOptions {
	return PDFOptions{Headless: true, NoSandbox: true, Timeout: 30 * time.Second}
}

// PrintPDF renders printHTML to A4 PDF bytes in headless Chrome.
// Requires Chrome/Chromium to be installed on the system.
func PrintPDF(ctx context.Context, printHTML string, opts PDFOptions) ([]byte, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultPDFOptions().Timeout
	}
	if opts.Verbose {
		log.Printf("[EXPORT] Starting headless browser for PDF (%d bytes of HTML)", len(printHTML))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", opts.Headless),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", opts.NoSandbox),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, opts.Timeout)
	defer cancel()

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, printHTML).Do(ctx)
		}),
		chromedp.Evaluate(`document.fonts.ready.then(function () { return true; })`, nil, awaitPromise),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				WithPaperWidth(a4WidthInches).
				WithPaperHeight(a4HeightInches).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, &Error{Message: "PDF rendering failed", Cause: err}
	}

	if opts.Verbose {
		log.Printf("[EXPORT] Rendered PDF: %d bytes", len(pdf))
	}
	return pdf, nil
}

func awaitPromise(p *runtime.EvaluateParams) *runtime.EvaluateParams {
	return p.WithAwaitPromise(true)
}

// Export renders doc to print HTML and, when pdf is set, to PDF as well.
func Export(ctx context.Context, doc *rendering.Document, pdf bool, opts PDFOptions) (*Result, error) {
	html, err := PrintHTML(doc)
	if err != nil {
		return nil, err
	}
	res := &Result{HTML: html}
	if !pdf {
		return res, nil
	}
	res.PDF, err = PrintPDF(ctx, html, opts)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	return res, nil
}

// Result holds the export artifacts
type Result struct {
	HTML string
	PDF  []byte
}

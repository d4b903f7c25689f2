package measure

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"github.com/jonathan/resume-preview/internal/rendering"
	"github.com/jonathan/resume-preview/internal/types"
)

// heightBinding is the runtime binding the page calls with each layout reading
const heightBinding = "__reportResumeHeight"

// observerScript reports the root's height on every resize and once more after web fonts load
const observerScript = `(function () {
  var root = document.getElementById("resume-root");
  if (!root) { return; }
  var report = function () {
    window.` + heightBinding + `(String(root.getBoundingClientRect().height));
  };
  new ResizeObserver(report).observe(root);
  document.fonts.ready.then(report);
})();`

// ChromeOptions configures the headless browser used for measurement
type ChromeOptions struct {
	Headless  bool
	NoSandbox bool
	Verbose   bool
}

// DefaultChromeOptions returns the flags used in containers and CI.
func DefaultChromeOptions() ChromeOptions {
	return ChromeOptions{Headless: true, NoSandbox: true}
}

// ChromeSurface lays documents out in a hidden headless Chrome tab.
// One browser is shared; every Mount opens its own tab.
// Requires Chrome/Chromium to be installed on the system.
type ChromeSurface struct {
	opts          ChromeOptions
	browserCtx    context.Context
	cancelBrowser context.CancelFunc
	cancelAlloc   context.CancelFunc

	startOnce sync.Once
	startErr  error
}

// NewChromeSurface prepares a browser bound to ctx. The browser starts on first Mount.
func NewChromeSurface(ctx context.Context, opts ChromeOptions) *ChromeSurface {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", opts.Headless),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", opts.NoSandbox),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.WindowSize(int(types.OriginalWidth)+40, int(types.OriginalHeight)),
		)...,
	)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	return &ChromeSurface{
		opts:          opts,
		browserCtx:    browserCtx,
		cancelBrowser: cancelBrowser,
		cancelAlloc:   cancelAlloc,
	}
}

// Close shuts the browser down.
func (c *ChromeSurface) Close() {
	c.cancelBrowser()
	c.cancelAlloc()
}

// Mount loads doc into a fresh tab inside an off-viewport, zero-opacity host
// and streams ResizeObserver readings to onLayout until unmount is called.
func (c *ChromeSurface) Mount(ctx context.Context, doc *rendering.Document, onLayout func(height float64)) (func(), error) {
	c.startOnce.Do(func() {
		if c.opts.Verbose {
			log.Printf("[MEASURE] Starting headless browser")
		}
		c.startErr = chromedp.Run(c.browserCtx)
	})
	if c.startErr != nil {
		return nil, &SurfaceError{Surface: "chrome", Message: "failed to start browser", Cause: c.startErr}
	}

	tabCtx, cancelTab := chromedp.NewContext(c.browserCtx)
	stop := context.AfterFunc(ctx, cancelTab)
	unmount := func() {
		stop()
		cancelTab()
	}

	chromedp.ListenTarget(tabCtx, func(ev interface{}) {
		called, ok := ev.(*runtime.EventBindingCalled)
		if !ok || called.Name != heightBinding {
			return
		}
		h, err := strconv.ParseFloat(called.Payload, 64)
		if err != nil {
			return
		}
		if c.opts.Verbose {
			log.Printf("[MEASURE] layout reading %.2f", h)
		}
		onLayout(h)
	})

	err := chromedp.Run(tabCtx,
		runtime.AddBinding(heightBinding),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, HiddenPage(doc)).Do(ctx)
		}),
		chromedp.Evaluate(observerScript, nil),
	)
	if err != nil {
		unmount()
		return nil, &SurfaceError{Surface: "chrome", Message: "failed to mount document", Cause: err}
	}
	return unmount, nil
}

// HiddenPage wraps the document in a standalone page whose host container
// sits off-viewport at the original width, so it lays out without being seen.
func HiddenPage(doc *rendering.Document) string {
	var sb strings.Builder
	sb.WriteString(`<!DOCTYPE html><html><head><meta charset="utf-8"><style>`)
	sb.WriteString(rendering.BaseCSS)
	fmt.Fprintf(&sb, "#measure-host{position:absolute;left:-10000px;top:0;width:%gpx;opacity:0;pointer-events:none}",
		types.OriginalWidth)
	sb.WriteString(`</style></head><body><div id="measure-host" aria-hidden="true">`)
	sb.WriteString(doc.HTML())
	sb.WriteString(`</div></body></html>`)
	return sb.String()
}

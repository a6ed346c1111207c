package resumake

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/resumake/go-resumake/internal/fileutil"
)

// pdfConverter abstracts HTML to PDF conversion to allow different backends.
type pdfConverter interface {
	ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error)
	Close() error
}

// pdfRenderer abstracts PDF rendering from an HTML file to enable testing
// without a browser.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error)
}

// Compile-time interface checks
var (
	_ pdfConverter = (*rodConverter)(nil)
	_ pdfRenderer  = (*rodRenderer)(nil)
)

// pdfOptions holds options for PDF generation.
type pdfOptions struct {
	PaperSize  string
	AutoHeight bool // size the single page to the measured content height
}

// Content-height measurement: the page reports no signal when layout has
// stabilized, so the height is polled a bounded number of times and falls
// back to the paper height if it never settles.
const (
	heightMeasureAttempts = 3
	heightMeasureDelay    = 400 * time.Millisecond
	pixelsPerInch         = 96.0
)

// rodRenderer implements pdfRenderer using go-rod.
// Rod automatically downloads Chromium on first run if not found.
type rodRenderer struct {
	browser *rod.Browser
	timeout time.Duration
}

// newRodRenderer creates a rodRenderer with the given timeout.
func newRodRenderer(timeout time.Duration) *rodRenderer {
	return &rodRenderer{timeout: timeout}
}

// ensureBrowser lazily connects to the browser.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	// Configure launcher
	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}
	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.browser = rod.New().ControlURL(u)
	if err := r.browser.Connect(); err != nil {
		r.browser = nil
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// Close releases browser resources.
func (r *rodRenderer) Close() error {
	if r.browser != nil {
		err := r.browser.Close()
		r.browser = nil
		return err
	}
	return nil
}

// RenderFromFile opens a local HTML file in headless Chrome and renders it
// to PDF. The load event is the readiness signal; content height is then
// polled with a bounded retry count when auto-height is requested.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error) {
	// Check context before starting
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	// Wait for page to load with timeout from context or default
	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	// Check context after page load
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pdfOpts := buildPDFOptions(opts)

	if opts != nil && opts.AutoHeight {
		if h, ok := r.measureContentHeight(ctx, page); ok {
			pdfOpts.PaperHeight = floatPtr(h / pixelsPerInch)
		}
	}

	reader, err := page.PDF(pdfOpts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}

	return pdfBuf, nil
}

// measureContentHeight polls the body scroll height until two consecutive
// readings agree, up to heightMeasureAttempts. Returns false when the
// height never stabilizes, in which case the caller keeps the default
// paper height.
func (r *rodRenderer) measureContentHeight(ctx context.Context, page *rod.Page) (float64, bool) {
	var last float64
	for attempt := 0; attempt < heightMeasureAttempts; attempt++ {
		if ctx.Err() != nil {
			return 0, false
		}

		v, err := page.Eval(`() => document.body ? document.body.scrollHeight : 0`)
		if err != nil {
			return 0, false
		}

		h := v.Value.Num()
		if attempt > 0 && h == last && h > 0 {
			return h, true
		}
		last = h

		select {
		case <-ctx.Done():
			return 0, false
		case <-time.After(heightMeasureDelay):
		}
	}
	return 0, false
}

// buildPDFOptions constructs proto.PagePrintToPDF for the resolved paper
// size. Backgrounds always print; the display document's @page rules own
// the margins.
func buildPDFOptions(opts *pdfOptions) *proto.PagePrintToPDF {
	size := DefaultPaperSize
	if opts != nil {
		size = opts.PaperSize
	}
	width, height := PaperDimensions(size)

	return &proto.PagePrintToPDF{
		PaperWidth:        floatPtr(width),
		PaperHeight:       floatPtr(height),
		MarginTop:         floatPtr(0),
		MarginBottom:      floatPtr(0),
		MarginLeft:        floatPtr(0),
		MarginRight:       floatPtr(0),
		PrintBackground:   true,
		PreferCSSPageSize: true,
	}
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}

// rodConverter converts HTML to PDF using headless Chrome via go-rod.
type rodConverter struct {
	renderer *rodRenderer
}

// newRodConverter creates a rodConverter with production renderer.
func newRodConverter(timeout time.Duration) *rodConverter {
	return &rodConverter{
		renderer: newRodRenderer(timeout),
	}
}

// ToPDF converts HTML content to PDF bytes using headless Chrome.
func (c *rodConverter) ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error) {
	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return c.renderer.RenderFromFile(ctx, tmpPath, opts)
}

// Close releases browser resources.
func (c *rodConverter) Close() error {
	if c.renderer != nil {
		return c.renderer.Close()
	}
	return nil
}

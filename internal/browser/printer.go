// Package browser prints rendered HTML résumés to PDF with headless Chrome.
package browser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// A4 paper in inches, as Chrome's print API expects
const (
	a4WidthIn  = 8.27
	a4HeightIn = 11.69
)

// DefaultTimeout bounds one print, including Chrome start-up.
const DefaultTimeout = 60 * time.Second

// PrintError wraps a failure to produce a PDF.
type PrintError struct {
	Message string
	Cause   error
}

func (e *PrintError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("print error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("print error: %s", e.Message)
}

func (e *PrintError) Unwrap() error {
	return e.Cause
}

// Options configures a Printer.
type Options struct {
	ChromePath string        // empty falls back to CHROME_PATH, then chromedp's lookup
	Timeout    time.Duration // zero uses DefaultTimeout
	Logger     *zap.Logger
}

// Printer renders HTML to single A4 PDFs. Each call starts its own browser, so a Printer
// is safe for concurrent use.
type Printer struct {
	chromePath string
	timeout    time.Duration
	logger     *zap.Logger
}

// NewPrinter creates a Printer from opts.
func NewPrinter(opts Options) *Printer {
	p := &Printer{
		chromePath: opts.ChromePath,
		timeout:    opts.Timeout,
		logger:     opts.Logger,
	}
	if p.chromePath == "" {
		p.chromePath = os.Getenv("CHROME_PATH")
	}
	if p.timeout <= 0 {
		p.timeout = DefaultTimeout
	}
	if p.logger == nil {
		p.logger = zap.NewNop()
	}
	return p
}

// Timeout returns the per-print timeout.
func (p *Printer) Timeout() time.Duration {
	return p.timeout
}

// ChromePath returns the configured Chrome binary, or "" for chromedp's default lookup.
func (p *Printer) ChromePath() string {
	return p.chromePath
}

func (p *Printer) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if p.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(p.chromePath))
	}
	return opts
}

// PrintPDF loads htmlContent in a fresh headless Chrome and prints it to an A4 PDF with
// zero page margins, leaving margins to the template.
func (p *Printer) PrintPDF(ctx context.Context, htmlContent string) ([]byte, error) {
	if htmlContent == "" {
		return nil, &PrintError{Message: "empty HTML document"}
	}
	if err := ctx.Err(); err != nil {
		return nil, &PrintError{Message: "context done before printing", Cause: err}
	}

	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, p.allocatorOptions()...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	tmpDir, err := os.MkdirTemp("", "resume-print-")
	if err != nil {
		return nil, &PrintError{Message: "failed to create temp directory", Cause: err}
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(htmlContent), 0o644); err != nil {
		return nil, &PrintError{Message: "failed to write HTML", Cause: err}
	}

	var pdf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(a4WidthIn).
				WithPaperHeight(a4HeightIn).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		p.logger.Warn("print failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return nil, &PrintError{Message: "chrome failed to print", Cause: err}
	}

	p.logger.Debug("printed pdf",
		zap.Int("bytes", len(pdf)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return pdf, nil
}

// Package export writes rendered resumes to disk as HTML or PDF.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// DefaultTimeout bounds a single PDF rendering
const DefaultTimeout = 60 * time.Second

// Error represents a failed export
type Error struct {
	Path    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("export %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("export %s: %s", e.Path, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Exporter writes an HTML document to path
type Exporter interface {
	Export(ctx context.Context, html, path string) error
}

// HTMLExporter writes the document verbatim
type HTMLExporter struct{}

// Export implements Exporter
func (HTMLExporter) Export(_ context.Context, html, path string) error {
	return WriteHTML(html, path)
}

// PDFExporter prints the document to PDF with headless Chrome
type PDFExporter struct {
	Options Options
}

// Export implements Exporter
func (e PDFExporter) Export(ctx context.Context, html, path string) error {
	return WritePDF(ctx, html, path, e.Options)
}

// Options configures PDF rendering
type Options struct {
	// ChromePath overrides the browser binary; empty uses chromedp's lookup
	ChromePath string
	Timeout    time.Duration
}

// WriteHTML writes html to path, creating parent directories
func WriteHTML(html, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return &Error{Path: path, Message: "failed to create directory", Cause: err}
	}
	if err := os.WriteFile(path, []byte(html), 0644); err != nil {
		return &Error{Path: path, Message: "failed to write HTML", Cause: err}
	}
	return nil
}

// WritePDF renders html in headless Chrome and writes an A4 PDF to path
func WritePDF(ctx context.Context, html, path string, opts Options) error {
	pdf, err := RenderPDF(ctx, html, opts)
	if err != nil {
		return &Error{Path: path, Message: "failed to render PDF", Cause: err}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return &Error{Path: path, Message: "failed to create directory", Cause: err}
	}
	if err := os.WriteFile(path, pdf, 0644); err != nil {
		return &Error{Path: path, Message: "failed to write PDF", Cause: err}
	}
	return nil
}

// RenderPDF returns the PDF bytes for html
func RenderPDF(ctx context.Context, html string, opts Options) ([]byte, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if opts.ChromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ChromePath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	tmpDir, err := os.MkdirTemp("", "resume-pdf-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0644); err != nil {
		return nil, fmt.Errorf("failed to write temp HTML: %w", err)
	}

	var buf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4 is 8.27 x 11.69 inches
			buf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithMarginTop(0.5).
				WithMarginBottom(0.5).
				WithMarginLeft(0.5).
				WithMarginRight(0.5).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("chrome print failed: %w", err)
	}
	return buf, nil
}

// ForFormat returns the exporter for a format name ("html" or "pdf")
func ForFormat(format string, opts Options) (Exporter, error) {
	switch format {
	case "html":
		return HTMLExporter{}, nil
	case "pdf":
		return PDFExporter{Options: opts}, nil
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

package render

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	cdppage "github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/khrees2412/tradecv/internal/logger"
	"github.com/khrees2412/tradecv/pkg/models"
)

const defaultPDFTimeout = 30 * time.Second

// A4 in inches
const (
	paperWidthIn  = 8.27
	paperHeightIn = 11.69
)

// ErrNoBrowser is returned when headless Chrome cannot be started.
var ErrNoBrowser = errors.New("headless chrome is not available")

// PDFRenderer prints the HTML document to PDF with headless Chrome.
type PDFRenderer struct {
	timeout    time.Duration
	chromePath string
	log        *logger.Logger
}

// NewPDFRenderer returns a renderer that gives up after timeout. An empty
// chromePath lets chromedp find the browser on PATH.
func NewPDFRenderer(timeout time.Duration, chromePath string, log *logger.Logger) *PDFRenderer {
	if timeout <= 0 {
		timeout = defaultPDFTimeout
	}
	if log == nil {
		log = logger.Nop()
	}
	return &PDFRenderer{timeout: timeout, chromePath: chromePath, log: log}
}

func (r *PDFRenderer) Render(ctx context.Context, rec models.ResumeRecord) (*Document, error) {
	html, err := renderHTML(rec)
	if err != nil {
		return nil, &RenderError{Format: FormatPDF, Cause: err}
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	browserCtx, closeBrowser := r.createBrowserContext(ctx)
	defer closeBrowser()

	var pdf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := cdppage.GetFrameTree().Do(ctx)
			if err != nil {
				return fmt.Errorf("failed to get frame tree: %w", err)
			}
			return cdppage.SetDocumentContent(tree.Frame.ID, string(html)).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = cdppage.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paperWidthIn).
				WithPaperHeight(paperHeightIn).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		if errors.Is(err, chromedp.ErrInvalidContext) || strings.Contains(err.Error(), "executable file not found") {
			err = fmt.Errorf("%w: %v", ErrNoBrowser, err)
		}
		return nil, &RenderError{Format: FormatPDF, Cause: err}
	}

	r.log.Debug("printed pdf", "bytes", len(pdf))
	return &Document{
		Format:      FormatPDF,
		Filename:    Filename(rec.Name, "pdf"),
		ContentType: "application/pdf",
		Body:        pdf,
	}, nil
}

// createBrowserContext starts a headless browser bound to parent.
func (r *PDFRenderer) createBrowserContext(parent context.Context) (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
	)
	if r.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.chromePath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(parent, opts...)
	ctx, cancelCtx := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(format string, v ...interface{}) {
		msg := fmt.Sprintf(format, v...)
		if strings.Contains(msg, "could not unmarshal event") {
			return
		}
		r.log.Debug("chromedp", "message", msg)
	}))

	return ctx, func() {
		cancelCtx()
		cancelAlloc()
	}
}

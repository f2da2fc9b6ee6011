// Package render turns a resume record into downloadable documents. Every
// renderer reads a snapshot only and accepts any reachable record,
// including an empty one.
package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/khrees2412/tradecv/internal/logger"
	"github.com/khrees2412/tradecv/pkg/models"
	"golang.org/x/sync/errgroup"
)

// Format names a document type.
type Format string

const (
	FormatHTML Format = "html"
	FormatPDF  Format = "pdf"
	FormatPNG  Format = "png"
	FormatJSON Format = "json"
)

// Formats lists every supported format.
func Formats() []Format {
	return []Format{FormatHTML, FormatPDF, FormatPNG, FormatJSON}
}

// ParseFormat maps a user-supplied name onto a Format.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Document is a rendered artifact ready to be saved.
type Document struct {
	Format      Format
	Filename    string
	ContentType string
	Body        []byte
}

// Renderer produces one document format
type Renderer interface {
	Render(ctx context.Context, rec models.ResumeRecord) (*Document, error)
}

// Options carries what the renderers that need more than a record use.
type Options struct {
	PDFTimeout time.Duration
	ChromePath string
	Logger     *logger.Logger
}

func (o Options) logger() *logger.Logger {
	if o.Logger == nil {
		return logger.Nop()
	}
	return o.Logger
}

// ForFormat returns the renderer for name.
func ForFormat(name string, opts Options) (Renderer, error) {
	f, err := ParseFormat(name)
	if err != nil {
		return nil, err
	}
	switch f {
	case FormatHTML:
		return NewHTMLRenderer(), nil
	case FormatPDF:
		return NewPDFRenderer(opts.PDFTimeout, opts.ChromePath, opts.logger()), nil
	case FormatPNG:
		return NewPNGRenderer(), nil
	default:
		return NewJSONRenderer(), nil
	}
}

// All renders rec in every requested format concurrently. Documents come
// back in the order the formats were given; the first failure cancels the rest.
func All(ctx context.Context, rec models.ResumeRecord, formats []string, opts Options) ([]*Document, error) {
	renderers := make([]Renderer, len(formats))
	for i, name := range formats {
		r, err := ForFormat(name, opts)
		if err != nil {
			return nil, err
		}
		renderers[i] = r
	}

	snapshot := rec.Clone()
	docs := make([]*Document, len(renderers))
	g, gCtx := errgroup.WithContext(ctx)
	for i, r := range renderers {
		i, r := i, r
		g.Go(func() error {
			doc, err := r.Render(gCtx, snapshot.Clone())
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

// Save writes doc into dir and returns the full path.
func Save(dir string, doc *Document) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(dir, doc.Filename)
	if err := os.WriteFile(path, doc.Body, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", doc.Filename, err)
	}
	return path, nil
}

package render

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"

	"github.com/fogleman/gg"
	"github.com/khrees2412/tradecv/pkg/models"
)

// PNGRenderer rasterizes the paginated layout. The document is a zip
// archive holding page-1.png, page-2.png, ...
type PNGRenderer struct{}

func NewPNGRenderer() *PNGRenderer { return &PNGRenderer{} }

func (r *PNGRenderer) Render(ctx context.Context, rec models.ResumeRecord) (*Document, error) {
	faces, err := newFaceSet()
	if err != nil {
		return nil, &RenderError{Format: FormatPNG, Cause: err}
	}
	defer faces.Close()

	pages := layoutView(NewView(rec), faces)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for i, p := range pages {
		if err := ctx.Err(); err != nil {
			return nil, &RenderError{Format: FormatPNG, Cause: err}
		}
		w, err := zw.Create(fmt.Sprintf("page-%d.png", i+1))
		if err != nil {
			return nil, &RenderError{Format: FormatPNG, Cause: err}
		}
		if err := drawPage(p, faces).EncodePNG(w); err != nil {
			return nil, &RenderError{Format: FormatPNG, Cause: fmt.Errorf("failed to encode page %d: %w", i+1, err)}
		}
	}
	if err := zw.Close(); err != nil {
		return nil, &RenderError{Format: FormatPNG, Cause: err}
	}

	return &Document{
		Format:      FormatPNG,
		Filename:    Filename(rec.Name, "zip"),
		ContentType: "application/zip",
		Body:        buf.Bytes(),
	}, nil
}

// PageCount reports how many pages rec lays out to.
func PageCount(rec models.ResumeRecord) (int, error) {
	faces, err := newFaceSet()
	if err != nil {
		return 0, err
	}
	defer faces.Close()
	return len(layoutView(NewView(rec), faces)), nil
}

func drawPage(p *page, faces *faceSet) *gg.Context {
	dc := gg.NewContext(int(pageWidthMM*pxPerMM), int(pageHeightMM*pxPerMM))
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	for _, r := range p.Rules {
		dc.SetColor(r.Color)
		dc.SetLineWidth(r.Width * pxPerMM)
		dc.DrawLine(r.X1*pxPerMM, r.Y*pxPerMM, r.X2*pxPerMM, r.Y*pxPerMM)
		dc.Stroke()
	}
	for _, t := range p.Texts {
		dc.SetFontFace(faces.face(t.Style))
		dc.SetColor(t.Style.Color)
		dc.DrawString(t.Text, t.X*pxPerMM, t.Y*pxPerMM)
	}
	return dc
}

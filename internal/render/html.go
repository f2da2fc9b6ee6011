package render

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"strings"

	"github.com/khrees2412/tradecv/pkg/models"
)

//go:embed templates/resume.html.tmpl
var templateFS embed.FS

var resumeTemplate = template.Must(
	template.New("resume.html.tmpl").
		Funcs(template.FuncMap{"join": strings.Join}).
		ParseFS(templateFS, "templates/resume.html.tmpl"),
)

// HTMLRenderer renders a standalone HTML page with an inline stylesheet.
type HTMLRenderer struct{}

func NewHTMLRenderer() *HTMLRenderer { return &HTMLRenderer{} }

func (r *HTMLRenderer) Render(_ context.Context, rec models.ResumeRecord) (*Document, error) {
	body, err := renderHTML(rec)
	if err != nil {
		return nil, &RenderError{Format: FormatHTML, Cause: err}
	}
	return &Document{
		Format:      FormatHTML,
		Filename:    Filename(rec.Name, "html"),
		ContentType: "text/html; charset=utf-8",
		Body:        body,
	}, nil
}

func renderHTML(rec models.ResumeRecord) ([]byte, error) {
	var buf bytes.Buffer
	if err := resumeTemplate.Execute(&buf, NewView(rec)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

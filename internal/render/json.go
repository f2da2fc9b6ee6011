package render

import (
	"context"
	"encoding/json"

	"github.com/khrees2412/tradecv/pkg/models"
)

// JSONRenderer writes the record itself so it can be rendered again later
// with `tradecv render --from`.
type JSONRenderer struct{}

func NewJSONRenderer() *JSONRenderer { return &JSONRenderer{} }

func (r *JSONRenderer) Render(_ context.Context, rec models.ResumeRecord) (*Document, error) {
	body, err := json.MarshalIndent(rec.Normalize(), "", "  ")
	if err != nil {
		return nil, &RenderError{Format: FormatJSON, Cause: err}
	}
	return &Document{
		Format:      FormatJSON,
		Filename:    Filename(rec.Name, "json"),
		ContentType: "application/json",
		Body:        append(body, '\n'),
	}, nil
}

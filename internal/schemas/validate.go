// Package schemas validates resume records imported from JSON files
// against an embedded JSON Schema before they reach a renderer.
package schemas

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/khrees2412/tradecv/pkg/models"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed resume_record.schema.json
var resumeRecordSchema string

var recordSchemaLoader = gojsonschema.NewStringLoader(resumeRecordSchema)

// ValidationError lists every schema violation found in a document
type ValidationError struct {
	Errors []FieldError
}

// FieldError is one violation
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// SchemaLoadError means the document or schema could not be read at all
type SchemaLoadError struct {
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("schema error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("schema error: %s", e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// RecordSchema returns the embedded resume record schema.
func RecordSchema() string {
	return resumeRecordSchema
}

// ValidateRecord checks a JSON document against the resume record schema.
func ValidateRecord(data []byte) error {
	return validate(recordSchemaLoader, gojsonschema.NewBytesLoader(data))
}

// DecodeRecord validates data and decodes it into a normalized record.
func DecodeRecord(data []byte) (models.ResumeRecord, error) {
	if err := ValidateRecord(data); err != nil {
		return models.ResumeRecord{}, err
	}
	var rec models.ResumeRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return models.ResumeRecord{}, fmt.Errorf("failed to decode record: %w", err)
	}
	return rec.Normalize(), nil
}

func validate(schema, document gojsonschema.JSONLoader) error {
	result, err := gojsonschema.Validate(schema, document)
	if err != nil {
		return &SchemaLoadError{Message: "could not validate document", Cause: err}
	}
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}

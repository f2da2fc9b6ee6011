package render

import (
	"errors"
	"fmt"
)

// ErrUnknownFormat is returned for a format name no renderer handles.
var ErrUnknownFormat = errors.New("unknown document format")

// RenderError wraps a failure inside one format's renderer.
type RenderError struct {
	Format Format
	Cause  error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render %s: %v", e.Format, e.Cause)
	}
	return fmt.Sprintf("render %s failed", e.Format)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

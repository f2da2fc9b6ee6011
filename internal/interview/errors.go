package interview

import "errors"

// Sentinel errors returned by the engine and catalog registry
var (
	ErrBlankAnswer       = errors.New("answer is blank")
	ErrInterviewComplete = errors.New("interview already complete")
	ErrUnknownCatalog    = errors.New("unknown question catalog")
	ErrInvalidQuestion   = errors.New("invalid question binding")
)

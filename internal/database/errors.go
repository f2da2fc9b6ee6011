package database

import "errors"

var (
	ErrNotFound    = errors.New("not found")
	ErrAmbiguousID = errors.New("id prefix matches more than one session")
)

package app

import (
	"errors"

	"github.com/khrees2412/tradecv/internal/database"
)

// Sentinel errors for common application errors
var (
	ErrNotFound        = database.ErrNotFound
	ErrAmbiguousID     = database.ErrAmbiguousID
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotInitialized  = errors.New("application not initialized")
)

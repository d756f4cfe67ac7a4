package storage

import "errors"

// Common storage errors.
var (
	// ErrNotFound is returned when a model is not found.
	ErrNotFound = errors.New("model not found")
)

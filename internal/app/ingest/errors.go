package ingest

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidRequest is matched by every request validation failure.
	ErrInvalidRequest = errors.New("invalid import request")
	// ErrUnavailable means no upstream directory is wired for imports.
	ErrUnavailable = errors.New("athlete import not configured")
)

// ValidationError names the request fields that failed validation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return ErrInvalidRequest.Error() + ": " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidRequest }

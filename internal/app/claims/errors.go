package claims

import (
	"errors"
	"strings"
)

// ErrInvalidRequest is matched by every validation failure.
var ErrInvalidRequest = errors.New("missing required fields")

// ValidationError names the request fields that failed validation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return ErrInvalidRequest.Error() + ": " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidRequest }

package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidPattern = errors.New("invalid pattern")
)

// Error codes carried by SearchError
const (
	CodeInvalidRegex = "INVALID_REGEX"
)

// SearchError represents a pattern validation failure detected before
// any record is touched
type SearchError struct {
	Message string
	Code    string
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *SearchError) Is(target error) bool {
	return target == ErrInvalidPattern
}

// ValidationError represents an input validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

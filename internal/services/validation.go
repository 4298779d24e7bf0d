package services

import (
	"fmt"
	"strings"
)

// ValidationError reports which required fields were missing or malformed.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
}

func newValidationError(missing ...string) *ValidationError {
	return &ValidationError{Missing: missing}
}

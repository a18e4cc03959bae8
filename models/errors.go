package models

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrValidation is wrapped by every error returned from a Validate method.
var ErrValidation = errors.New("validation failed")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func checkLength(field, value string, max int, required bool) error {
	if required && value == "" {
		return invalid("%s is required", field)
	}
	if utf8.RuneCountInString(value) > max {
		return invalid("%s must be %d characters or fewer", field, max)
	}
	return nil
}

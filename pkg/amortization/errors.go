package amortization

import (
	"errors"
	"fmt"
)

// ErrInvalidInput matches every *InvalidInputError via errors.Is.
var ErrInvalidInput = errors.New("invalid loan input")

// InvalidInputError reports a malformed or out-of-range input field. It is the
// only error the engine produces and it is always returned before any schedule
// row is computed.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrInvalidInput) match.
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

func invalidInput(field, format string, args ...interface{}) error {
	return &InvalidInputError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// IsInvalidInput reports whether err is, or wraps, an InvalidInputError.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

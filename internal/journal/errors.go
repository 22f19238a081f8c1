package journal

import "fmt"

// ValidationError marks a rejected user input: a bad form field, an invalid
// enum value, a malformed import payload. It is recoverable by re-input and
// never accompanies a mutation.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func validationErrorf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

package simulation

import (
	"errors"
	"fmt"
)

// ErrNonFinite is returned when a computed figure overflows or is undefined.
var ErrNonFinite = errors.New("result is not a finite number")

// InputError marks a failure caused by the caller's inputs rather than by the
// computation itself. Transports map it to a client error.
type InputError struct {
	Field string
	Err   error
}

func (e *InputError) Error() string {
	if e.Field == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

func inputError(field string, err error) error {
	return &InputError{Field: field, Err: err}
}

// IsInputError reports whether err was caused by invalid inputs.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}

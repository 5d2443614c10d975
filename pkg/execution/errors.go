package execution

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument marks an option value rejected when the options are built.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrIllegalState marks an option value rejected at the setter call.
	ErrIllegalState = errors.New("illegal state")
)

// OptionError describes which option was misconfigured and why.
type OptionError struct {
	Kind   error // ErrInvalidArgument | ErrIllegalState
	Option string
	Value  any
	Reason string
}

func (e *OptionError) Error() string {
	return fmt.Sprintf("%s: %s=%v: %s", e.Kind, e.Option, e.Value, e.Reason)
}

func (e *OptionError) Unwrap() error { return e.Kind }

// KindOf returns a short label for err, suitable for metric labels.
func KindOf(err error) string {
	switch {
	case errors.Is(err, ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, ErrIllegalState):
		return "illegal_state"
	default:
		return "unknown"
	}
}

package body

import (
	"errors"
	"fmt"
)

// Construction errors.
var (
	// ErrInvalidRadius indicates a radius that is not strictly positive and finite.
	ErrInvalidRadius = errors.New("body: radius must be positive")

	// ErrInvalidMass indicates a mass that is not strictly positive and finite.
	ErrInvalidMass = errors.New("body: mass must be positive")

	// ErrInvalidVector indicates a NaN or Inf position or velocity.
	ErrInvalidVector = errors.New("body: position and velocity must be finite")

	// ErrArenaFull indicates an Add past the arena's reserved capacity.
	ErrArenaFull = errors.New("body: arena capacity exhausted")
)

// ValueError wraps a construction error with the offending value.
type ValueError struct {
	Field   string
	Value   float32
	Wrapped error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("%v (%s=%g)", e.Wrapped, e.Field, e.Value)
}

func (e *ValueError) Unwrap() error {
	return e.Wrapped
}

package physics

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParams indicates a negative or non-finite engine parameter.
var ErrInvalidParams = errors.New("physics: invalid engine parameters")

const (
	DefaultGravity  = 0.1
	DefaultFriction = 0.01
)

// Params are the tunable constants of the engine.
type Params struct {
	// Gravity is the acceleration magnitude in units per frame squared.
	Gravity float32 `yaml:"gravity"`
	// Friction is a constant momentum loss per frame. Bodies whose momentum
	// falls below it stop.
	Friction float32 `yaml:"friction"`
}

func DefaultParams() Params {
	return Params{
		Gravity:  DefaultGravity,
		Friction: DefaultFriction,
	}
}

func (p Params) Validate() error {
	if !nonNegative(p.Gravity) {
		return fmt.Errorf("%w: gravity %g", ErrInvalidParams, p.Gravity)
	}
	if !nonNegative(p.Friction) {
		return fmt.Errorf("%w: friction %g", ErrInvalidParams, p.Friction)
	}
	return nil
}

func nonNegative(v float32) bool {
	f := float64(v)
	return f >= 0 && !math.IsInf(f, 0)
}

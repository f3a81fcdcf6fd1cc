package sim

import (
	"fmt"
	"time"
)

const (
	DefaultMaxSteps = 6
	DefaultMaxDelta = 1.0
	DefaultFPS      = 60.0
)

// Stepper splits a frame's elapsed time into bounded physics sub-steps.
type Stepper struct {
	// MaxSteps caps the sub-steps per frame. Time beyond the cap is dropped,
	// slowing the simulation rather than destabilizing it.
	MaxSteps int `yaml:"max_steps"`
	// MaxDelta caps the length of a single sub-step, in frames.
	MaxDelta float32 `yaml:"max_delta"`
}

func DefaultStepper() Stepper {
	return Stepper{MaxSteps: DefaultMaxSteps, MaxDelta: DefaultMaxDelta}
}

func (s Stepper) Validate() error {
	if s.MaxSteps <= 0 {
		return fmt.Errorf("max steps must be positive, got %d", s.MaxSteps)
	}
	if !(s.MaxDelta > 0) {
		return fmt.Errorf("max delta must be positive, got %f", s.MaxDelta)
	}
	return nil
}

// Split calls fn once per sub-step of total and returns the number of
// sub-steps taken and the time left unsimulated.
func (s Stepper) Split(total float32, fn func(dt float32)) (steps int, dropped float32) {
	for total > 0 && steps < s.MaxSteps {
		dt := min(total, s.MaxDelta)
		fn(dt)
		total -= dt
		steps++
	}
	if total < 0 {
		total = 0
	}
	return steps, total
}

// FramesSince converts a wall-clock duration into frame units at fps.
func FramesSince(d time.Duration, fps float32) float32 {
	return float32(d.Seconds()) * fps
}

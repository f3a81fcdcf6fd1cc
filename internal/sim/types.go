package sim

import (
	"github.com/san-kum/ballpit/internal/body"
	"github.com/san-kum/ballpit/internal/physics"
)

// Event is a discrete input event. Events are applied in arrival order before
// the first sub-step of the next frame.
type Event interface {
	apply(s *Simulator)
}

type PointerDown struct{ X, Y float32 }

type PointerMove struct{ X, Y float32 }

type PointerUp struct{}

type SetGravity struct{ Mode physics.Gravity }

func (e PointerDown) apply(s *Simulator) {
	s.interaction.PointerDown(s.world.Bodies, e.X, e.Y)
}

func (e PointerMove) apply(s *Simulator) {
	s.interaction.PointerMove(e.X, e.Y)
}

func (PointerUp) apply(s *Simulator) {
	s.interaction.PointerUp(s.world.Bodies)
}

func (e SetGravity) apply(s *Simulator) {
	s.gravity = e.Mode
}

// InputSource delivers pending events, appending them to dst.
type InputSource interface {
	Poll(dst []Event) []Event
}

// Frame is the read-only view handed to renderers, metrics and observers
// after a frame's update completes. Bodies aliases simulator storage and must
// not be retained past the call.
type Frame struct {
	Index   int
	Time    float64
	Steps   int
	Dropped float32
	Gravity physics.Gravity
	Bodies  []body.Body
	Stats   physics.Stats
}

// Renderer consumes each completed frame.
type Renderer interface {
	Render(f *Frame) error
}

type Metric interface {
	Name() string
	Observe(f *Frame)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(f *Frame)
}

// Config drives a headless run.
type Config struct {
	// Frames is the number of rendered frames to simulate.
	Frames int
	// FrameDelta is the wall-clock length of one frame, in frames.
	FrameDelta float32
}

func DefaultConfig() Config {
	return Config{Frames: 600, FrameDelta: 1}
}

type Result struct {
	Frames  int
	Steps   int
	Dropped float32
	Time    float64
	Stats   physics.Stats
	Metrics map[string]float64
}

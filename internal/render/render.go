// Package render maps ball state to draw colors. A Mode is a closed set of
// color functions that front ends cycle through.
package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/ballpit/internal/body"
)

type Mode int

const (
	// ModeBase draws each ball in its spawn color.
	ModeBase Mode = iota
	// ModeMomentum shades balls in grey by momentum magnitude.
	ModeMomentum
	// ModeVelocity maps velocity components to red and blue, position to green.
	ModeVelocity
	// ModePulsing modulates the spawn color over time and position.
	ModePulsing
	modeCount
)

var modeNames = [...]string{"base", "momentum", "velocity", "pulsing"}

func Modes() []Mode {
	return []Mode{ModeBase, ModeMomentum, ModeVelocity, ModePulsing}
}

func (m Mode) String() string {
	if m < 0 || m >= modeCount {
		return fmt.Sprintf("mode(%d)", int(m))
	}
	return modeNames[m]
}

func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(s)
	if s == "" {
		return ModeBase, nil
	}
	for i, name := range modeNames {
		if name == s {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown renderer mode: %s", s)
}

// Next returns the following mode, wrapping to ModeBase.
func (m Mode) Next() Mode {
	return (m + 1) % modeCount
}

// Context carries the per-frame inputs some modes depend on.
type Context struct {
	Width, Height float32
	// Time is the simulated time in frames.
	Time float64
}

const (
	momentumScale = 0.6
	velocityScale = 0.5
	pulseRate     = 0.05
)

// Color returns the draw color of b under mode m.
func (m Mode) Color(b *body.Body, ctx Context) body.Color {
	switch m {
	case ModeMomentum:
		v := unit(b.Momentum().Length() * momentumScale)
		return body.RGBA(v, v, v, 255)
	case ModeVelocity:
		var g uint8
		if ctx.Width > 0 {
			g = unit(b.Position.X / ctx.Width)
		}
		return body.RGBA(
			unit(b.Velocity.X*velocityScale),
			g,
			unit(-b.Velocity.X*velocityScale+absf(b.Velocity.Y)*velocityScale),
			255,
		)
	case ModePulsing:
		phase := ctx.Time*pulseRate + float64(b.Position.X+b.Position.Y)*0.01
		f := float32(0.5 + 0.5*math.Sin(phase))
		c := b.Color
		return body.RGBA(scale(c.R, f), scale(c.G, f), scale(c.B, f), c.A)
	default:
		return b.Color
	}
}

// unit maps v, clamped to [0, 1], onto [0, 255].
func unit(v float32) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v * 255)
}

func scale(c uint8, f float32) uint8 {
	return uint8(float32(c) * f)
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

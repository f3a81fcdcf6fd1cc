package body

import (
	"math"

	"github.com/san-kum/ballpit/internal/vec"
)

// ID is a stable index into an Arena.
type ID int32

// NoCell marks a body not yet placed in a grid.
const NoCell int32 = -1

// Color is an 8-bit RGBA render tag.
type Color struct {
	R, G, B, A uint8
}

func RGBA(r, g, b, a uint8) Color { return Color{R: r, G: g, B: b, A: a} }

// Body is a plain record for one circular particle.
type Body struct {
	Radius   float32
	Mass     float32
	Position vec.Vec2
	Velocity vec.Vec2
	Color    Color

	// Cell is the owning grid cell index, or NoCell.
	Cell int32
	// Slot is the body's index inside the owning cell's list.
	Slot int32
}

// New validates the physical parameters and returns an unplaced body.
func New(radius, mass float32, position, velocity vec.Vec2, color Color) (Body, error) {
	if !positive(radius) {
		return Body{}, &ValueError{Field: "radius", Value: radius, Wrapped: ErrInvalidRadius}
	}
	if !positive(mass) {
		return Body{}, &ValueError{Field: "mass", Value: mass, Wrapped: ErrInvalidMass}
	}
	if !position.IsFinite() || !velocity.IsFinite() {
		return Body{}, ErrInvalidVector
	}
	return Body{
		Radius:   radius,
		Mass:     mass,
		Position: position,
		Velocity: velocity,
		Color:    color,
		Cell:     NoCell,
		Slot:     -1,
	}, nil
}

// Placed reports whether the body currently belongs to a grid cell.
func (b *Body) Placed() bool { return b.Cell != NoCell }

// Contains reports whether p lies inside the body's circle.
func (b *Body) Contains(p vec.Vec2) bool {
	return p.Sub(b.Position).LengthSq() <= b.Radius*b.Radius
}

// Momentum returns mass * velocity.
func (b *Body) Momentum() vec.Vec2 { return b.Velocity.Scale(b.Mass) }

// KineticEnergy returns 0.5 * m * |v|^2.
func (b *Body) KineticEnergy() float32 {
	return 0.5 * b.Mass * b.Velocity.LengthSq()
}

func positive(v float32) bool {
	f := float64(v)
	return f > 0 && !math.IsInf(f, 0) && !math.IsNaN(f)
}

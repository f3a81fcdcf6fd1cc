package physics

import (
	"github.com/san-kum/ballpit/internal/body"
	"github.com/san-kum/ballpit/internal/vec"
)

// throwSmoothing weights the newest sub-step velocity in the running throw
// estimate.
const throwSmoothing = 0.5

// Interaction is the pointer-drag state. The zero value holds nothing.
type Interaction struct {
	held    bool
	grabbed body.ID
	pointer vec.Vec2
	offset  vec.Vec2
	prev    vec.Vec2
	throw   vec.Vec2
}

func NewInteraction() *Interaction { return &Interaction{} }

// Grabbed returns the held body, if any.
func (in *Interaction) Grabbed() (body.ID, bool) {
	if in == nil || !in.held {
		return -1, false
	}
	return in.grabbed, true
}

// Pointer returns the last pointer position seen.
func (in *Interaction) Pointer() vec.Vec2 { return in.pointer }

// PointerDown grabs the first body, in array order, whose circle contains
// (x, y). The grabbed body stops and follows the pointer at a fixed offset.
func (in *Interaction) PointerDown(bodies []body.Body, x, y float32) bool {
	p := vec.New(x, y)
	in.pointer = p
	for i := range bodies {
		b := &bodies[i]
		if !b.Contains(p) {
			continue
		}
		in.held = true
		in.grabbed = body.ID(i)
		in.offset = p.Sub(b.Position)
		in.prev = b.Position
		in.throw = vec.Vec2{}
		b.Velocity = vec.Vec2{}
		return true
	}
	return false
}

// PointerMove records the pointer position; it is consumed by the next step.
func (in *Interaction) PointerMove(x, y float32) {
	in.pointer = vec.New(x, y)
}

// PointerUp releases the held body with the smoothed drag velocity.
func (in *Interaction) PointerUp(bodies []body.Body) {
	if !in.held {
		return
	}
	if int(in.grabbed) < len(bodies) {
		bodies[in.grabbed].Velocity = in.throw
	}
	in.held = false
	in.grabbed = -1
	in.throw = vec.Vec2{}
}

// drive places the held body under the pointer, kept inside the walls, and
// derives its velocity from how far that target moved since the previous
// sub-step. A pointer resting past a wall therefore yields zero velocity.
func (in *Interaction) drive(b *body.Body, dt, maxX, maxY float32) {
	target := in.pointer.Sub(in.offset)
	target.X = clampAxis(target.X, b.Radius, maxX-b.Radius)
	target.Y = clampAxis(target.Y, b.Radius, maxY-b.Radius)
	if dt > 0 {
		v := target.Sub(in.prev).Scale(1 / dt)
		b.Velocity = v
		in.throw = in.throw.Scale(1 - throwSmoothing).Add(v.Scale(throwSmoothing))
	}
	b.Position = target
	in.prev = target
}

func clampAxis(v, lo, hi float32) float32 {
	if hi < lo {
		return (lo + hi) / 2
	}
	return min(max(v, lo), hi)
}

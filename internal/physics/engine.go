package physics

import (
	"github.com/san-kum/ballpit/internal/body"
	"github.com/san-kum/ballpit/internal/grid"
)

// World is the mutable simulation state a step operates on.
type World struct {
	Bodies []body.Body
	Grid   *grid.Grid
	Width  float32
	Height float32
}

// Stats counts the work done by the most recent step.
type Stats struct {
	Candidates int
	Collisions int
	WallHits   int
	Transfers  int
}

// Add accumulates o into s.
func (s *Stats) Add(o Stats) {
	s.Candidates += o.Candidates
	s.Collisions += o.Collisions
	s.WallHits += o.WallHits
	s.Transfers += o.Transfers
}

type Engine struct {
	params Params
	stats  Stats
}

func NewEngine(p Params) (*Engine, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Engine{params: p}, nil
}

func (e *Engine) Params() Params { return e.params }
func (e *Engine) Stats() Stats   { return e.stats }

// Step advances the world by dt frames. in may be nil.
func (e *Engine) Step(w *World, in *Interaction, mode Gravity, dt float32) {
	e.stats = Stats{}
	bodies := w.Bodies
	grabbed, held := in.Grabbed()
	if held && int(grabbed) >= len(bodies) {
		held = false
	}

	if held {
		in.drive(&bodies[grabbed], dt, w.Width, w.Height)
	}

	dv := mode.Accel(e.params.Gravity).Scale(dt)
	for i := range bodies {
		if held && body.ID(i) == grabbed {
			continue
		}
		b := &bodies[i]
		e.applyFriction(b, dt)
		b.Velocity = b.Velocity.Add(dv)
		b.Position = b.Position.Add(b.Velocity.Scale(dt))
	}

	for i := range bodies {
		if contain(&bodies[i], w.Width, w.Height) {
			e.stats.WallHits++
		}
		if w.Grid.Relocate(bodies, body.ID(i)) {
			e.stats.Transfers++
		}
	}

	w.Grid.ForEachPair(func(a, b body.ID) {
		e.stats.Candidates++
		if Resolve(&bodies[a], &bodies[b], held && a == grabbed, held && b == grabbed) {
			e.stats.Collisions++
		}
	})

	// Separation can carry a body across a cell edge; re-bucket so the grid
	// matches the final positions handed to the renderer.
	for i := range bodies {
		if w.Grid.Relocate(bodies, body.ID(i)) {
			e.stats.Transfers++
		}
	}
}

// applyFriction removes a constant amount of momentum, stopping the body
// once its momentum drops below the friction constant.
func (e *Engine) applyFriction(b *body.Body, dt float32) {
	f := e.params.Friction
	if f == 0 || b.Velocity.IsZero() {
		return
	}
	momentum := b.Momentum()
	if f < momentum.Length() {
		b.Velocity = b.Velocity.Sub(momentum.Normalize().Scale(dt * f / b.Mass))
		return
	}
	b.Velocity.X, b.Velocity.Y = 0, 0
}

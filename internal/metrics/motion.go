package metrics

import (
	"math"

	"github.com/san-kum/ballpit/internal/sim"
)

// Momentum reports the magnitude of total linear momentum in the last frame.
type Momentum struct {
	name  string
	value float64
}

func NewMomentum() *Momentum { return &Momentum{name: "momentum"} }

func (m *Momentum) Name() string { return m.name }

func (m *Momentum) Observe(f *sim.Frame) {
	var px, py float64
	for i := range f.Bodies {
		p := f.Bodies[i].Momentum()
		px += float64(p.X)
		py += float64(p.Y)
	}
	m.value = math.Hypot(px, py)
}

func (m *Momentum) Value() float64 { return m.value }
func (m *Momentum) Reset()         { m.value = 0 }

// MaxSpeed reports the highest body speed seen over the run.
type MaxSpeed struct {
	name string
	max  float64
}

func NewMaxSpeed() *MaxSpeed { return &MaxSpeed{name: "max_speed"} }

func (m *MaxSpeed) Name() string { return m.name }

func (m *MaxSpeed) Observe(f *sim.Frame) {
	for i := range f.Bodies {
		if s := float64(f.Bodies[i].Velocity.Length()); s > m.max {
			m.max = s
		}
	}
}

func (m *MaxSpeed) Value() float64 { return m.max }
func (m *MaxSpeed) Reset()         { m.max = 0 }

// CollisionRate reports resolved collisions per frame.
type CollisionRate struct {
	name       string
	collisions int
	frames     int
}

func NewCollisionRate() *CollisionRate { return &CollisionRate{name: "collisions_per_frame"} }

func (c *CollisionRate) Name() string { return c.name }

func (c *CollisionRate) Observe(f *sim.Frame) {
	c.collisions += f.Stats.Collisions
	c.frames++
}

func (c *CollisionRate) Value() float64 {
	if c.frames == 0 {
		return 0
	}
	return float64(c.collisions) / float64(c.frames)
}

func (c *CollisionRate) Reset() {
	c.collisions = 0
	c.frames = 0
}

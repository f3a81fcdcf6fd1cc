package metrics

import (
	"github.com/san-kum/ballpit/internal/sim"
)

// Stability is the fraction of frames in which no body moved farther than
// threshold in one frame. Collision detection is discrete, so a body
// travelling more than a cell per frame can tunnel; threshold is normally
// the grid cell size.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(f *sim.Frame) {
	s.samples++
	limit := float32(s.threshold * s.threshold)
	for i := range f.Bodies {
		if f.Bodies[i].Velocity.LengthSq() > limit {
			s.violations++
			break
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}

// Budget is the fraction of frames that hit the sub-step cap and dropped
// simulated time.
type Budget struct {
	name    string
	overrun int
	samples int
}

func NewBudget() *Budget {
	return &Budget{name: "budget"}
}

func (b *Budget) Name() string {
	return b.name
}

func (b *Budget) Observe(f *sim.Frame) {
	b.samples++
	if f.Dropped > 0 {
		b.overrun++
	}
}

func (b *Budget) Value() float64 {
	if b.samples == 0 {
		return 0
	}
	return float64(b.overrun) / float64(b.samples)
}

func (b *Budget) Reset() {
	b.overrun = 0
	b.samples = 0
}

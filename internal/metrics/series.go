package metrics

import "github.com/san-kum/ballpit/internal/sim"

// Series is a sim.Observer that samples one value per frame, keeping at most
// limit samples (the oldest are discarded).
type Series struct {
	sample func(f *sim.Frame) float64
	limit  int
	values []float64
}

func NewSeries(limit int, sample func(f *sim.Frame) float64) *Series {
	return &Series{sample: sample, limit: limit, values: make([]float64, 0, limit)}
}

func (s *Series) OnFrame(f *sim.Frame) {
	if s.limit > 0 && len(s.values) == s.limit {
		copy(s.values, s.values[1:])
		s.values = s.values[:len(s.values)-1]
	}
	s.values = append(s.values, s.sample(f))
}

// Values returns the retained samples, oldest first.
func (s *Series) Values() []float64 { return s.values }

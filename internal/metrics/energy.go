package metrics

import (
	"math"

	"github.com/san-kum/ballpit/internal/sim"
)

// KineticEnergy reports the mean total kinetic energy over observed frames.
type KineticEnergy struct {
	name    string
	last    float64
	total   float64
	samples int
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (e *KineticEnergy) Name() string { return e.name }

func (e *KineticEnergy) Observe(f *sim.Frame) {
	e.last = TotalKineticEnergy(f)
	e.total += e.last
	e.samples++
}

func (e *KineticEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

// Last returns the most recent frame's total.
func (e *KineticEnergy) Last() float64 { return e.last }

func (e *KineticEnergy) Reset() {
	e.last = 0
	e.total = 0
	e.samples = 0
}

// EnergyDrift tracks the largest relative deviation of total kinetic energy
// from the first observed frame. With gravity off and friction zero, only
// wall clamps and contact pushes move it.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(f *sim.Frame) {
	energy := TotalKineticEnergy(f)
	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}

// TotalKineticEnergy sums 0.5*m*|v|^2 over the frame, in float64.
func TotalKineticEnergy(f *sim.Frame) float64 {
	sum := 0.0
	for i := range f.Bodies {
		sum += float64(f.Bodies[i].KineticEnergy())
	}
	return sum
}

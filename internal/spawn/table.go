// Package spawn builds the initial ball population from a weighted table of
// ball types.
package spawn

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/san-kum/ballpit/internal/body"
)

var ErrInvalidTable = errors.New("spawn: invalid spawn table")

// Type describes one kind of ball that may be spawned.
type Type struct {
	Color    body.Color `yaml:"color"`
	Radius   float32    `yaml:"radius"`
	Mass     float32    `yaml:"mass"`
	MinSpeed float32    `yaml:"min_speed"`
	MaxSpeed float32    `yaml:"max_speed"`
	Weight   float32    `yaml:"weight"`
}

func (t Type) validate() error {
	switch {
	case !(t.Radius > 0) || isInf(t.Radius):
		return fmt.Errorf("radius %g", t.Radius)
	case !(t.Mass > 0) || isInf(t.Mass):
		return fmt.Errorf("mass %g", t.Mass)
	case !(t.Weight > 0) || isInf(t.Weight):
		return fmt.Errorf("weight %g", t.Weight)
	case !(t.MinSpeed >= 0) || !(t.MaxSpeed >= t.MinSpeed) || isInf(t.MaxSpeed):
		return fmt.Errorf("speed range [%g, %g]", t.MinSpeed, t.MaxSpeed)
	}
	return nil
}

// Speed draws a speed uniformly from the type's range.
func (t Type) Speed(rng *rand.Rand) float32 {
	return t.MinSpeed + rng.Float32()*(t.MaxSpeed-t.MinSpeed)
}

// DefaultTypes returns the six hand-tuned ball types: two fast light kinds and
// four heavier kinds spawned at rest.
func DefaultTypes() []Type {
	return []Type{
		{Color: body.RGBA(255, 255, 255, 255), Radius: 2, Mass: 1, MinSpeed: 0.1, MaxSpeed: 7, Weight: 1},
		{Color: body.RGBA(1, 254, 145, 255), Radius: 2, Mass: 2, MinSpeed: 0.1, MaxSpeed: 3, Weight: 1},
		{Color: body.RGBA(177, 0, 254, 255), Radius: 3, Mass: 4, Weight: 1},
		{Color: body.RGBA(254, 0, 0, 255), Radius: 3, Mass: 4, Weight: 1},
		{Color: body.RGBA(0, 255, 255, 255), Radius: 3, Mass: 4, Weight: 1},
		{Color: body.RGBA(255, 255, 0, 255), Radius: 3, Mass: 4, Weight: 1},
	}
}

// RandomTypes generates n resting types with radius and mass drawn from
// [2, 6) and a random opaque color.
func RandomTypes(rng *rand.Rand, n int) []Type {
	types := make([]Type, n)
	for i := range types {
		types[i] = Type{
			Color:  body.RGBA(uint8(rng.Intn(256)), uint8(rng.Intn(256)), uint8(rng.Intn(256)), 255),
			Radius: 2 + rng.Float32()*4,
			Mass:   2 + rng.Float32()*4,
			Weight: 1,
		}
	}
	return types
}

// Table samples types in proportion to their weights.
type Table struct {
	types      []Type
	cumulative []float32
}

func NewTable(types []Type) (*Table, error) {
	if len(types) == 0 {
		return nil, fmt.Errorf("%w: no types", ErrInvalidTable)
	}

	t := &Table{
		types:      types,
		cumulative: make([]float32, len(types)),
	}
	var total float32
	for i, typ := range types {
		if err := typ.validate(); err != nil {
			return nil, fmt.Errorf("%w: type %d: %v", ErrInvalidTable, i, err)
		}
		total += typ.Weight
		t.cumulative[i] = total
	}
	return t, nil
}

func (t *Table) Len() int      { return len(t.types) }
func (t *Table) Types() []Type { return t.types }

// Total is the sum of all weights.
func (t *Table) Total() float32 { return t.cumulative[len(t.cumulative)-1] }

// Pick returns the index of the type owning u, where u is in [0, Total()).
func (t *Table) Pick(u float32) int {
	i := sort.Search(len(t.cumulative), func(i int) bool { return t.cumulative[i] > u })
	if i == len(t.cumulative) {
		i--
	}
	return i
}

func (t *Table) Sample(rng *rand.Rand) *Type {
	return &t.types[t.Pick(rng.Float32()*t.Total())]
}

func isInf(v float32) bool {
	return math.IsInf(float64(v), 0) || math.IsNaN(float64(v))
}

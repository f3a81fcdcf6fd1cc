package spawn

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/aquilax/go-perlin"

	"github.com/san-kum/ballpit/internal/body"
	"github.com/san-kum/ballpit/internal/grid"
	"github.com/san-kum/ballpit/internal/vec"
)

// Layout selects how spawn positions are distributed over the bounds.
type Layout int

const (
	LayoutUniform Layout = iota
	// LayoutNoise clusters balls where a 2D perlin field is high.
	LayoutNoise
)

func (l Layout) String() string {
	switch l {
	case LayoutUniform:
		return "uniform"
	case LayoutNoise:
		return "noise"
	default:
		return fmt.Sprintf("layout(%d)", int(l))
	}
}

func ParseLayout(s string) (Layout, error) {
	switch strings.ToLower(s) {
	case "", "uniform":
		return LayoutUniform, nil
	case "noise", "perlin":
		return LayoutNoise, nil
	default:
		return 0, fmt.Errorf("unknown layout: %s", s)
	}
}

const (
	noiseAlpha    = 2.0
	noiseBeta     = 2.0
	noiseOctaves  = 3
	noiseScale    = 1.0 / 256
	noiseAttempts = 16
)

// Options control a population run.
type Options struct {
	Count  int
	Width  float32
	Height float32
	Layout Layout
	Seed   int64
}

// Populate spawns opts.Count balls sampled from table into arena and places
// each one in g. The same seed always yields the same population.
func Populate(arena *body.Arena, g *grid.Grid, table *Table, opts Options) error {
	if opts.Count < 0 || opts.Count > arena.Cap()-arena.Len() {
		return fmt.Errorf("spawn: count %d exceeds free arena capacity %d", opts.Count, arena.Cap()-arena.Len())
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	pos := uniform(rng, opts.Width, opts.Height)
	if opts.Layout == LayoutNoise {
		pos = clustered(rng, opts.Width, opts.Height, perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, opts.Seed))
	}

	g.Reserve(arena.Len() + opts.Count)
	for i := 0; i < opts.Count; i++ {
		typ := table.Sample(rng)
		p := pos()
		dir := Direction(rng.Float32()*2-1, rng.Float32()*2-1)

		b, err := body.New(typ.Radius, typ.Mass, p, dir.Scale(typ.Speed(rng)), typ.Color)
		if err != nil {
			return fmt.Errorf("spawn ball %d: %w", i, err)
		}
		id, err := arena.Add(b)
		if err != nil {
			return fmt.Errorf("spawn ball %d: %w", i, err)
		}
		g.Add(arena.Bodies(), id)
	}
	return nil
}

// Direction normalizes (x, y), falling back to +x for the zero vector.
func Direction(x, y float32) vec.Vec2 {
	d := vec.New(x, y)
	if d.IsZero() {
		return vec.New(1, 0)
	}
	return d.Normalize()
}

func uniform(rng *rand.Rand, w, h float32) func() vec.Vec2 {
	return func() vec.Vec2 {
		return vec.New(rng.Float32()*w, rng.Float32()*h)
	}
}

// clustered rejection-samples positions with acceptance proportional to the
// noise value, giving up after noiseAttempts tries.
func clustered(rng *rand.Rand, w, h float32, noise *perlin.Perlin) func() vec.Vec2 {
	next := uniform(rng, w, h)
	return func() vec.Vec2 {
		p := next()
		for i := 0; i < noiseAttempts; i++ {
			n := noise.Noise2D(float64(p.X)*noiseScale, float64(p.Y)*noiseScale)
			if rng.Float64() < n+0.5 {
				break
			}
			p = next()
		}
		return p
	}
}

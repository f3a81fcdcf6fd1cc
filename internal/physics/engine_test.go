package physics_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ballpit/internal/body"
	"github.com/san-kum/ballpit/internal/grid"
	"github.com/san-kum/ballpit/internal/physics"
	"github.com/san-kum/ballpit/internal/vec"
)

const cellSize = 12

type bodySpec struct {
	radius, mass float32
	pos, vel     vec.Vec2
}

func newWorld(width, height float32, specs ...bodySpec) *physics.World {
	g, err := grid.New(width, height, cellSize)
	Expect(err).NotTo(HaveOccurred())

	bodies := make([]body.Body, 0, len(specs))
	for _, s := range specs {
		b, err := body.New(s.radius, s.mass, s.pos, s.vel, body.Color{})
		Expect(err).NotTo(HaveOccurred())
		bodies = append(bodies, b)
	}
	for i := range bodies {
		g.Add(bodies, body.ID(i))
	}
	return &physics.World{Bodies: bodies, Grid: g, Width: width, Height: height}
}

func frictionless() *physics.Engine {
	e, err := physics.NewEngine(physics.Params{Gravity: physics.DefaultGravity})
	Expect(err).NotTo(HaveOccurred())
	return e
}

var _ = Describe("Engine", func() {
	Describe("head-on collision of equal masses", func() {
		It("swaps the velocities", func() {
			const eps = 0.01
			w := newWorld(200, 200,
				bodySpec{1, 3, vec.New(50, 50), vec.New(2, 0)},
				bodySpec{1, 3, vec.New(50+2+eps, 50), vec.New(-2, 0)},
			)
			e := frictionless()

			e.Step(w, nil, physics.GravityNone, 0.01)

			Expect(e.Stats().Collisions).To(Equal(1))
			Expect(w.Bodies[0].Velocity.X).To(BeNumerically("~", -2, 1e-4))
			Expect(w.Bodies[1].Velocity.X).To(BeNumerically("~", 2, 1e-4))
			Expect(w.Bodies[0].Velocity.Y).To(BeZero())
			Expect(w.Bodies[1].Velocity.Y).To(BeZero())
		})
	})

	Describe("three bodies in one cell", func() {
		It("tests every same-cell pair once and resolves only the overlapping one", func() {
			w := newWorld(120, 120,
				bodySpec{1, 1, vec.New(2, 2), vec.Vec2{}},
				bodySpec{1, 1, vec.New(3.5, 2), vec.Vec2{}},
				bodySpec{1, 1, vec.New(9, 9), vec.Vec2{}},
			)
			Expect(w.Bodies[0].Cell).To(Equal(w.Bodies[2].Cell))

			type pair struct{ a, b body.ID }
			var candidates []pair
			w.Grid.ForEachPair(func(a, b body.ID) { candidates = append(candidates, pair{a, b}) })
			Expect(candidates).To(ConsistOf(pair{0, 1}, pair{0, 2}, pair{1, 2}))

			var colliding []pair
			for _, p := range candidates {
				b1, b2 := w.Bodies[p.a], w.Bodies[p.b]
				if physics.Resolve(&b1, &b2, false, false) {
					colliding = append(colliding, p)
				}
			}
			Expect(colliding).To(ConsistOf(pair{0, 1}))

			e := frictionless()
			e.Step(w, nil, physics.GravityNone, 1)
			Expect(e.Stats().Candidates).To(Equal(3))
			Expect(e.Stats().Collisions).To(Equal(1))
		})
	})

	Describe("boundary containment", func() {
		It("leaves an in-bounds body at rest untouched", func() {
			w := newWorld(100, 100, bodySpec{2, 1, vec.New(2, 50), vec.Vec2{}})
			e := frictionless()

			e.Step(w, nil, physics.GravityNone, 1)

			Expect(w.Bodies[0].Position).To(Equal(vec.New(2, 50)))
			Expect(w.Bodies[0].Velocity).To(Equal(vec.Vec2{}))
			Expect(e.Stats().WallHits).To(BeZero())
		})

		It("clamps a body integrated past maxX and flips only vx", func() {
			w := newWorld(100, 100, bodySpec{2, 1, vec.New(97, 50), vec.New(4, 0.5)})
			e := frictionless()

			e.Step(w, nil, physics.GravityNone, 1)

			Expect(w.Bodies[0].Position.X).To(Equal(float32(98)))
			Expect(w.Bodies[0].Velocity.X).To(Equal(float32(-4)))
			Expect(w.Bodies[0].Position.Y).To(BeNumerically("~", 50.5, 1e-5))
			Expect(w.Bodies[0].Velocity.Y).To(Equal(float32(0.5)))
		})
	})

	Describe("gravity", func() {
		DescribeTable("accelerates free bodies along the selected direction",
			func(mode physics.Gravity, want vec.Vec2) {
				w := newWorld(200, 200, bodySpec{1, 1, vec.New(100, 100), vec.Vec2{}})
				e := frictionless()

				e.Step(w, nil, mode, 1)

				Expect(w.Bodies[0].Velocity.X).To(BeNumerically("~", want.X, 1e-6))
				Expect(w.Bodies[0].Velocity.Y).To(BeNumerically("~", want.Y, 1e-6))
			},
			Entry("none", physics.GravityNone, vec.Vec2{}),
			Entry("left", physics.GravityLeft, vec.New(-0.1, 0)),
			Entry("right", physics.GravityRight, vec.New(0.1, 0)),
			Entry("up", physics.GravityUp, vec.New(0, 0.1)),
			Entry("down", physics.GravityDown, vec.New(0, -0.1)),
		)
	})

	Describe("dragging a body", func() {
		DescribeTable("moves it exactly with the pointer in every gravity mode",
			func(mode physics.Gravity) {
				w := newWorld(300, 300,
					bodySpec{5, 2, vec.New(100, 100), vec.New(1, 1)},
					bodySpec{3, 1, vec.New(200, 200), vec.Vec2{}},
				)
				e := frictionless()
				in := physics.NewInteraction()

				Expect(in.PointerDown(w.Bodies, 102, 99)).To(BeTrue())
				id, held := in.Grabbed()
				Expect(held).To(BeTrue())
				Expect(id).To(Equal(body.ID(0)))

				start := w.Bodies[0].Position
				in.PointerMove(102+15, 99-7)
				for i := 0; i < 3; i++ {
					e.Step(w, in, mode, 1)
				}

				Expect(w.Bodies[0].Position.X).To(BeNumerically("~", start.X+15, 1e-4))
				Expect(w.Bodies[0].Position.Y).To(BeNumerically("~", start.Y-7, 1e-4))
			},
			Entry("none", physics.GravityNone),
			Entry("left", physics.GravityLeft),
			Entry("right", physics.GravityRight),
			Entry("up", physics.GravityUp),
			Entry("down", physics.GravityDown),
		)

		It("pushes other bodies aside without being displaced", func() {
			w := newWorld(300, 300,
				bodySpec{5, 1, vec.New(100, 100), vec.Vec2{}},
				bodySpec{5, 100, vec.New(118, 100), vec.Vec2{}},
			)
			e := frictionless()
			in := physics.NewInteraction()
			Expect(in.PointerDown(w.Bodies, 100, 100)).To(BeTrue())

			in.PointerMove(110, 100)
			e.Step(w, in, physics.GravityNone, 1)

			Expect(w.Bodies[0].Position).To(Equal(vec.New(110, 100)))
			Expect(w.Bodies[1].Position.X).To(BeNumerically(">=", 120-1e-4))
		})

		It("throws the body on release", func() {
			w := newWorld(300, 300, bodySpec{5, 1, vec.New(100, 100), vec.Vec2{}})
			e := frictionless()
			in := physics.NewInteraction()
			Expect(in.PointerDown(w.Bodies, 100, 100)).To(BeTrue())

			for i := 1; i <= 4; i++ {
				in.PointerMove(100+float32(i)*2, 100)
				e.Step(w, in, physics.GravityNone, 1)
			}
			in.PointerUp(w.Bodies)

			_, held := in.Grabbed()
			Expect(held).To(BeFalse())
			Expect(w.Bodies[0].Velocity.X).To(BeNumerically(">", 1))
			Expect(w.Bodies[0].Velocity.Y).To(BeNumerically("~", 0, 1e-6))
		})

		It("stays still against a wall while the pointer rests past it", func() {
			w := newWorld(100, 100,
				bodySpec{5, 1, vec.New(50, 50), vec.Vec2{}},
				bodySpec{5, 1, vec.New(85, 20), vec.Vec2{}},
			)
			e := frictionless()
			in := physics.NewInteraction()
			Expect(in.PointerDown(w.Bodies, 50, 50)).To(BeTrue())

			in.PointerMove(130, 50)
			e.Step(w, in, physics.GravityNone, 1)
			Expect(in.Pointer()).To(Equal(vec.New(130, 50)))
			Expect(w.Bodies[0].Position).To(Equal(vec.New(95, 50)))

			for i := 0; i < 10; i++ {
				e.Step(w, in, physics.GravityNone, 1)
				Expect(w.Bodies[0].Position).To(Equal(vec.New(95, 50)))
				Expect(w.Bodies[0].Velocity).To(Equal(vec.Vec2{}))
			}

			in.PointerUp(w.Bodies)
			Expect(w.Bodies[0].Velocity.Length()).To(BeNumerically("<", 0.05))
			Expect(w.Bodies[1].Velocity).To(Equal(vec.Vec2{}))
		})

		It("grabs nothing when the pointer misses", func() {
			w := newWorld(300, 300, bodySpec{5, 1, vec.New(100, 100), vec.Vec2{}})
			in := physics.NewInteraction()

			Expect(in.PointerDown(w.Bodies, 10, 10)).To(BeFalse())
			_, held := in.Grabbed()
			Expect(held).To(BeFalse())
		})

		It("picks the first body in array order", func() {
			w := newWorld(300, 300,
				bodySpec{5, 1, vec.New(100, 100), vec.Vec2{}},
				bodySpec{5, 1, vec.New(103, 100), vec.Vec2{}},
			)
			in := physics.NewInteraction()

			Expect(in.PointerDown(w.Bodies, 102, 100)).To(BeTrue())
			id, _ := in.Grabbed()
			Expect(id).To(Equal(body.ID(0)))
		})
	})

	Describe("grid maintenance", func() {
		It("keeps every body in exactly one correct cell over many steps", func() {
			specs := make([]bodySpec, 0, 400)
			for i := 0; i < 400; i++ {
				x := float32(10 + (i%20)*14)
				y := float32(10 + (i/20)*9)
				vx := float32(i%7) - 3
				vy := float32(i%5) - 2
				specs = append(specs, bodySpec{3, float32(1 + i%4), vec.New(x, y), vec.New(vx, vy)})
			}
			w := newWorld(300, 200, specs...)
			e, err := physics.NewEngine(physics.DefaultParams())
			Expect(err).NotTo(HaveOccurred())

			for i := 0; i < 120; i++ {
				e.Step(w, nil, physics.Gravity(i/24), 0.5)
				Expect(w.Grid.Verify(w.Bodies)).To(Succeed())
			}

			// Containment runs before the narrow phase, so a contact push may
			// leave a body slightly past a wall until the next step.
			for _, b := range w.Bodies {
				Expect(b.Position.IsFinite()).To(BeTrue())
				Expect(b.Position.X).To(BeNumerically(">=", -2*b.Radius))
				Expect(b.Position.X).To(BeNumerically("<=", 300+2*b.Radius))
				Expect(b.Position.Y).To(BeNumerically(">=", -2*b.Radius))
				Expect(b.Position.Y).To(BeNumerically("<=", 200+2*b.Radius))
			}
		})
	})
})

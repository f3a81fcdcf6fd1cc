package physics

import (
	"math"
	"testing"

	"github.com/san-kum/ballpit/internal/body"
	"github.com/san-kum/ballpit/internal/vec"
)

const tol = 1e-4

func mustBody(t *testing.T, radius, mass float32, pos, vel vec.Vec2) body.Body {
	t.Helper()
	b, err := body.New(radius, mass, pos, vel, body.Color{})
	if err != nil {
		t.Fatalf("body: %v", err)
	}
	return b
}

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) <= tol
}

func TestResolveConservesNormalMomentumAndEnergy(t *testing.T) {
	tests := []struct {
		name   string
		m1, m2 float32
		p2     vec.Vec2
		v1, v2 vec.Vec2
	}{
		{"equal head-on", 1, 1, vec.New(1.5, 0), vec.New(1, 0), vec.New(-1, 0)},
		{"heavy vs light", 4, 1, vec.New(1.2, 0.8), vec.New(2, 1), vec.New(-0.5, 0)},
		{"light vs resting heavy", 0.5, 6, vec.New(0, 1.9), vec.New(0, 3), vec.Vec2{}},
		{"oblique", 2, 3, vec.New(-1, 1), vec.New(-1, 2), vec.New(1, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b1 := mustBody(t, 1, tt.m1, vec.Vec2{}, tt.v1)
			b2 := mustBody(t, 1, tt.m2, tt.p2, tt.v2)
			n := tt.p2.Normalize()

			pBefore := tt.m1*b1.Velocity.Dot(n) + tt.m2*b2.Velocity.Dot(n)
			keBefore := b1.KineticEnergy() + b2.KineticEnergy()
			t1Before := b1.Velocity.Sub(n.Scale(b1.Velocity.Dot(n)))

			if !Resolve(&b1, &b2, false, false) {
				t.Fatal("expected collision")
			}

			pAfter := tt.m1*b1.Velocity.Dot(n) + tt.m2*b2.Velocity.Dot(n)
			keAfter := b1.KineticEnergy() + b2.KineticEnergy()
			t1After := b1.Velocity.Sub(n.Scale(b1.Velocity.Dot(n)))

			if !near(pBefore, pAfter) {
				t.Errorf("normal momentum %f -> %f", pBefore, pAfter)
			}
			if !near(keBefore, keAfter) {
				t.Errorf("kinetic energy %f -> %f", keBefore, keAfter)
			}
			if !near(t1Before.X, t1After.X) || !near(t1Before.Y, t1After.Y) {
				t.Errorf("tangential velocity changed %v -> %v", t1Before, t1After)
			}
		})
	}
}

func TestResolveNonPenetration(t *testing.T) {
	b1 := mustBody(t, 2, 3, vec.New(10, 10), vec.Vec2{})
	b2 := mustBody(t, 1, 1, vec.New(11, 11), vec.Vec2{})

	before1, before2 := b1.Position, b2.Position
	if !Resolve(&b1, &b2, false, false) {
		t.Fatal("expected collision")
	}

	d := b2.Position.Sub(b1.Position).Length()
	if d < 3-tol {
		t.Errorf("bodies still overlap: distance %f", d)
	}

	// The heavier body moves a third as far as the lighter one.
	moved1 := b1.Position.Sub(before1).Length()
	moved2 := b2.Position.Sub(before2).Length()
	if !near(moved1*3, moved2) {
		t.Errorf("expected mass-weighted separation, moved %f and %f", moved1, moved2)
	}

	// Weighted contact point is preserved.
	c0 := before1.Scale(3).Add(before2).Scale(0.25)
	c1 := b1.Position.Scale(3).Add(b2.Position).Scale(0.25)
	if !near(c0.X, c1.X) || !near(c0.Y, c1.Y) {
		t.Errorf("centre of mass moved %v -> %v", c0, c1)
	}
}

func TestResolveNoOverlap(t *testing.T) {
	b1 := mustBody(t, 1, 1, vec.Vec2{}, vec.New(1, 0))
	b2 := mustBody(t, 1, 1, vec.New(2, 0), vec.New(-1, 0))

	if Resolve(&b1, &b2, false, false) {
		t.Error("touching bodies should not collide")
	}
	if b1.Velocity != vec.New(1, 0) || b2.Velocity != vec.New(-1, 0) {
		t.Error("velocities changed without collision")
	}
}

func TestResolveCoincidentCenters(t *testing.T) {
	b1 := mustBody(t, 1, 1, vec.New(5, 5), vec.Vec2{})
	b2 := mustBody(t, 1, 1, vec.New(5, 5), vec.Vec2{})

	if !Resolve(&b1, &b2, false, false) {
		t.Fatal("expected collision")
	}
	if !b1.Position.IsFinite() || !b2.Position.IsFinite() {
		t.Fatal("non-finite position after coincident resolve")
	}
	if !near(b2.Position.X-b1.Position.X, 2) || b1.Position.Y != b2.Position.Y {
		t.Errorf("expected separation along x, got %v and %v", b1.Position, b2.Position)
	}
}

func TestResolveSeparatingPairKeepsVelocity(t *testing.T) {
	b1 := mustBody(t, 1, 1, vec.Vec2{}, vec.New(-1, 0))
	b2 := mustBody(t, 1, 1, vec.New(1, 0), vec.New(1, 0))

	if !Resolve(&b1, &b2, false, false) {
		t.Fatal("expected overlap")
	}
	if b1.Velocity != vec.New(-1, 0) || b2.Velocity != vec.New(1, 0) {
		t.Errorf("separating pair got an impulse: %v %v", b1.Velocity, b2.Velocity)
	}
}

func TestResolvePinned(t *testing.T) {
	pinned := mustBody(t, 1, 1, vec.Vec2{}, vec.Vec2{})
	free := mustBody(t, 1, 1, vec.New(1.5, 0), vec.New(-2, 0))

	if !Resolve(&pinned, &free, true, false) {
		t.Fatal("expected collision")
	}
	if pinned.Position != (vec.Vec2{}) || pinned.Velocity != (vec.Vec2{}) {
		t.Errorf("pinned body moved: %v %v", pinned.Position, pinned.Velocity)
	}
	if !near(free.Position.X, 2) {
		t.Errorf("free body not pushed clear: %v", free.Position)
	}
	if !near(free.Velocity.X, 2) {
		t.Errorf("free body should bounce off the pinned one, got %v", free.Velocity)
	}
}

func TestContain(t *testing.T) {
	const maxX, maxY = 100, 50

	tests := []struct {
		name    string
		pos     vec.Vec2
		vel     vec.Vec2
		wantPos vec.Vec2
		wantVel vec.Vec2
		wantHit bool
	}{
		{"in bounds at rest", vec.New(50, 25), vec.Vec2{}, vec.New(50, 25), vec.Vec2{}, false},
		{"tangent to walls", vec.New(2, 2), vec.Vec2{}, vec.New(2, 2), vec.Vec2{}, false},
		{"beyond max x", vec.New(101, 25), vec.New(3, 1), vec.New(98, 25), vec.New(-3, 1), true},
		{"beyond min x", vec.New(-5, 25), vec.New(-1, 0), vec.New(2, 25), vec.New(1, 0), true},
		{"beyond max y", vec.New(30, 60), vec.New(0, 4), vec.New(30, 48), vec.New(0, -4), true},
		{"beyond min y moving in", vec.New(30, 1), vec.New(0, 2), vec.New(30, 2), vec.New(0, 2), true},
		{"corner", vec.New(-1, 51), vec.New(-1, 1), vec.New(2, 48), vec.New(1, -1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustBody(t, 2, 1, tt.pos, tt.vel)
			hit := contain(&b, maxX, maxY)
			if hit != tt.wantHit {
				t.Errorf("expected hit=%v, got %v", tt.wantHit, hit)
			}
			if b.Position != tt.wantPos {
				t.Errorf("expected position %v, got %v", tt.wantPos, b.Position)
			}
			if b.Velocity != tt.wantVel {
				t.Errorf("expected velocity %v, got %v", tt.wantVel, b.Velocity)
			}
		})
	}
}

func TestGravityAccel(t *testing.T) {
	tests := []struct {
		mode Gravity
		want vec.Vec2
	}{
		{GravityNone, vec.Vec2{}},
		{GravityLeft, vec.New(-2, 0)},
		{GravityRight, vec.New(2, 0)},
		{GravityUp, vec.New(0, 2)},
		{GravityDown, vec.New(0, -2)},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			if got := tt.mode.Accel(2); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
			parsed, err := ParseGravity(tt.mode.String())
			if err != nil || parsed != tt.mode {
				t.Errorf("round trip through name failed: %v %v", parsed, err)
			}
		})
	}

	if _, err := ParseGravity("sideways"); err == nil {
		t.Error("expected error for unknown direction")
	}
}

func TestParamsValidate(t *testing.T) {
	if err := DefaultParams().Validate(); err != nil {
		t.Errorf("default params invalid: %v", err)
	}
	if _, err := NewEngine(Params{Gravity: -1}); err == nil {
		t.Error("expected error for negative gravity")
	}
	if _, err := NewEngine(Params{Friction: float32(math.Inf(1))}); err == nil {
		t.Error("expected error for infinite friction")
	}
}

func TestFriction(t *testing.T) {
	e, _ := NewEngine(Params{Friction: 0.5})

	fast := mustBody(t, 1, 2, vec.Vec2{}, vec.New(3, 0))
	e.applyFriction(&fast, 1)
	if !near(fast.Velocity.X, 2.75) {
		t.Errorf("expected vx 2.75, got %f", fast.Velocity.X)
	}

	slow := mustBody(t, 1, 1, vec.Vec2{}, vec.New(0.3, 0.1))
	e.applyFriction(&slow, 1)
	if !slow.Velocity.IsZero() {
		t.Errorf("slow body should stop, got %v", slow.Velocity)
	}
}

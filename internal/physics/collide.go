package physics

import (
	"math"

	"github.com/san-kum/ballpit/internal/body"
	"github.com/san-kum/ballpit/internal/vec"
)

// fallbackAxis separates bodies whose centers coincide exactly.
var fallbackAxis = vec.New(1, 0)

// Resolve tests a pair for overlap and, when they overlap, pushes them apart
// along the contact normal and applies an elastic impulse to the normal
// velocity components. Separation is split by m2/(m1+m2) and m1/(m1+m2) so
// the heavier body moves less. The impulse is skipped for pairs already
// moving apart. A pinned body acts as infinitely massive: it is neither
// displaced nor deflected. Resolve reports whether the bodies overlapped.
func Resolve(b1, b2 *body.Body, pinned1, pinned2 bool) bool {
	if pinned1 && pinned2 {
		return false
	}

	delta := b2.Position.Sub(b1.Position)
	distSq := delta.LengthSq()
	total := b1.Radius + b2.Radius
	if distSq >= total*total {
		return false
	}

	dist := float32(math.Sqrt(float64(distSq)))
	normal := fallbackAxis
	if dist > 0 {
		normal = delta.Scale(1 / dist)
	}
	depth := total - dist

	sum := b1.Mass + b2.Mass
	w1, w2 := b1.Mass/sum, b2.Mass/sum
	switch {
	case pinned1:
		w1, w2 = 1, 0
	case pinned2:
		w1, w2 = 0, 1
	}

	// b1 moves by the other body's share, b2 by b1's share.
	b1.Position = b1.Position.Sub(normal.Scale(depth * w2))
	b2.Position = b2.Position.Add(normal.Scale(depth * w1))

	v1 := b1.Velocity.Dot(normal)
	v2 := b2.Velocity.Dot(normal)
	if v1-v2 <= 0 {
		return true
	}

	f1 := v1 + 2*w2*(v2-v1)
	f2 := v2 + 2*w1*(v1-v2)
	b1.Velocity = b1.Velocity.Add(normal.Scale(f1 - v1))
	b2.Velocity = b2.Velocity.Add(normal.Scale(f2 - v2))
	return true
}

// contain clamps b inside [0,maxX] x [0,maxY] with its full radius and
// reflects the outward velocity component. It reports whether a wall was hit.
func contain(b *body.Body, maxX, maxY float32) bool {
	hit := false

	if b.Position.X < b.Radius {
		b.Position.X = b.Radius
		if b.Velocity.X < 0 {
			b.Velocity.X = -b.Velocity.X
		}
		hit = true
	} else if b.Position.X > maxX-b.Radius {
		b.Position.X = maxX - b.Radius
		if b.Velocity.X > 0 {
			b.Velocity.X = -b.Velocity.X
		}
		hit = true
	}

	if b.Position.Y < b.Radius {
		b.Position.Y = b.Radius
		if b.Velocity.Y < 0 {
			b.Velocity.Y = -b.Velocity.Y
		}
		hit = true
	} else if b.Position.Y > maxY-b.Radius {
		b.Position.Y = maxY - b.Radius
		if b.Velocity.Y > 0 {
			b.Velocity.Y = -b.Velocity.Y
		}
		hit = true
	}

	return hit
}

package physics

import (
	"fmt"
	"strings"

	"github.com/san-kum/ballpit/internal/vec"
)

// Gravity selects the direction of the uniform gravity field.
type Gravity int

const (
	GravityNone Gravity = iota
	GravityLeft
	GravityRight
	GravityUp
	GravityDown
)

var gravityNames = [...]string{"none", "left", "right", "up", "down"}

func (g Gravity) String() string {
	if g < 0 || int(g) >= len(gravityNames) {
		return fmt.Sprintf("gravity(%d)", int(g))
	}
	return gravityNames[g]
}

// ParseGravity maps a mode name to its Gravity value.
func ParseGravity(s string) (Gravity, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range gravityNames {
		if s == name {
			return Gravity(i), nil
		}
	}
	return GravityNone, fmt.Errorf("physics: unknown gravity direction %q", s)
}

// Accel returns the acceleration vector for the mode. World y grows upward.
func (g Gravity) Accel(strength float32) vec.Vec2 {
	switch g {
	case GravityLeft:
		return vec.New(-strength, 0)
	case GravityRight:
		return vec.New(strength, 0)
	case GravityUp:
		return vec.New(0, strength)
	case GravityDown:
		return vec.New(0, -strength)
	default:
		return vec.Vec2{}
	}
}

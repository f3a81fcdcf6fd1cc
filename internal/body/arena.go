package body

// Arena is fixed-capacity body storage. Its backing slice is allocated once
// and never grows, so IDs and recorded grid locations stay valid for the
// lifetime of the run.
type Arena struct {
	bodies []Body
}

func NewArena(capacity int) *Arena {
	if capacity < 0 {
		capacity = 0
	}
	return &Arena{bodies: make([]Body, 0, capacity)}
}

// Add stores b and returns its ID. It fails with ErrArenaFull rather than
// reallocating.
func (a *Arena) Add(b Body) (ID, error) {
	if len(a.bodies) == cap(a.bodies) {
		return -1, ErrArenaFull
	}
	a.bodies = append(a.bodies, b)
	return ID(len(a.bodies) - 1), nil
}

// Bodies returns the live bodies. The slice aliases arena storage.
func (a *Arena) Bodies() []Body { return a.bodies }

func (a *Arena) At(id ID) *Body { return &a.bodies[id] }

func (a *Arena) Len() int { return len(a.bodies) }

func (a *Arena) Cap() int { return cap(a.bodies) }

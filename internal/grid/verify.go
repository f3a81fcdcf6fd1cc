package grid

import "github.com/san-kum/ballpit/internal/body"

// Verify checks the two-way consistency between bodies and cells: every
// placed body sits at its recorded slot in the cell matching its position,
// and every cell entry points back at its slot. It returns the first
// violation found.
func (g *Grid) Verify(bodies []body.Body) error {
	seen := 0
	for i := range bodies {
		b := &bodies[i]
		id := body.ID(i)
		if b.Cell == body.NoCell {
			continue
		}
		if b.Cell < 0 || int(b.Cell) >= len(g.cells) {
			return &InvariantError{Body: id, Cell: b.Cell, Slot: b.Slot, Message: "recorded cell out of range"}
		}
		ids := g.cells[b.Cell].ids
		if b.Slot < 0 || int(b.Slot) >= len(ids) || ids[b.Slot] != id {
			return &InvariantError{Body: id, Cell: b.Cell, Slot: b.Slot, Message: "recorded slot does not hold body"}
		}
		if want := g.CellFor(b.Position); int32(want) != b.Cell {
			return &InvariantError{Body: id, Cell: b.Cell, Slot: b.Slot, Message: "body is outside its recorded cell"}
		}
		seen++
	}

	total := 0
	for c := range g.cells {
		for s, id := range g.cells[c].ids {
			if int(id) < 0 || int(id) >= len(bodies) {
				return &InvariantError{Body: id, Cell: int32(c), Slot: int32(s), Message: "cell holds unknown body"}
			}
			b := &bodies[id]
			if b.Cell != int32(c) || b.Slot != int32(s) {
				return &InvariantError{Body: id, Cell: int32(c), Slot: int32(s), Message: "cell entry disagrees with body back-reference"}
			}
			total++
		}
	}
	if total != seen {
		return &InvariantError{Body: -1, Cell: -1, Slot: -1, Message: "cell membership count differs from placed bodies"}
	}
	return nil
}

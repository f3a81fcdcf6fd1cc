// Package grid implements the uniform spatial grid used for broad-phase
// collision detection.
//
// Cells are stored row-major and hold body IDs, never bodies. Each body
// records its own (cell, slot) pair, which makes removal an O(1) swap with
// the cell's last element.
package grid

import (
	"math"

	"github.com/san-kum/ballpit/internal/body"
	"github.com/san-kum/ballpit/internal/vec"
)

// CellRef is a row-major cell index.
type CellRef int32

type cell struct {
	ids []body.ID
}

type Grid struct {
	width, height float32
	cellSize      float32
	cols, rows    int
	cells         []cell
}

// New partitions a width x height plane into ceil(width/cellSize) x
// ceil(height/cellSize) cells.
func New(width, height, cellSize float32) (*Grid, error) {
	if !(width > 0) || !(height > 0) || !(cellSize > 0) {
		return nil, ErrInvalidDimensions
	}
	cols := int(math.Ceil(float64(width / cellSize)))
	rows := int(math.Ceil(float64(height / cellSize)))
	return &Grid{
		width:    width,
		height:   height,
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    make([]cell, cols*rows),
	}, nil
}

// Reserve preallocates each cell for an expected population of n bodies.
func (g *Grid) Reserve(n int) {
	per := n / len(g.cells)
	if per < 4 {
		per = 4
	}
	for i := range g.cells {
		if cap(g.cells[i].ids) < per {
			g.cells[i].ids = append(make([]body.ID, 0, per), g.cells[i].ids...)
		}
	}
}

func (g *Grid) Cols() int         { return g.cols }
func (g *Grid) Rows() int         { return g.rows }
func (g *Grid) Len() int          { return len(g.cells) }
func (g *Grid) CellSize() float32 { return g.cellSize }

// At returns the cell at integer cell coordinates, clamped to the grid.
func (g *Grid) At(x, y int) CellRef {
	x = clamp(x, 0, g.cols-1)
	y = clamp(y, 0, g.rows-1)
	return CellRef(y*g.cols + x)
}

// CellFor maps a world position to floor(position/cellSize). Coordinates
// outside the grid clamp to the nearest edge cell.
func (g *Grid) CellFor(p vec.Vec2) CellRef {
	return g.At(floorInt(p.X/g.cellSize), floorInt(p.Y/g.cellSize))
}

// Coords returns the integer cell coordinates of c.
func (g *Grid) Coords(c CellRef) (x, y int) {
	return int(c) % g.cols, int(c) / g.cols
}

// Cell returns the IDs currently in c. The slice aliases grid storage.
func (g *Grid) Cell(c CellRef) []body.ID {
	return g.cells[c].ids
}

// Insert appends id to cell c and records the location on the body.
func (g *Grid) Insert(bodies []body.Body, id body.ID, c CellRef) {
	ce := &g.cells[c]
	b := &bodies[id]
	b.Cell = int32(c)
	b.Slot = int32(len(ce.ids))
	ce.ids = append(ce.ids, id)
}

// Add inserts id into the cell containing its current position.
func (g *Grid) Add(bodies []body.Body, id body.ID) {
	g.Insert(bodies, id, g.CellFor(bodies[id].Position))
}

// Remove detaches id from its recorded cell by swapping the cell's last
// element into the vacated slot. Removing an unplaced body is a no-op.
func (g *Grid) Remove(bodies []body.Body, id body.ID) {
	b := &bodies[id]
	if b.Cell == body.NoCell {
		return
	}
	if b.Cell < 0 || int(b.Cell) >= len(g.cells) {
		panic(&InvariantError{Body: id, Cell: b.Cell, Slot: b.Slot, Message: "recorded cell out of range"})
	}
	ce := &g.cells[b.Cell]
	slot := b.Slot
	if slot < 0 || int(slot) >= len(ce.ids) || ce.ids[slot] != id {
		panic(&InvariantError{Body: id, Cell: b.Cell, Slot: slot, Message: "recorded slot does not hold body"})
	}

	last := len(ce.ids) - 1
	if int(slot) != last {
		moved := ce.ids[last]
		ce.ids[slot] = moved
		bodies[moved].Slot = slot
	}
	ce.ids = ce.ids[:last]

	b.Cell = body.NoCell
	b.Slot = -1
}

// Relocate moves id to the cell matching its position if that differs from
// the recorded one. It reports whether a transfer happened.
func (g *Grid) Relocate(bodies []body.Body, id body.ID) bool {
	b := &bodies[id]
	c := g.CellFor(b.Position)
	if b.Cell == int32(c) {
		return false
	}
	g.Remove(bodies, id)
	g.Insert(bodies, id, c)
	return true
}

// Reset empties every cell, keeping capacity. Bodies are not touched; callers
// must clear or re-add them.
func (g *Grid) Reset() {
	for i := range g.cells {
		g.cells[i].ids = g.cells[i].ids[:0]
	}
}

func floorInt(v float32) int {
	f := math.Floor(float64(v))
	if f < math.MinInt32 {
		return math.MinInt32
	}
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(f)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

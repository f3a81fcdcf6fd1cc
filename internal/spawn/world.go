package spawn

import (
	"github.com/san-kum/ballpit/internal/body"
	"github.com/san-kum/ballpit/internal/grid"
	"github.com/san-kum/ballpit/internal/physics"
)

// NewWorld allocates an arena and grid sized for opts and populates them.
func NewWorld(table *Table, opts Options, cellSize float32) (*physics.World, error) {
	g, err := grid.New(opts.Width, opts.Height, cellSize)
	if err != nil {
		return nil, err
	}
	arena := body.NewArena(opts.Count)
	if err := Populate(arena, g, table, opts); err != nil {
		return nil, err
	}
	return &physics.World{
		Bodies: arena.Bodies(),
		Grid:   g,
		Width:  opts.Width,
		Height: opts.Height,
	}, nil
}

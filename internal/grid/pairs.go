package grid

import "github.com/san-kum/ballpit/internal/body"

// halfStencil lists the neighbor offsets scanned from each cell. Its mirror
// image is covered when the neighbor cell runs its own scan, so the pair of
// stencils spans the full 3x3 neighborhood and each pair of adjacent cells is
// visited from exactly one side.
var halfStencil = [4][2]int{
	{-1, -1},
	{-1, 0},
	{-1, 1},
	{0, -1},
}

// ForEachPair calls fn once for every unordered pair of bodies that share a
// cell or sit in adjacent cells. Same-cell pairs come first for each body,
// using a start offset so (a, b) and (b, a) are not both reported.
func (g *Grid) ForEachPair(fn func(a, b body.ID)) {
	for i := range g.cells {
		x, y := i%g.cols, i/g.cols
		ids := g.cells[i].ids
		for j, a := range ids {
			for _, b := range ids[j+1:] {
				fn(a, b)
			}
			for _, d := range halfStencil {
				nx, ny := x+d[0], y+d[1]
				if nx < 0 || ny < 0 || ny >= g.rows {
					continue
				}
				for _, b := range g.cells[ny*g.cols+nx].ids {
					fn(a, b)
				}
			}
		}
	}
}

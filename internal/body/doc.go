// Package body defines the simulated particle record and its fixed-capacity
// container.
//
//   - [Body]: one circular particle (radius, mass, position, velocity, color)
//     plus its grid back-reference
//   - [Arena]: fixed-capacity storage handing out stable [ID] values
//
// # Stability
//
// An [Arena] never reallocates its backing slice. Grid cells refer to bodies
// by [ID], and every body records its (cell, slot) location, so population
// must finish before the grid is asked to track anything.
package body

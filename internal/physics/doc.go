// Package physics advances a population of circular bodies by one fixed
// sub-step at a time.
//
// A call to [Engine.Step] runs a fixed pipeline over a [World]:
//
//   - force application: gravity selected by a [Gravity] mode, plus friction
//   - grabbed-body override driven by an [Interaction]
//   - semi-implicit Euler integration
//   - boundary containment with velocity reflection
//   - grid re-bucketing
//   - broad phase over the grid and narrow phase via [Resolve]
//
// The gravity mode and interaction state are passed in explicitly, so a step
// depends only on its arguments and the engine's [Params].
//
// # Units
//
// Time is measured in frames (1/60 s). Velocities are in world units per
// frame and a sub-step of dt = 1 corresponds to one frame at 60 FPS.
//
// # Tunneling
//
// Collision detection is discrete. Bodies whose relative displacement in a
// sub-step exceeds the sum of their radii can pass through each other.
package physics

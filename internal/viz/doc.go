// Package viz draws arm poses in the terminal.
//
// The package holds the rendering side of an arm: the solver in
// package kinematics produces joint positions and everything here consumes
// them.
//
//   - [Style]: immutable drawing parameters (colors, marker size, link width)
//   - [Canvas]: Braille-based pixel canvas with per-cell ink
//   - [Camera]: perspective projection for the 3D scene
//   - [App]: interactive viewer with joint sliders, built on Bubble Tea
//
// # Key Bindings
//
//	j/k or up/down   - Select joint
//	h/l or left/right - Rotate selected joint
//	+/-              - Lengthen or shorten selected link
//	c / o            - Cycle link / joint color
//	m / w            - Cycle marker size / link width
//	v                - Toggle 2D and 3D view
//	a/d, s/x         - Orbit the 3D camera
//	r                - Reset to initial pose
package viz

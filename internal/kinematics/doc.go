// Package kinematics computes forward kinematics for serial-link arms.
//
// A chain is described by N link lengths and N joint angles. Each angle is
// relative to the previous link, so the absolute heading of link i is the
// sum of angles[0..i]. The solver returns N+1 joint positions, base first:
//
//   - [Solve]: positions for a chain in a chosen [Dimension]
//   - [Solve2D], [Solve3D]: the same points as r2 or r3 values
//   - [SolveBatch]: many angle sets over one chain, evaluated concurrently
//
// # Example
//
//	pos, err := kinematics.Solve([]float64{1, 1}, []float64{math.Pi / 2, -math.Pi / 2}, kinematics.Planar)
//	// pos.Points: (0,0,0) (0,1,0) (1,1,0)
//
// # Spatial chains
//
// Spatial mode embeds the planar chain in the z = 0 plane. No out-of-plane
// rotation is modeled.
//
// # Thread Safety
//
// Every function in this package is pure and safe for concurrent use.
package kinematics

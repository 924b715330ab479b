package kinematics

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/floats"
)

// Solve returns the joint positions of the chain described by lengths and
// relative joint angles (radians). The result has len(lengths)+1 points
// starting at the origin. Spatial output lies in the z = 0 plane.
func Solve(lengths, angles []float64, dim Dimension) (Positions, error) {
	if err := Validate(lengths, angles); err != nil {
		return Positions{}, err
	}
	if !dim.Valid() {
		return Positions{}, ErrUnknownDimension
	}
	return Positions{Dim: dim, Points: accumulate(lengths, angles)}, nil
}

// Solve2D is Solve in the plane, returned as r2 points.
func Solve2D(lengths, angles []float64) ([]r2.Point, error) {
	pos, err := Solve(lengths, angles, Planar)
	if err != nil {
		return nil, err
	}
	return pos.Planar(), nil
}

// Solve3D is Solve embedded in space, returned as r3 vectors.
func Solve3D(lengths, angles []float64) ([]r3.Vector, error) {
	pos, err := Solve(lengths, angles, Spatial)
	if err != nil {
		return nil, err
	}
	return pos.Points, nil
}

// Headings returns the absolute orientation of every link.
func Headings(angles []float64) []float64 {
	return floats.CumSum(make([]float64, len(angles)), angles)
}

// accumulate assumes validated input.
func accumulate(lengths, angles []float64) []r3.Vector {
	headings := Headings(angles)
	pts := make([]r3.Vector, len(lengths)+1)
	for i, l := range lengths {
		sin, cos := math.Sincos(headings[i])
		pts[i+1] = pts[i].Add(r3.Vector{X: l * cos, Y: l * sin})
	}
	return pts
}

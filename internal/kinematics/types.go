package kinematics

import (
	"fmt"
	"strings"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

// Dimension selects the coordinate arity of solver output.
type Dimension int

const (
	Planar  Dimension = 2
	Spatial Dimension = 3
)

func (d Dimension) String() string {
	switch d {
	case Planar:
		return "2d"
	case Spatial:
		return "3d"
	default:
		return fmt.Sprintf("Dimension(%d)", int(d))
	}
}

// Valid reports whether d is Planar or Spatial.
func (d Dimension) Valid() bool {
	return d == Planar || d == Spatial
}

// ParseDimension accepts "2", "2d", "3" and "3d" in any case.
func ParseDimension(s string) (Dimension, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "2", "2d", "planar":
		return Planar, nil
	case "3", "3d", "spatial":
		return Spatial, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDimension, s)
}

// Positions holds the joint coordinates of one chain evaluation.
// Points[0] is the base; Points[i+1] is the tip of link i.
type Positions struct {
	Dim    Dimension
	Points []r3.Vector
}

// Len returns the number of joints including the base.
func (p Positions) Len() int { return len(p.Points) }

// Tip returns the end of the last link.
func (p Positions) Tip() r3.Vector {
	if len(p.Points) == 0 {
		return r3.Vector{}
	}
	return p.Points[len(p.Points)-1]
}

// Reach is the straight-line distance from the base to the tip.
func (p Positions) Reach() float64 {
	return p.Tip().Norm()
}

// Planar drops the z component.
func (p Positions) Planar() []r2.Point {
	out := make([]r2.Point, len(p.Points))
	for i, v := range p.Points {
		out[i] = r2.Point{X: v.X, Y: v.Y}
	}
	return out
}

// XY returns the coordinates as separate x and y columns.
func (p Positions) XY() (xs, ys []float64) {
	xs = make([]float64, len(p.Points))
	ys = make([]float64, len(p.Points))
	for i, v := range p.Points {
		xs[i], ys[i] = v.X, v.Y
	}
	return xs, ys
}

// Coords returns every point as a slice whose length matches Dim.
func (p Positions) Coords() [][]float64 {
	out := make([][]float64, len(p.Points))
	for i, v := range p.Points {
		if p.Dim == Spatial {
			out[i] = []float64{v.X, v.Y, v.Z}
		} else {
			out[i] = []float64{v.X, v.Y}
		}
	}
	return out
}

// Segment is one link drawn between two consecutive joints.
type Segment struct {
	Start, End r3.Vector
}

// Length returns the Euclidean length of the segment.
func (s Segment) Length() float64 { return s.End.Sub(s.Start).Norm() }

// Segments returns the links of the chain in base-to-tip order.
func (p Positions) Segments() []Segment {
	if len(p.Points) < 2 {
		return nil
	}
	segs := make([]Segment, len(p.Points)-1)
	for i := range segs {
		segs[i] = Segment{Start: p.Points[i], End: p.Points[i+1]}
	}
	return segs
}

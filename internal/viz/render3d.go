package viz

import (
	"math"
	"sort"

	"github.com/golang/geo/r3"
)

// Camera orbits the origin and projects world points onto the canvas.
type Camera struct {
	Distance         float64
	Near             float64
	RotX, RotY, RotZ float64
	Zoom             float64
}

func NewCamera() *Camera {
	return &Camera{Distance: 50, Near: 0.1, RotX: -0.6, RotY: 0.4, Zoom: 1.0}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

// RotatePoint rotates a point around the camera's axes.
func (c *Camera) RotatePoint(p r3.Vector) r3.Vector {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	return p
}

// Project converts world coordinates to screen dots for a screen of
// sw x sh dots. Returns x, y, depth, and visibility.
func (c *Camera) Project(p r3.Vector, sw, sh int) (int, int, float64, bool) {
	rot := c.RotatePoint(p).Mul(c.Zoom)
	dist := c.Distance
	if rot.Z >= dist-c.Near {
		return 0, 0, 0, false
	}
	scale := dist / (dist - rot.Z)
	minDim := math.Min(float64(sw), float64(sh))
	pScale := minDim / 3.0
	sx := int(rot.X*scale*pScale) + sw/2
	sy := int(-rot.Y*scale*pScale) + sh/2
	return sx, sy, rot.Z, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

type Edge struct {
	Start, End r3.Vector
	Ink        Ink
}

type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe                       { return &Wireframe{Edges: make([]Edge, 0)} }
func (w *Wireframe) AddEdge(s, e r3.Vector, ink Ink) { w.Edges = append(w.Edges, Edge{s, e, ink}) }
func (w *Wireframe) AddPoint(p r3.Vector, ink Ink)   { w.Edges = append(w.Edges, Edge{p, p, ink}) }

type projectedEdge struct {
	x1, y1, x2, y2 int
	depth          float64
	ink            Ink
}

// Render3D draws the wireframe to the canvas back to front. Points are
// drawn as discs of markerRadius dots.
func Render3D(c *Canvas, w *Wireframe, cam *Camera, markerRadius int) {
	if c == nil || w == nil || cam == nil {
		return
	}
	sw, sh := c.SubWidth(), c.SubHeight()
	proj := make([]projectedEdge, 0, len(w.Edges))
	for _, e := range w.Edges {
		x1, y1, d1, v1 := cam.Project(e.Start, sw, sh)
		x2, y2, d2, v2 := cam.Project(e.End, sw, sh)
		if v1 || v2 {
			proj = append(proj, projectedEdge{x1, y1, x2, y2, (d1 + d2) / 2, e.Ink})
		}
	}
	sort.SliceStable(proj, func(i, j int) bool { return proj[i].depth < proj[j].depth })
	for _, e := range proj {
		switch {
		case e.x1 == e.x2 && e.y1 == e.y2:
			c.FillDisc(e.x1, e.y1, markerRadius, e.ink)
		case e.ink == InkGrid:
			c.DrawDashed(e.x1, e.y1, e.x2, e.y2, e.ink)
		default:
			c.DrawLine(e.x1, e.y1, e.x2, e.y2, e.ink)
		}
	}
}

func CreateAxesWireframe(l float64) *Wireframe {
	w, o := NewWireframe(), r3.Vector{}
	w.AddEdge(o, r3.Vector{X: l}, InkGrid)
	w.AddEdge(o, r3.Vector{Y: l}, InkGrid)
	w.AddEdge(o, r3.Vector{Z: l}, InkGrid)
	return w
}

package viz

import (
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/armkin/internal/kinematics"
)

const gridColor = "#444466"

// ChainReach is the largest distance the tip can be from the base.
func ChainReach(lengths []float64) float64 {
	total := 0.0
	for _, l := range lengths {
		total += math.Abs(l)
	}
	if total == 0 {
		return 1
	}
	return total
}

// Frame maps world coordinates to canvas dots with equal axis scaling and
// the base at the center.
type Frame struct {
	CX, CY int
	Scale  float64
}

// FitFrame sizes a frame so a circle of the given reach fits the canvas.
func FitFrame(c *Canvas, reach float64) Frame {
	sw, sh := c.SubWidth(), c.SubHeight()
	half := math.Min(float64(sw), float64(sh)) / 2
	if reach <= 0 {
		reach = 1
	}
	return Frame{CX: sw / 2, CY: sh / 2, Scale: 0.9 * half / reach}
}

func (f Frame) Dot(x, y float64) (int, int) {
	return f.CX + int(math.Round(x*f.Scale)), f.CY - int(math.Round(y*f.Scale))
}

func markerRadius(s Style) int {
	return max(1, int(math.Round(s.MarkerSize/5)))
}

func linkRadius(s Style) int {
	return int(s.LinkWidth / 6)
}

// DrawPlanar draws the links and joints of a pose viewed along z.
func DrawPlanar(c *Canvas, pos kinematics.Positions, reach float64, s Style) {
	f := FitFrame(c, reach)
	if s.ShowGrid {
		c.DrawDashed(0, f.CY, c.SubWidth()-1, f.CY, InkGrid)
		c.DrawDashed(f.CX, 0, f.CX, c.SubHeight()-1, InkGrid)
	}
	lr := linkRadius(s)
	for _, seg := range pos.Segments() {
		x0, y0 := f.Dot(seg.Start.X, seg.Start.Y)
		x1, y1 := f.Dot(seg.End.X, seg.End.Y)
		c.DrawThickLine(x0, y0, x1, y1, lr, InkLink)
	}
	mr := markerRadius(s)
	for _, p := range pos.Points {
		x, y := f.Dot(p.X, p.Y)
		c.FillDisc(x, y, mr, InkJoint)
	}
}

// ArmWireframe builds the 3D scene for a pose, scaled so the chain reach
// maps to unit length.
func ArmWireframe(pos kinematics.Positions, reach float64, showAxes bool) *Wireframe {
	if reach <= 0 {
		reach = 1
	}
	k := 1.2 / reach
	w := NewWireframe()
	if showAxes {
		w.Edges = append(w.Edges, CreateAxesWireframe(1.2).Edges...)
	}
	for _, seg := range pos.Segments() {
		w.AddEdge(seg.Start.Mul(k), seg.End.Mul(k), InkLink)
	}
	for _, p := range pos.Points {
		w.AddPoint(p.Mul(k), InkJoint)
	}
	return w
}

// DrawSpatial draws a pose through the camera.
func DrawSpatial(c *Canvas, pos kinematics.Positions, reach float64, cam *Camera, s Style) {
	Render3D(c, ArmWireframe(pos, reach, s.ShowGrid), cam, markerRadius(s))
}

// InkStyles maps canvas ink to terminal colors for a style.
func InkStyles(s Style) map[Ink]lipgloss.Style {
	return map[Ink]lipgloss.Style{
		InkGrid:  lipgloss.NewStyle().Foreground(lipgloss.Color(gridColor)),
		InkLink:  lipgloss.NewStyle().Foreground(lipgloss.Color(s.Link().Hex())),
		InkJoint: lipgloss.NewStyle().Foreground(lipgloss.Color(s.Joint().Hex())).Bold(true),
	}
}

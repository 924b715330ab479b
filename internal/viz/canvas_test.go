package viz

import (
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/golang/geo/r3"
	"github.com/san-kum/armkin/internal/kinematics"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0, InkLink)
	c.Set(3, 3, InkJoint)
	c.Set(-1, 0, InkJoint)
	c.Set(4, 0, InkJoint)

	if c.Grid[0][0] != brailleBlank|0x1 {
		t.Errorf("expected dot 1 in cell 0, got %U", c.Grid[0][0])
	}
	if c.Grid[0][1] != brailleBlank|0x80 {
		t.Errorf("expected dot 8 in cell 1, got %U", c.Grid[0][1])
	}
	if c.Ink[0][0] != InkLink || c.Ink[0][1] != InkJoint {
		t.Errorf("unexpected ink: %v", c.Ink[0])
	}
}

func TestCanvasInkPriority(t *testing.T) {
	c := NewCanvas(1, 1)
	c.Set(0, 0, InkJoint)
	c.Set(1, 1, InkGrid)
	if c.Ink[0][0] != InkJoint {
		t.Errorf("lower ink must not overwrite higher, got %v", c.Ink[0][0])
	}

	c.Clear()
	if c.Grid[0][0] != brailleBlank || c.Ink[0][0] != InkNone {
		t.Error("clear did not reset cell")
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(4, 1)
	c.DrawLine(0, 0, 7, 0, InkLink)
	for col := 0; col < 4; col++ {
		if c.Grid[0][col] != brailleBlank|0x1|0x8 {
			t.Errorf("cell %d: expected top row dots, got %U", col, c.Grid[0][col])
		}
	}
}

func TestCanvasRender(t *testing.T) {
	c := NewCanvas(3, 2)
	c.Set(0, 0, InkLink)
	out := c.Render(map[Ink]lipgloss.Style{})
	if out != c.String() {
		t.Errorf("render without styles should equal String()\n%q\n%q", out, c.String())
	}
	if strings.Count(out, "\n") != 2 {
		t.Errorf("expected 2 rows, got %q", out)
	}
}

func TestDrawPlanarStraightArm(t *testing.T) {
	pos, err := kinematics.Solve([]float64{1, 1}, []float64{0, 0}, kinematics.Planar)
	if err != nil {
		t.Fatal(err)
	}

	c := NewCanvas(40, 20)
	DrawPlanar(c, pos, 2, DefaultStyle().WithGrid(false))

	f := FitFrame(c, 2)
	bx, by := f.Dot(0, 0)
	tx, ty := f.Dot(2, 0)
	if by != ty {
		t.Fatalf("flat arm must map to one row, got %d and %d", by, ty)
	}
	if c.Ink[by/4][bx/2] != InkJoint || c.Ink[ty/4][tx/2] != InkJoint {
		t.Error("expected joint ink at base and tip")
	}
	mx, my := f.Dot(0.5, 0)
	if c.Ink[my/4][mx/2] == InkNone {
		t.Error("expected link ink along the first segment")
	}
}

func TestFitFrameKeepsReachOnCanvas(t *testing.T) {
	c := NewCanvas(30, 10)
	f := FitFrame(c, 5)
	for _, a := range []float64{0, math.Pi / 2, math.Pi, 3 * math.Pi / 2} {
		x, y := f.Dot(5*math.Cos(a), 5*math.Sin(a))
		if x < 0 || x >= c.SubWidth() || y < 0 || y >= c.SubHeight() {
			t.Errorf("angle %f: dot (%d, %d) off canvas", a, x, y)
		}
	}
}

func TestArmWireframe(t *testing.T) {
	pos, err := kinematics.Solve([]float64{1, 2, 3}, []float64{0.1, 0.2, 0.3}, kinematics.Spatial)
	if err != nil {
		t.Fatal(err)
	}

	w := ArmWireframe(pos, 6, false)
	if len(w.Edges) != 3+4 {
		t.Errorf("expected 7 edges, got %d", len(w.Edges))
	}
	w = ArmWireframe(pos, 6, true)
	if len(w.Edges) != 3+3+4 {
		t.Errorf("expected 10 edges with axes, got %d", len(w.Edges))
	}
}

func TestCameraProjectCenter(t *testing.T) {
	cam := NewCamera()
	x, y, _, visible := cam.Project(r3.Vector{}, 100, 80)
	if !visible || x != 50 || y != 40 {
		t.Errorf("origin should project to center, got (%d, %d) visible=%v", x, y, visible)
	}
}

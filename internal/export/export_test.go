package export

import (
	"bytes"
	"image/png"
	"math"
	"strings"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/san-kum/armkin/internal/kinematics"
	"github.com/san-kum/armkin/internal/viz"
)

func solve(t *testing.T, lengths, angles []float64) kinematics.Positions {
	t.Helper()
	pos, err := kinematics.Solve(lengths, angles, kinematics.Planar)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	return pos
}

func TestArmToSVG(t *testing.T) {
	pos := solve(t, []float64{3, 2, 1.5}, []float64{math.Pi / 6, math.Pi / 4, -math.Pi / 3})
	style := viz.DefaultStyle().WithTitle("a <b> arm").WithGrid(false)

	svg := ArmToSVG(pos, style, 600, 400)

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatal("output is not a complete svg document")
	}
	if n := strings.Count(svg, "<line "); n != 3 {
		t.Errorf("expected 3 link lines, got %d", n)
	}
	if n := strings.Count(svg, "<circle "); n != 4 {
		t.Errorf("expected 4 joint markers, got %d", n)
	}
	if !strings.Contains(svg, `stroke="#008000"`) {
		t.Error("expected link color in output")
	}
	if !strings.Contains(svg, `r="5.0"`) {
		t.Error("expected marker radius of half the marker size")
	}
	if !strings.Contains(svg, "a &lt;b&gt; arm") {
		t.Error("expected escaped title")
	}
}

func TestArmToSVGGrid(t *testing.T) {
	pos := solve(t, []float64{1, 1}, []float64{0, math.Pi / 2})
	with := ArmToSVG(pos, viz.DefaultStyle(), 300, 300)
	without := ArmToSVG(pos, viz.DefaultStyle().WithGrid(false), 300, 300)
	if strings.Count(with, "<line ") <= strings.Count(without, "<line ") {
		t.Error("grid should add lines")
	}
}

func TestFitFrameEqualAxes(t *testing.T) {
	points := []r2.Point{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}}
	f := fitFrame(points, 400, 400, 0.1)

	x0, y0 := f.px(points[0])
	x1, _ := f.px(points[1])
	_, y2 := f.px(points[2])

	if math.Abs((x1-x0)-2*(y0-y2)) > 1e-9 {
		t.Errorf("axes not equal: dx=%f dy=%f", x1-x0, y0-y2)
	}
	if y2 >= y0 {
		t.Error("y must point up")
	}
	if x0 < 0 || x1 > 400 {
		t.Errorf("points off image: %f..%f", x0, x1)
	}
}

func TestGridStep(t *testing.T) {
	tests := []struct {
		span, expected float64
	}{
		{8, 1},
		{16, 2},
		{40, 5},
		{0.6, 0.1},
		{0, 1},
	}
	for _, tt := range tests {
		if got := gridStep(tt.span); math.Abs(got-tt.expected) > 1e-12 {
			t.Errorf("gridStep(%f) = %f, want %f", tt.span, got, tt.expected)
		}
	}
}

func TestTipPathToSVG(t *testing.T) {
	if TipPathToSVG([]r2.Point{{X: 1, Y: 1}}, 100, 100, "#fff") != "" {
		t.Error("expected empty output for a single point")
	}
	svg := TipPathToSVG([]r2.Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 0}}, 100, 100, "#00ff00")
	if strings.Count(svg, " L") != 2 {
		t.Errorf("expected 2 path segments, got %q", svg)
	}
}

func TestWritePNG(t *testing.T) {
	pos := solve(t, []float64{1, 0.2}, []float64{math.Pi / 4, math.Pi / 3})

	var buf bytes.Buffer
	if err := WritePNG(&buf, pos, viz.DefaultStyle(), 120, 80); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 120 || b.Dy() != 80 {
		t.Errorf("expected 120x80, got %dx%d", b.Dx(), b.Dy())
	}
}

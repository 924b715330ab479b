package export

import (
	"image"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/geo/r2"
	"github.com/san-kum/armkin/internal/kinematics"
	"github.com/san-kum/armkin/internal/viz"
)

var gridGray = color.RGBA{221, 221, 221, 255}

// ArmToImage rasterizes a pose with the same layout as ArmToSVG.
func ArmToImage(pos kinematics.Positions, style viz.Style, width, height int) image.Image {
	dc := gg.NewContext(width, height)
	dc.SetColor(color.White)
	dc.Clear()

	points := pos.Planar()
	if len(points) == 0 {
		return dc.Image()
	}
	f := fitFrame(points, width, height, padding)

	if style.ShowGrid {
		rect := r2.RectFromPoints(points...)
		step := gridStep(math.Max(rect.X.Length(), rect.Y.Length()))
		dc.SetColor(gridGray)
		dc.SetLineWidth(1)
		for x := math.Floor(rect.X.Lo/step) * step; x <= rect.X.Hi+step; x += step {
			px, _ := f.px(r2.Point{X: x})
			dc.DrawLine(px, 0, px, float64(height))
		}
		for y := math.Floor(rect.Y.Lo/step) * step; y <= rect.Y.Hi+step; y += step {
			_, py := f.px(r2.Point{Y: y})
			dc.DrawLine(0, py, float64(width), py)
		}
		dc.Stroke()
	}

	dc.SetColor(style.Link())
	dc.SetLineWidth(style.LinkWidth)
	dc.SetLineCapRound()
	for i := 1; i < len(points); i++ {
		x1, y1 := f.px(points[i-1])
		x2, y2 := f.px(points[i])
		dc.DrawLine(x1, y1, x2, y2)
		dc.Stroke()
	}

	dc.SetColor(style.Joint())
	for _, p := range points {
		x, y := f.px(p)
		dc.DrawCircle(x, y, style.MarkerSize/2)
		dc.Fill()
	}

	if style.Title != "" {
		dc.SetColor(color.Black)
		dc.DrawStringAnchored(style.Title, float64(width)/2, 16, 0.5, 0.5)
	}
	return dc.Image()
}

// WritePNG encodes ArmToImage output to w.
func WritePNG(w io.Writer, pos kinematics.Positions, style viz.Style, width, height int) error {
	dc := gg.NewContextForImage(ArmToImage(pos, style, width, height))
	return dc.EncodePNG(w)
}

package export

import (
	"math"

	"github.com/golang/geo/r2"
)

// frame maps world coordinates into an image with equal axis scaling, a
// margin, and y pointing up.
type frame struct {
	minX, minY float64
	scale      float64
	offX, offY float64
	height     float64
}

func fitFrame(points []r2.Point, width, height int, pad float64) frame {
	rect := r2.RectFromPoints(points...)
	rangeX, rangeY := rect.X.Length(), rect.Y.Length()
	if rangeX == 0 && rangeY == 0 {
		rangeX, rangeY = 1, 1
	}
	// Equal axes: the larger range decides the scale.
	w := float64(width) * (1 - 2*pad)
	h := float64(height) * (1 - 2*pad)
	scale := math.Inf(1)
	if rangeX > 0 {
		scale = w / rangeX
	}
	if rangeY > 0 {
		scale = math.Min(scale, h/rangeY)
	}
	return frame{
		minX:   rect.X.Lo,
		minY:   rect.Y.Lo,
		scale:  scale,
		offX:   (float64(width) - rangeX*scale) / 2,
		offY:   (float64(height) - rangeY*scale) / 2,
		height: float64(height),
	}
}

func (f frame) px(p r2.Point) (float64, float64) {
	x := f.offX + (p.X-f.minX)*f.scale
	y := f.height - (f.offY + (p.Y-f.minY)*f.scale)
	return x, y
}

// gridStep picks a 1, 2 or 5 times power-of-ten spacing giving roughly
// eight grid lines across span.
func gridStep(span float64) float64 {
	if span <= 0 {
		return 1
	}
	raw := span / 8
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range []float64{1, 2, 5, 10} {
		if raw <= m*mag {
			return m * mag
		}
	}
	return 10 * mag
}

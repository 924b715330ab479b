package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/golang/geo/r2"
	"github.com/san-kum/armkin/internal/kinematics"
	"github.com/san-kum/armkin/internal/viz"
)

const padding = 0.1

// ArmToSVG draws a pose as connected link strokes with joint markers.
func ArmToSVG(pos kinematics.Positions, style viz.Style, width, height int) string {
	points := pos.Planar()
	if len(points) == 0 {
		return ""
	}
	f := fitFrame(points, width, height, padding)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#ffffff"/>
`, width, height, width, height))

	if style.ShowGrid {
		writeGrid(&sb, f, points, width, height)
	}

	sb.WriteString(fmt.Sprintf(`<g stroke="%s" stroke-width="%.1f" stroke-linecap="round">
`, style.Link().Hex(), style.LinkWidth))
	for i := 1; i < len(points); i++ {
		x1, y1 := f.px(points[i-1])
		x2, y2 := f.px(points[i])
		sb.WriteString(fmt.Sprintf(`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"/>
`, x1, y1, x2, y2))
	}
	sb.WriteString("</g>\n")

	sb.WriteString(fmt.Sprintf(`<g fill="%s">
`, style.Joint().Hex()))
	for _, p := range points {
		x, y := f.px(p)
		sb.WriteString(fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="%.1f"/>
`, x, y, style.MarkerSize/2))
	}
	sb.WriteString("</g>\n")

	if style.Title != "" {
		sb.WriteString(fmt.Sprintf(`<text x="%d" y="20" text-anchor="middle" font-family="sans-serif" font-size="16">%s</text>
`, width/2, escape(style.Title)))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func writeGrid(sb *strings.Builder, f frame, points []r2.Point, width, height int) {
	rect := r2.RectFromPoints(points...)
	step := gridStep(math.Max(rect.X.Length(), rect.Y.Length()))
	sb.WriteString(`<g stroke="#dddddd" stroke-width="1">
`)
	for x := math.Floor(rect.X.Lo/step) * step; x <= rect.X.Hi+step; x += step {
		px, _ := f.px(r2.Point{X: x})
		if px < 0 || px > float64(width) {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<line x1="%.2f" y1="0" x2="%.2f" y2="%d"/>
`, px, px, height))
	}
	for y := math.Floor(rect.Y.Lo/step) * step; y <= rect.Y.Hi+step; y += step {
		_, py := f.px(r2.Point{Y: y})
		if py < 0 || py > float64(height) {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<line x1="0" y1="%.2f" x2="%d" y2="%.2f"/>
`, py, width, py))
	}
	sb.WriteString("</g>\n")
}

// TipPathToSVG draws the path traced by the tip over a sweep.
func TipPathToSVG(points []r2.Point, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}
	f := fitFrame(points, width, height, padding)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, p := range points {
		x, y := f.px(p)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

func escape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}

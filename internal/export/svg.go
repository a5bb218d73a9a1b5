package export

import (
	"fmt"
	"strings"
)

// HeatmapSVG renders a per-parameter field as a grid of colored cells.
// The field is laid out row-major over rows x cols; values are mapped
// onto a green-to-red ramp over [lo, hi]. Shrinkage weights use [0, 1].
func HeatmapSVG(values []float64, rows, cols int, cell float64) string {
	if rows <= 0 || cols <= 0 || len(values) < rows*cols {
		return ""
	}

	lo, hi := values[0], values[0]
	for _, v := range values[:rows*cols] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	width := float64(cols) * cell
	height := float64(rows) * cell

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			t := (values[r*cols+c] - lo) / span
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
`, float64(c)*cell, float64(r)*cell, cell, cell, rampColor(t)))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// rampColor interpolates green (low) through yellow to red (high).
func rampColor(t float64) string {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	var r, g int
	if t < 0.5 {
		r, g = int(2*t*255), 255
	} else {
		r, g = 255, int((2-2*t)*255)
	}
	return fmt.Sprintf("#%02x%02x44", r, g)
}

// ProfileSVG draws one per-parameter series as a polyline across the
// flattened parameter index.
func ProfileSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	minY, maxY := values[0], values[0]
	for _, v := range values {
		if v < minY {
			minY = v
		}
		if v > maxY {
			maxY = v
		}
	}
	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	step := float64(width) / float64(len(values)-1)
	for i, v := range values {
		x := float64(i) * step
		y := float64(height) - (v-minY)/rangeY*float64(height)
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

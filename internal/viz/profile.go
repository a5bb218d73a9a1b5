package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/splithalf/internal/storage"
)

const (
	plotHeight = 10
	plotWidth  = 80
)

// Profile plots one per-parameter series across the flattened parameter
// index.
func Profile(caption string, values []float64) string {
	return asciigraph.Plot(values,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(caption),
	)
}

// ComponentProfiles renders the full decomposition of a run: one profile
// per variance component plus the lambda profile.
func ComponentProfiles(table *storage.ComponentTable) string {
	var sb strings.Builder

	series := []struct {
		caption string
		values  []float64
	}{
		{"sampling (noise) variance", table.Sampling},
		{"session variance", table.Session},
		{"between-subject variance", table.Between},
		{"total variance", table.Total},
		{"lambda (shrinkage weight)", table.Lambda},
	}

	for _, s := range series {
		if len(s.values) == 0 {
			continue
		}
		if constant(s.values) {
			sb.WriteString(Subtle.Render(fmt.Sprintf("%s: constant %.6g across parameters", s.caption, s.values[0])))
			sb.WriteString("\n\n")
			continue
		}
		sb.WriteString(Profile(s.caption, s.values))
		sb.WriteString("\n\n")
	}

	return sb.String()
}

// asciigraph needs a non-degenerate range; constant series read better as
// a single line anyway.
func constant(vals []float64) bool {
	for _, v := range vals[1:] {
		if v != vals[0] {
			return false
		}
	}
	return true
}

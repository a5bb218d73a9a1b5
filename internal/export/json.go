package export

import (
	"encoding/json"
	"io"

	"github.com/san-kum/splithalf/internal/storage"
)

// RunBundle is the full JSON export of one stored run: metadata, the
// per-parameter decomposition and the shrunk estimates.
type RunBundle struct {
	Meta       storage.RunMetadata `json:"meta"`
	Components bundleComponents    `json:"components"`
	Shrunk     [][]float64         `json:"shrunk"`
}

type bundleComponents struct {
	Sampling []float64 `json:"sampling"`
	Session  []float64 `json:"session"`
	Within   []float64 `json:"within"`
	Between  []float64 `json:"between"`
	Total    []float64 `json:"total"`
	Lambda   []float64 `json:"lambda"`
}

// WriteJSON streams a bundled run as indented JSON.
func WriteJSON(w io.Writer, meta *storage.RunMetadata, table *storage.ComponentTable, shrunk [][]float64) error {
	bundle := RunBundle{
		Meta: *meta,
		Components: bundleComponents{
			Sampling: table.Sampling,
			Session:  table.Session,
			Within:   table.Within,
			Between:  table.Between,
			Total:    table.Total,
			Lambda:   table.Lambda,
		},
		Shrunk: shrunk,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(bundle)
}

package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/san-kum/splithalf/internal/storage"
)

func TestHeatmapSVG(t *testing.T) {
	vals := []float64{0.0, 0.25, 0.5, 0.75, 1.0, 0.1}
	svg := HeatmapSVG(vals, 2, 3, 10)
	if svg == "" {
		t.Fatal("expected non-empty svg")
	}
	if got := strings.Count(svg, "<rect"); got != 7 {
		t.Errorf("rect count = %d, want 7 (background + 6 cells)", got)
	}
	if !strings.HasPrefix(svg, `<?xml version="1.0"`) {
		t.Error("missing xml header")
	}
}

func TestHeatmapSVGBadDims(t *testing.T) {
	if svg := HeatmapSVG([]float64{1, 2}, 2, 3, 10); svg != "" {
		t.Error("expected empty svg for short value slice")
	}
	if svg := HeatmapSVG(nil, 0, 0, 10); svg != "" {
		t.Error("expected empty svg for zero dims")
	}
}

func TestHeatmapSVGConstantField(t *testing.T) {
	vals := []float64{3, 3, 3, 3}
	svg := HeatmapSVG(vals, 2, 2, 8)
	if svg == "" {
		t.Fatal("constant field must still render")
	}
}

func TestRampColorBounds(t *testing.T) {
	if c := rampColor(-0.5); c != rampColor(0) {
		t.Errorf("ramp below range = %s, want %s", c, rampColor(0))
	}
	if c := rampColor(1.5); c != rampColor(1) {
		t.Errorf("ramp above range = %s, want %s", c, rampColor(1))
	}
}

func TestProfileSVG(t *testing.T) {
	svg := ProfileSVG([]float64{0, 1, 0.5, 2}, 120, 40, "#00ff88")
	if !strings.Contains(svg, "<path") {
		t.Error("expected a path element")
	}
	if ProfileSVG([]float64{1}, 120, 40, "#fff") != "" {
		t.Error("single point must produce no svg")
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	meta := &storage.RunMetadata{ID: "estimate_1", Source: "estimate", Shape: []int{2, 3}, Subjects: 4, Params: 2}
	table := &storage.ComponentTable{
		Sampling: []float64{0.1, 0.1},
		Session:  []float64{0.2, 0.0},
		Within:   []float64{0.3, 0.1},
		Between:  []float64{0.7, 0.9},
		Total:    []float64{1.0, 1.0},
		Lambda:   []float64{0.3, 0.1},
	}
	shrunk := [][]float64{{1, 2, 3, 4}, {5, 6, 7, 8}}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, meta, table, shrunk); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var got RunBundle
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Meta.ID != "estimate_1" {
		t.Errorf("meta id = %q", got.Meta.ID)
	}
	if len(got.Components.Lambda) != 2 || got.Components.Lambda[1] != 0.1 {
		t.Errorf("lambda round trip = %v", got.Components.Lambda)
	}
	if len(got.Shrunk) != 2 || got.Shrunk[1][3] != 8 {
		t.Errorf("shrunk round trip = %v", got.Shrunk)
	}
}

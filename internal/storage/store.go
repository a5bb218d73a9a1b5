package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/splithalf/internal/shrink"
)

// Store persists estimation runs under a base directory, one subdirectory
// per run with JSON metadata and CSV payloads.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID             string             `json:"id"`
	Source         string             `json:"source"`
	Timestamp      time.Time          `json:"timestamp"`
	Shape          []int              `json:"shape"`
	Subjects       int                `json:"subjects"`
	Params         int                `json:"params"`
	PoolNoise      bool               `json:"pool_noise"`
	ScalarSubjects bool               `json:"scalar_subjects"`
	Seed           uint64             `json:"seed,omitempty"`
	Summary        map[string]float64 `json:"summary"`
}

// ComponentTable is the flattened per-parameter variance decomposition as
// persisted in components.csv.
type ComponentTable struct {
	Sampling []float64
	Session  []float64
	Within   []float64
	Between  []float64
	Total    []float64
	Lambda   []float64
}

var componentHeader = []string{"param", "sampling", "session", "within", "between", "total", "lambda"}

// Save writes one estimation run: metadata.json, components.csv (one row
// per flattened parameter position) and shrunk.csv (parameters x subjects).
// It returns the generated run id.
func (s *Store) Save(source string, seed uint64, opts shrink.Options, res *shrink.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", source, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	c := res.Components
	lambda := c.Lambda.Data()
	summary := map[string]float64{
		"lambda_mean": stat.Mean(lambda, nil),
		"lambda_min":  minOf(lambda),
		"lambda_max":  maxOf(lambda),
	}
	if c.Pooled {
		summary["sampling_pooled"] = c.Sampling.Data()[0]
	}

	meta := RunMetadata{
		ID:             runID,
		Source:         source,
		Timestamp:      time.Now(),
		Shape:          res.Shrunk.Shape(),
		Subjects:       res.Subjects,
		Params:         res.Shrunk.Params(),
		PoolNoise:      opts.PoolNoise,
		ScalarSubjects: opts.ScalarSubjects,
		Seed:           seed,
		Summary:        summary,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := s.writeComponents(runDir, res); err != nil {
		return "", err
	}
	if err := s.writeShrunk(runDir, res); err != nil {
		return "", err
	}

	return runID, nil
}

func (s *Store) writeComponents(runDir string, res *shrink.Result) error {
	file, err := os.Create(filepath.Join(runDir, "components.csv"))
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write(componentHeader); err != nil {
		return err
	}

	c := res.Components
	for j := 0; j < res.Shrunk.Params(); j++ {
		row := []string{
			strconv.Itoa(j),
			formatFloat(c.SamplingAt(j)),
			formatFloat(c.Session.Data()[j]),
			formatFloat(c.Within.Data()[j]),
			formatFloat(c.Between.Data()[j]),
			formatFloat(c.Total.Data()[j]),
			formatFloat(c.Lambda.Data()[j]),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func (s *Store) writeShrunk(runDir string, res *shrink.Result) error {
	file, err := os.Create(filepath.Join(runDir, "shrunk.csv"))
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	n := res.Subjects
	header := make([]string, 0, n+1)
	header = append(header, "param")
	for i := 0; i < n; i++ {
		header = append(header, fmt.Sprintf("s%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for j := 0; j < res.Shrunk.Params(); j++ {
		row := make([]string, 0, n+1)
		row = append(row, strconv.Itoa(j))
		for _, v := range res.Shrunk.SubjectSlice(j) {
			row = append(row, formatFloat(v))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadComponents reads components.csv back into per-parameter slices.
func (s *Store) LoadComponents(runID string) (*ComponentTable, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "components.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return &ComponentTable{}, nil
	}

	t := &ComponentTable{}
	for _, record := range records[1:] {
		if len(record) != len(componentHeader) {
			continue
		}
		vals := make([]float64, 0, len(record)-1)
		ok := true
		for _, field := range record[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				ok = false
				break
			}
			vals = append(vals, v)
		}
		if !ok {
			continue
		}
		t.Sampling = append(t.Sampling, vals[0])
		t.Session = append(t.Session, vals[1])
		t.Within = append(t.Within, vals[2])
		t.Between = append(t.Between, vals[3])
		t.Total = append(t.Total, vals[4])
		t.Lambda = append(t.Lambda, vals[5])
	}

	return t, nil
}

// LoadShrunk reads shrunk.csv back as one row of subject values per
// flattened parameter position.
func (s *Store) LoadShrunk(runID string) ([][]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "shrunk.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return [][]float64{}, nil
	}

	rows := make([][]float64, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 2 {
			continue
		}
		row := make([]float64, 0, len(record)-1)
		for _, field := range record[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				continue
			}
			row = append(row, v)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 12, 64)
}

func minOf(vals []float64) float64 {
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxOf(vals []float64) float64 {
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

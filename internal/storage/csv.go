package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/san-kum/splithalf/internal/narray"
)

// Array CSV errors.
var (
	// ErrNoData indicates a CSV with no numeric rows.
	ErrNoData = errors.New("storage: csv contains no numeric data")

	// ErrRagged indicates rows with differing column counts.
	ErrRagged = errors.New("storage: csv rows have differing lengths")
)

// ReadArray loads a replicate array from CSV laid out as parameters (rows)
// by subjects (columns). An optional single header row of non-numeric
// fields is skipped. The result is rank-2 with shape (params, subjects);
// reshape the leading axis afterwards if the parameters form a matrix.
func ReadArray(path string) (*narray.Dense, error) {
	file, err := os.Open(path)
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

	rows := make([][]float64, 0, len(records))
	for i, record := range records {
		row, err := parseRow(record)
		if err != nil {
			if i == 0 {
				continue // header row
			}
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, ErrNoData
	}

	cols := len(rows[0])
	flat := make([]float64, 0, len(rows)*cols)
	for _, row := range rows {
		if len(row) != cols {
			return nil, ErrRagged
		}
		flat = append(flat, row...)
	}

	return narray.FromSlice([]int{len(rows), cols}, flat)
}

// WriteArray stores an array as CSV, parameters as rows and subjects as
// columns, with an s0..sN header.
func WriteArray(path string, a *narray.Dense) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	n := a.Subjects()
	header := make([]string, n)
	for i := range header {
		header[i] = fmt.Sprintf("s%d", i)
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for j := 0; j < a.Params(); j++ {
		row := make([]string, 0, n)
		for _, v := range a.SubjectSlice(j) {
			row = append(row, formatFloat(v))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func parseRow(record []string) ([]float64, error) {
	if len(record) == 0 {
		return nil, ErrNoData
	}
	row := make([]float64, 0, len(record))
	for _, field := range record {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, err
		}
		row = append(row, v)
	}
	return row, nil
}

package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/splithalf/internal/narray"
)

func TestReadArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x1.csv")
	body := "s0,s1,s2\n1,2,3\n4,5,6\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	a, err := ReadArray(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	shape := a.Shape()
	if shape[0] != 2 || shape[1] != 3 {
		t.Fatalf("expected shape [2 3], got %v", shape)
	}
	if a.SubjectSlice(1)[2] != 6 {
		t.Errorf("expected 6, got %v", a.SubjectSlice(1)[2])
	}
}

func TestReadArrayNoHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x1.csv")
	if err := os.WriteFile(path, []byte("1,2\n3,4\n"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	a, err := ReadArray(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if a.Params() != 2 || a.Subjects() != 2 {
		t.Errorf("unexpected layout: params=%d subjects=%d", a.Params(), a.Subjects())
	}
}

func TestReadArrayErrors(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.csv")
	if err := os.WriteFile(empty, []byte("a,b\n"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := ReadArray(empty); !errors.Is(err, ErrNoData) {
		t.Errorf("expected ErrNoData, got %v", err)
	}

	ragged := filepath.Join(dir, "ragged.csv")
	if err := os.WriteFile(ragged, []byte("1,2,3\n4,5\n"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := ReadArray(ragged); !errors.Is(err, ErrRagged) {
		t.Errorf("expected ErrRagged, got %v", err)
	}
}

func TestWriteReadArrayRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arr.csv")

	a, _ := narray.FromSlice([]int{3, 2}, []float64{1.5, -2, 0, 4.25, 5, 6})
	if err := WriteArray(path, a); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	b, err := ReadArray(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !a.SameShape(b) {
		t.Fatalf("expected shape %v, got %v", a.Shape(), b.Shape())
	}
	for i, v := range a.Data() {
		if b.Data()[i] != v {
			t.Errorf("round trip mismatch at %d: %v vs %v", i, v, b.Data()[i])
		}
	}
}

package narray

import "math"

// Dense is a dense n-dimensional float64 array. The last axis indexes
// subjects; all leading axes jointly index a parameter position. Storage is
// a flat row-major slice, so every parameter's subject values are
// contiguous.
type Dense struct {
	shape []int
	data  []float64
}

// New allocates a zero-filled array with the given shape.
func New(shape ...int) (*Dense, error) {
	size, err := sizeOf(shape)
	if err != nil {
		return nil, err
	}
	return &Dense{
		shape: append([]int(nil), shape...),
		data:  make([]float64, size),
	}, nil
}

// FromSlice builds an array with the given shape from a copy of data.
func FromSlice(shape []int, data []float64) (*Dense, error) {
	size, err := sizeOf(shape)
	if err != nil {
		return nil, err
	}
	if len(data) != size {
		return nil, ErrLengthMismatch
	}
	return &Dense{
		shape: append([]int(nil), shape...),
		data:  append([]float64(nil), data...),
	}, nil
}

func sizeOf(shape []int) (int, error) {
	if len(shape) == 0 {
		return 0, ErrBadShape
	}
	size := 1
	for _, dim := range shape {
		if dim <= 0 {
			return 0, ErrBadShape
		}
		size *= dim
	}
	return size, nil
}

// Shape returns a copy of the array's shape.
func (d *Dense) Shape() []int {
	return append([]int(nil), d.shape...)
}

// Rank returns the number of axes.
func (d *Dense) Rank() int { return len(d.shape) }

// Len returns the total number of elements.
func (d *Dense) Len() int { return len(d.data) }

// Data returns the underlying flat storage. Mutate it only on arrays you
// own; use Clone before writing to a shared array.
func (d *Dense) Data() []float64 { return d.data }

// Clone returns a deep copy.
func (d *Dense) Clone() *Dense {
	return &Dense{
		shape: append([]int(nil), d.shape...),
		data:  append([]float64(nil), d.data...),
	}
}

// SameShape reports whether d and other have identical shapes.
func (d *Dense) SameShape(other *Dense) bool {
	if other == nil || len(d.shape) != len(other.shape) {
		return false
	}
	for i, dim := range d.shape {
		if other.shape[i] != dim {
			return false
		}
	}
	return true
}

// HasNonFinite reports whether any element is NaN or infinite.
func (d *Dense) HasNonFinite() bool {
	for _, v := range d.data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return true
		}
	}
	return false
}

// Subjects returns the size of the trailing (subject) axis.
func (d *Dense) Subjects() int {
	return d.shape[len(d.shape)-1]
}

// Params returns the number of parameter positions, i.e. the product of all
// leading axes. A rank-1 array has a single parameter position.
func (d *Dense) Params() int {
	return len(d.data) / d.Subjects()
}

// ParamShape returns the shape with the subject axis removed. For a rank-1
// array it returns [1], the degenerate single-parameter shape.
func (d *Dense) ParamShape() []int {
	if len(d.shape) == 1 {
		return []int{1}
	}
	return append([]int(nil), d.shape[:len(d.shape)-1]...)
}

// Reshape returns a view-copy of the array with a new shape of the same
// total length. The subject count may change; data order is preserved.
func (d *Dense) Reshape(shape ...int) (*Dense, error) {
	size, err := sizeOf(shape)
	if err != nil {
		return nil, err
	}
	if size != len(d.data) {
		return nil, ErrLengthMismatch
	}
	c := d.Clone()
	c.shape = append([]int(nil), shape...)
	return c, nil
}

// SubjectSlice returns the contiguous subject values for parameter position
// j (flattened row-major over the leading axes). The returned slice aliases
// the array's storage.
func (d *Dense) SubjectSlice(j int) []float64 {
	n := d.Subjects()
	return d.data[j*n : (j+1)*n]
}

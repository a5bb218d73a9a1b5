package narray

import "gonum.org/v1/gonum/floats"

// Add returns a + b elementwise.
func Add(a, b *Dense) (*Dense, error) {
	if err := checkPair(a, b); err != nil {
		return nil, err
	}
	c := a.Clone()
	floats.Add(c.data, b.data)
	return c, nil
}

// Sub returns a - b elementwise.
func Sub(a, b *Dense) (*Dense, error) {
	if err := checkPair(a, b); err != nil {
		return nil, err
	}
	c := a.Clone()
	floats.Sub(c.data, b.data)
	return c, nil
}

// Scale returns a * f elementwise.
func Scale(a *Dense, f float64) (*Dense, error) {
	if a == nil {
		return nil, ErrNilArray
	}
	c := a.Clone()
	floats.Scale(f, c.data)
	return c, nil
}

func checkPair(a, b *Dense) error {
	if a == nil || b == nil {
		return ErrNilArray
	}
	if !a.SameShape(b) {
		return ErrShapeMismatch
	}
	return nil
}

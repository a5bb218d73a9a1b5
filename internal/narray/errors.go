package narray

import "errors"

// Domain errors for array construction and arithmetic.
var (
	// ErrBadShape indicates a shape with no axes or a non-positive dimension.
	ErrBadShape = errors.New("narray: shape must have at least one positive dimension")

	// ErrLengthMismatch indicates data whose length does not match the shape.
	ErrLengthMismatch = errors.New("narray: data length does not match shape")

	// ErrShapeMismatch indicates operands with different shapes.
	ErrShapeMismatch = errors.New("narray: operand shapes differ")

	// ErrNilArray indicates a nil operand.
	ErrNilArray = errors.New("narray: nil array")
)

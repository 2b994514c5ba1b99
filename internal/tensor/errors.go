package tensor

import "errors"

// Common errors.
var (
	ErrInvalidShape      = errors.New("tensor: invalid shape")
	ErrDimensionMismatch = errors.New("tensor: dimension mismatch")
	ErrEmptyRow          = errors.New("tensor: argmax of empty row")
	ErrRowRange          = errors.New("tensor: row range out of bounds")
)

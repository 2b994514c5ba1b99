package tensor

import "fmt"

// Shape represents the dimensions of a row-major matrix.
type Shape struct {
	Rows int
	Cols int
}

// NumElements returns the total number of elements.
func (s Shape) NumElements() int {
	return s.Rows * s.Cols
}

// Validate checks that neither dimension is negative.
// Zero rows or zero columns are legal: an empty partition produces a 0×k view.
func (s Shape) Validate() error {
	if s.Rows < 0 {
		return fmt.Errorf("%w: rows %d (must be >= 0)", ErrInvalidShape, s.Rows)
	}
	if s.Cols < 0 {
		return fmt.Errorf("%w: cols %d (must be >= 0)", ErrInvalidShape, s.Cols)
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	return s.Rows == other.Rows && s.Cols == other.Cols
}

// String returns the shape as "[rows,cols]".
func (s Shape) String() string {
	return fmt.Sprintf("[%d,%d]", s.Rows, s.Cols)
}

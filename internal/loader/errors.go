package loader

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrIO            = errors.New("loader: i/o failure")
	ErrNotFound      = errors.New("loader: data directory not found")
	ErrMissingValue  = errors.New("missing value")
	ErrMalformed     = errors.New("malformed value")
	ErrShortFile     = errors.New("file ended early")
	ErrInvalidBundle = errors.New("loader: invalid parameter bundle")
)

// RowError locates one recovered problem in a CSV file.
// Row and Col are 0-based; Col is -1 when the whole row is affected.
type RowError struct {
	Row int
	Col int
	Err error
}

func (e *RowError) Error() string {
	if e.Col < 0 {
		return fmt.Sprintf("row %d: %v", e.Row, e.Err)
	}
	return fmt.Sprintf("row %d, col %d: %v", e.Row, e.Col, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

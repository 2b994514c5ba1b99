package tensor

import (
	"fmt"
	"strings"
)

// Matrix is a dense float64 matrix with flat row-major storage.
//
// Element (i, j) lives at data[i*cols+j]. Views produced by Slice share
// the backing storage of their parent, so a view over rows [start, end)
// observes and mutates exactly those rows.
type Matrix struct {
	rows int
	cols int
	data []float64
}

// Vector is a 1-D float64 sequence (biases, labels).
type Vector []float64

// Len returns the number of elements.
func (v Vector) Len() int {
	return len(v)
}

// Clone returns a copy of the vector.
func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	copy(out, v)
	return out
}

// New creates a zero-filled rows×cols matrix.
func New(rows, cols int) (*Matrix, error) {
	shape := Shape{Rows: rows, Cols: cols}
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	return &Matrix{
		rows: rows,
		cols: cols,
		data: make([]float64, shape.NumElements()),
	}, nil
}

// FromSlice wraps data as a rows×cols matrix without copying.
func FromSlice(rows, cols int, data []float64) (*Matrix, error) {
	shape := Shape{Rows: rows, Cols: cols}
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if len(data) != shape.NumElements() {
		return nil, fmt.Errorf("%w: shape %v requires %d elements, got %d",
			ErrDimensionMismatch, shape, shape.NumElements(), len(data))
	}
	return &Matrix{rows: rows, cols: cols, data: data}, nil
}

// FromRows copies a slice of equally sized rows into a new matrix.
func FromRows(rows [][]float64) (*Matrix, error) {
	if len(rows) == 0 {
		return New(0, 0)
	}
	cols := len(rows[0])
	m, err := New(len(rows), cols)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d",
				ErrDimensionMismatch, i, len(row), cols)
		}
		copy(m.data[i*cols:(i+1)*cols], row)
	}
	return m, nil
}

// Identity returns an n×n identity matrix.
func Identity(n int) (*Matrix, error) {
	m, err := New(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}
	return m, nil
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int {
	return m.rows
}

// Cols returns the number of columns.
func (m *Matrix) Cols() int {
	return m.cols
}

// Shape returns the matrix dimensions.
func (m *Matrix) Shape() Shape {
	return Shape{Rows: m.rows, Cols: m.cols}
}

// Data returns the flat row-major backing slice.
// Used by backends for low-level kernels.
func (m *Matrix) Data() []float64 {
	return m.data
}

// Row returns row i as a slice aliasing the matrix storage.
func (m *Matrix) Row(i int) []float64 {
	return m.data[i*m.cols : (i+1)*m.cols]
}

// At returns element (i, j). Panics on out-of-range indices like a slice.
func (m *Matrix) At(i, j int) float64 {
	return m.data[i*m.cols+j]
}

// Set assigns element (i, j).
func (m *Matrix) Set(i, j int, v float64) {
	m.data[i*m.cols+j] = v
}

// Slice returns a no-copy view over rows [start, end).
// start == end yields a valid 0×cols view.
func (m *Matrix) Slice(start, end int) (*Matrix, error) {
	if start < 0 || end < start || end > m.rows {
		return nil, fmt.Errorf("%w: [%d,%d) of %d rows", ErrRowRange, start, end, m.rows)
	}
	return &Matrix{
		rows: end - start,
		cols: m.cols,
		data: m.data[start*m.cols : end*m.cols : end*m.cols],
	}, nil
}

// Reshape reinterprets the first rows*cols elements of the backing storage.
// It is used to carve differently shaped intermediates out of one scratch
// buffer; the capacity must be large enough.
func (m *Matrix) Reshape(rows, cols int) (*Matrix, error) {
	shape := Shape{Rows: rows, Cols: cols}
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if shape.NumElements() > cap(m.data) {
		return nil, fmt.Errorf("%w: reshape to %v exceeds capacity %d",
			ErrDimensionMismatch, shape, cap(m.data))
	}
	return &Matrix{rows: rows, cols: cols, data: m.data[:shape.NumElements()]}, nil
}

// Clone returns a deep copy.
func (m *Matrix) Clone() *Matrix {
	data := make([]float64, len(m.data))
	copy(data, m.data)
	return &Matrix{rows: m.rows, cols: m.cols, data: data}
}

// Equal reports whether both matrices have the same shape and bit-identical values.
func (m *Matrix) Equal(other *Matrix) bool {
	if !m.Shape().Equal(other.Shape()) {
		return false
	}
	for i, v := range m.data {
		if v != other.data[i] {
			return false
		}
	}
	return true
}

// String renders the matrix one row per line.
func (m *Matrix) String() string {
	var sb strings.Builder
	for i := 0; i < m.rows; i++ {
		sb.WriteString("[")
		for j, v := range m.Row(i) {
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%g", v)
		}
		sb.WriteString("]\n")
	}
	return sb.String()
}

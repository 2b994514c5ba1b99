// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for matrices in parinfer.
package tensor

import (
	"github.com/born-ml/parinfer/internal/tensor"
)

// Matrix is a dense float64 matrix with flat row-major storage.
type Matrix = tensor.Matrix

// Vector is a 1-D float64 sequence (biases, labels).
type Vector = tensor.Vector

// Shape represents the dimensions of a matrix.
type Shape = tensor.Shape

// Common errors.
var (
	ErrInvalidShape      = tensor.ErrInvalidShape
	ErrDimensionMismatch = tensor.ErrDimensionMismatch
	ErrEmptyRow          = tensor.ErrEmptyRow
	ErrRowRange          = tensor.ErrRowRange
)

// New creates a zero-filled rows×cols matrix.
func New(rows, cols int) (*Matrix, error) {
	return tensor.New(rows, cols)
}

// FromSlice wraps data as a rows×cols matrix without copying.
func FromSlice(rows, cols int, data []float64) (*Matrix, error) {
	return tensor.FromSlice(rows, cols, data)
}

// FromRows copies equally sized rows into a new matrix.
func FromRows(rows [][]float64) (*Matrix, error) {
	return tensor.FromRows(rows)
}

// Identity returns an n×n identity matrix.
func Identity(n int) (*Matrix, error) {
	return tensor.Identity(n)
}

// AddBiasRows adds bias[j] to every m[i][j] in place.
func AddBiasRows(m *Matrix, bias Vector) error {
	return tensor.AddBiasRows(m, bias)
}

// ReLU replaces negative entries with 0 in place.
func ReLU(m *Matrix) {
	tensor.ReLU(m)
}

// ReLUCopy returns max(0, x) element-wise without touching m.
func ReLUCopy(m *Matrix) *Matrix {
	return tensor.ReLUCopy(m)
}

// ArgmaxRow returns the index of the first maximal element of row.
func ArgmaxRow(row []float64) (int, error) {
	return tensor.ArgmaxRow(row)
}

// ArgmaxRows writes the argmax of every row of m into dst.
func ArgmaxRows(m *Matrix, dst []int) error {
	return tensor.ArgmaxRows(m, dst)
}

// Package blas implements a matmul backend on top of gonum's BLAS-backed
// dense matrices.
//
// Results agree with the reference cpu backend to within floating point
// rounding, but gonum blocks the inner dimension, so outputs are not
// guaranteed to be bit-identical to the cpu backend.
package blas

import (
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/parinfer/internal/tensor"
)

// Name is the configuration key for this backend.
const Name = "blas"

// Backend wraps gonum's mat.Dense multiplication.
type Backend struct{}

var _ tensor.Backend = (*Backend)(nil)

// New creates a new gonum backend.
func New() *Backend {
	return &Backend{}
}

// Name returns the backend name.
func (b *Backend) Name() string {
	return Name
}

// MatMulInto computes dst = a @ b through mat.Dense.Mul.
// The gonum matrices wrap the existing row-major storage without copying.
func (b *Backend) MatMulInto(dst, x, w *tensor.Matrix) error {
	if err := tensor.CheckMatMul(dst, x, w); err != nil {
		return err
	}
	// gonum rejects zero-length dimensions.
	if dst.Rows() == 0 || dst.Cols() == 0 {
		return nil
	}
	if x.Cols() == 0 {
		clear(dst.Data())
		return nil
	}

	out := mat.NewDense(dst.Rows(), dst.Cols(), dst.Data())
	lhs := mat.NewDense(x.Rows(), x.Cols(), x.Data())
	rhs := mat.NewDense(w.Rows(), w.Cols(), w.Data())
	out.Mul(lhs, rhs)
	return nil
}

package cpu

import "github.com/born-ml/parinfer/internal/tensor"

// MatMul performs matrix multiplication.
// (M, K) @ (K, N) -> (M, N), fails with tensor.ErrDimensionMismatch when
// the inner dimensions differ.
func MatMul(a, b *tensor.Matrix) (*tensor.Matrix, error) {
	if err := tensor.CheckMatMul(nil, a, b); err != nil {
		return nil, err
	}
	result, err := tensor.New(a.Rows(), b.Cols())
	if err != nil {
		return nil, err
	}
	matmulFloat64(result.Data(), a.Data(), b.Data(), a.Rows(), a.Cols(), b.Cols())
	return result, nil
}

// MatMulInto is MatMul writing into caller-owned storage.
func MatMulInto(dst, a, b *tensor.Matrix) error {
	if err := tensor.CheckMatMul(dst, a, b); err != nil {
		return err
	}
	matmulFloat64(dst.Data(), a.Data(), b.Data(), a.Rows(), a.Cols(), b.Cols())
	return nil
}

// matmulFloat64 computes C[i,j] = sum_k A[i,k] * B[k,j].
// The k loop always runs 0..K-1 so every output cell sees the same
// summation order no matter which rows share the call.
func matmulFloat64(c, a, b []float64, m, k, n int) {
	for i := 0; i < m; i++ {
		aRow := a[i*k : (i+1)*k]
		for j := 0; j < n; j++ {
			sum := float64(0)
			for kIdx, av := range aRow {
				sum += av * b[kIdx*n+j]
			}
			c[i*n+j] = sum
		}
	}
}

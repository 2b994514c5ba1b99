package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/parinfer/internal/tensor"
)

func TestMatMul_Identity(t *testing.T) {
	x, err := tensor.FromRows([][]float64{
		{1.5, -2},
		{0, 3.25},
		{7, 8},
	})
	require.NoError(t, err)
	id, err := tensor.Identity(2)
	require.NoError(t, err)

	got, err := MatMul(x, id)
	require.NoError(t, err)
	assert.True(t, got.Equal(x), "x @ I should equal x, got\n%s", got)
}

func TestMatMul_Values(t *testing.T) {
	a, _ := tensor.FromRows([][]float64{
		{1, 2, 3},
		{4, 5, 6},
	})
	b, _ := tensor.FromRows([][]float64{
		{7, 8},
		{9, 10},
		{11, 12},
	})

	got, err := MatMul(a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{58, 64, 139, 154}, got.Data())
}

func TestMatMul_DimensionMismatch(t *testing.T) {
	a, _ := tensor.New(2, 3)
	b, _ := tensor.New(2, 3)

	_, err := MatMul(a, b)
	require.ErrorIs(t, err, tensor.ErrDimensionMismatch)
}

func TestMatMulInto(t *testing.T) {
	a, _ := tensor.FromRows([][]float64{{1, 2}})
	b, _ := tensor.FromRows([][]float64{{3}, {4}})
	dst, _ := tensor.New(1, 1)

	backend := New()
	assert.Equal(t, "cpu", backend.Name())
	require.NoError(t, backend.MatMulInto(dst, a, b))
	assert.Equal(t, 11.0, dst.At(0, 0))

	wrong, _ := tensor.New(2, 1)
	require.ErrorIs(t, backend.MatMulInto(wrong, a, b), tensor.ErrDimensionMismatch)
}

func TestMatMul_EmptyRows(t *testing.T) {
	a, _ := tensor.New(0, 3)
	b, _ := tensor.New(3, 2)

	got, err := MatMul(a, b)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{Rows: 0, Cols: 2}, got.Shape())
}

func BenchmarkMatMul(b *testing.B) {
	x, _ := tensor.New(64, 784)
	w, _ := tensor.New(784, 200)
	dst, _ := tensor.New(64, 200)
	for i := range x.Data() {
		x.Data()[i] = float64(i%7) * 0.1
	}
	for i := range w.Data() {
		w.Data()[i] = float64(i%5) * 0.01
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = MatMulInto(dst, x, w)
	}
}

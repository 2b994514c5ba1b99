package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReLU(t *testing.T) {
	m, err := FromRows([][]float64{{-1.0, 0.0, 2.5}})
	require.NoError(t, err)

	cp := ReLUCopy(m)
	assert.Equal(t, []float64{0.0, 0.0, 2.5}, cp.Row(0))
	assert.Equal(t, []float64{-1.0, 0.0, 2.5}, m.Row(0), "ReLUCopy must not touch its input")

	ReLU(m)
	assert.Equal(t, []float64{0.0, 0.0, 2.5}, m.Row(0))
	assert.True(t, m.Equal(cp))
}

func TestArgmaxRow_FirstMaxWins(t *testing.T) {
	idx, err := ArgmaxRow([]float64{0.1, 0.9, 0.9})
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	idx, err = ArgmaxRow([]float64{3, 3, 3})
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	idx, err = ArgmaxRow([]float64{-5, -2, -7})
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
}

func TestArgmaxRow_Empty(t *testing.T) {
	_, err := ArgmaxRow(nil)
	require.ErrorIs(t, err, ErrEmptyRow)

	m, err := New(2, 0)
	require.NoError(t, err)
	err = ArgmaxRows(m, make([]int, 2))
	require.ErrorIs(t, err, ErrEmptyRow)
}

func TestArgmaxRows(t *testing.T) {
	m, err := FromRows([][]float64{
		{0, 1, 0},
		{5, 1, 0},
		{0, 0, 2},
	})
	require.NoError(t, err)

	dst := make([]int, 3)
	require.NoError(t, ArgmaxRows(m, dst))
	assert.Equal(t, []int{1, 0, 2}, dst)

	require.ErrorIs(t, ArgmaxRows(m, make([]int, 2)), ErrDimensionMismatch)
}

func TestAddBiasRows(t *testing.T) {
	m, err := FromRows([][]float64{
		{1, 2},
		{3, 4},
	})
	require.NoError(t, err)

	require.NoError(t, AddBiasRows(m, Vector{10, -1}))
	assert.Equal(t, []float64{11, 1, 13, 3}, m.Data())

	err = AddBiasRows(m, Vector{1, 2, 3})
	require.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestCheckMatMul(t *testing.T) {
	a, _ := New(2, 3)
	b, _ := New(3, 4)
	dst, _ := New(2, 4)
	assert.NoError(t, CheckMatMul(dst, a, b))
	assert.NoError(t, CheckMatMul(nil, a, b))

	assert.ErrorIs(t, CheckMatMul(nil, b, a), ErrDimensionMismatch)

	wrong, _ := New(4, 2)
	assert.ErrorIs(t, CheckMatMul(wrong, a, b), ErrDimensionMismatch)
}

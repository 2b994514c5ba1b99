package tensor

import "fmt"

// AddBiasRows adds bias[j] to every m[i][j] in place.
func AddBiasRows(m *Matrix, bias Vector) error {
	if len(bias) != m.cols {
		return fmt.Errorf("%w: bias length %d, matrix %v", ErrDimensionMismatch, len(bias), m.Shape())
	}
	for i := 0; i < m.rows; i++ {
		row := m.data[i*m.cols : (i+1)*m.cols]
		for j, b := range bias {
			row[j] += b
		}
	}
	return nil
}

// ReLU replaces negative entries with 0 in place.
func ReLU(m *Matrix) {
	for i, v := range m.data {
		if v < 0 {
			m.data[i] = 0
		}
	}
}

// ReLUCopy returns max(0, x) element-wise without touching m.
func ReLUCopy(m *Matrix) *Matrix {
	out := m.Clone()
	ReLU(out)
	return out
}

// ArgmaxRow returns the index of the first strictly maximal element.
// Ties resolve to the lowest index.
func ArgmaxRow(row []float64) (int, error) {
	if len(row) == 0 {
		return 0, ErrEmptyRow
	}
	maxIdx := 0
	maxVal := row[0]
	for j := 1; j < len(row); j++ {
		if row[j] > maxVal {
			maxVal = row[j]
			maxIdx = j
		}
	}
	return maxIdx, nil
}

// ArgmaxRows writes ArgmaxRow(m.Row(i)) into dst[i] for every row.
func ArgmaxRows(m *Matrix, dst []int) error {
	if len(dst) != m.rows {
		return fmt.Errorf("%w: %d destinations for %d rows", ErrDimensionMismatch, len(dst), m.rows)
	}
	for i := 0; i < m.rows; i++ {
		idx, err := ArgmaxRow(m.Row(i))
		if err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
		dst[i] = idx
	}
	return nil
}

// CheckMatMul validates shapes for dst = a @ b.
// dst may be nil when the caller allocates the result itself.
func CheckMatMul(dst, a, b *Matrix) error {
	if a.cols != b.rows {
		return fmt.Errorf("%w: matmul %v @ %v", ErrDimensionMismatch, a.Shape(), b.Shape())
	}
	if dst != nil && (dst.rows != a.rows || dst.cols != b.cols) {
		return fmt.Errorf("%w: matmul %v @ %v into %v", ErrDimensionMismatch, a.Shape(), b.Shape(), dst.Shape())
	}
	return nil
}

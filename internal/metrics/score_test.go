package metrics

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccuracy(t *testing.T) {
	tests := []struct {
		name   string
		pred   []int
		labels []float64
		want   float64
	}{
		{"all correct", []int{0, 2, 1, 3}, []float64{0, 2, 1, 3}, 100},
		{"all wrong", []int{0, 2, 1, 3}, []float64{1, 0, 0, 0}, 0},
		{"half", []int{1, 2, 3, 4}, []float64{1, 2, 0, 0}, 50},
		{"rounded labels", []int{7, 3}, []float64{6.9999, 3.2}, 100},
		{"empty", nil, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Accuracy(tt.pred, tt.labels)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestAccuracy_LengthMismatch(t *testing.T) {
	_, err := Accuracy([]int{1, 2}, []float64{1})
	require.ErrorIs(t, err, ErrLengthMismatch)
}

func TestErrorLog_Bounded(t *testing.T) {
	pred := []int{1, 1, 1, 1, 1, 1}
	labels := []float64{0, 2, 1, 3, 4, 5}

	r, err := ErrorLog(pred, labels, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, r.Total)
	assert.Equal(t, 3, r.Omitted)
	assert.Equal(t, 6, r.Samples)
	require.Len(t, r.Entries, 2)
	assert.Equal(t, Mismatch{Line: 1, Index: 0, Predicted: 1, Actual: 0}, r.Entries[0])
	assert.Equal(t, Mismatch{Line: 2, Index: 1, Predicted: 1, Actual: 2}, r.Entries[1])
	assert.InDelta(t, 83.333, r.ErrorRate(), 1e-3)

	var buf bytes.Buffer
	n, err := r.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	out := buf.String()
	assert.Contains(t, out, "[Line     1] Predicted: 1, Actual: 0\n")
	assert.Contains(t, out, "[Line     2] Predicted: 1, Actual: 2\n")
	assert.NotContains(t, out, "[Line     4]")
	assert.Contains(t, out, "... and 3 more not shown\n")
	assert.Contains(t, out, "Summary: 5 errors out of 6 samples (83.33% error rate)")
}

func TestErrorLog_NoMismatches(t *testing.T) {
	r, err := ErrorLog([]int{4, 5}, []float64{4, 5}, 10)
	require.NoError(t, err)
	assert.Empty(t, r.Entries)
	assert.Zero(t, r.Total)
	assert.Zero(t, r.ErrorRate())

	var buf bytes.Buffer
	_, err = r.WriteTo(&buf)
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "more not shown")
}

func TestErrorLog_ZeroLimit(t *testing.T) {
	r, err := ErrorLog([]int{1, 1}, []float64{0, 0}, -1)
	require.NoError(t, err)
	assert.Empty(t, r.Entries)
	assert.Equal(t, 2, r.Omitted)
}

func TestErrorLog_LengthMismatch(t *testing.T) {
	_, err := ErrorLog([]int{1}, nil, 5)
	require.ErrorIs(t, err, ErrLengthMismatch)
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("closed pipe") }

func TestReport_WriteToError(t *testing.T) {
	r := Report{Samples: 1}
	_, err := r.WriteTo(failWriter{})
	require.EqualError(t, err, "closed pipe")
}

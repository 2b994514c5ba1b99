package metrics

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimings_RecordOrderAndTotal(t *testing.T) {
	var tm Timings
	tm.Record("Data Loading", 2*time.Second)
	tm.Record("Forward Pass", 500*time.Millisecond)
	tm.Record("Data Loading", time.Second)

	stages := tm.Stages()
	require.Len(t, stages, 2)
	assert.Equal(t, Stage{Name: "Data Loading", Duration: 3 * time.Second}, stages[0])
	assert.Equal(t, "Forward Pass", stages[1].Name)
	assert.Equal(t, 3500*time.Millisecond, tm.Total())
}

func TestTimings_Time(t *testing.T) {
	var tm Timings
	boom := errors.New("boom")
	err := tm.Time("Accuracy Calculation", func() error { return boom })
	require.ErrorIs(t, err, boom)
	require.Len(t, tm.Stages(), 1)
	assert.Equal(t, "Accuracy Calculation", tm.Stages()[0].Name)
}

func TestTimings_WriteTo(t *testing.T) {
	var tm Timings
	tm.Record("Data Loading", 1250*time.Millisecond)
	tm.Record("Forward Pass", 250*time.Millisecond)

	var buf bytes.Buffer
	_, err := tm.WriteTo(&buf)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 8)
	assert.Equal(t, "│ Data Loading                        │      1.2500 s │", lines[3])
	assert.Equal(t, "│ Forward Pass                        │      0.2500 s │", lines[4])
	assert.Equal(t, "│ Total Time                          │      1.5000 s │", lines[6])
	for _, l := range lines {
		assert.Equal(t, 55, len([]rune(l)), l)
	}
}

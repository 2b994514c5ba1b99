// Package metrics scores predictions against labels and reports stage timings.
package metrics

import (
	"errors"
	"fmt"
	"io"
	"math"
)

// ErrLengthMismatch is returned when predictions and labels differ in length.
var ErrLengthMismatch = errors.New("metrics: predictions and labels differ in length")

// Mismatch is one misclassified sample.
type Mismatch struct {
	Line      int // 1-based line in the labels file.
	Index     int
	Predicted int
	Actual    float64
}

// Report is the bounded error log of one scored run.
type Report struct {
	Entries []Mismatch
	Total   int // All mismatches, logged or not.
	Omitted int // Total - len(Entries).
	Samples int
}

// label converts a stored label to a class index.
func label(v float64) int {
	return int(math.Round(v))
}

// Accuracy returns the percentage of predictions equal to their rounded label.
// An empty set scores 0.
func Accuracy(pred []int, labels []float64) (float64, error) {
	if len(pred) != len(labels) {
		return 0, fmt.Errorf("%w: %d predictions, %d labels", ErrLengthMismatch, len(pred), len(labels))
	}
	if len(pred) == 0 {
		return 0, nil
	}
	correct := 0
	for i, p := range pred {
		if p == label(labels[i]) {
			correct++
		}
	}
	return float64(correct) / float64(len(pred)) * 100, nil
}

// ErrorLog collects mismatches in index order, keeping at most maxToLog entries.
// A negative maxToLog is treated as 0.
func ErrorLog(pred []int, labels []float64, maxToLog int) (Report, error) {
	if len(pred) != len(labels) {
		return Report{}, fmt.Errorf("%w: %d predictions, %d labels", ErrLengthMismatch, len(pred), len(labels))
	}
	maxToLog = max(maxToLog, 0)

	r := Report{Samples: len(pred)}
	for i, p := range pred {
		if p == label(labels[i]) {
			continue
		}
		r.Total++
		if len(r.Entries) < maxToLog {
			r.Entries = append(r.Entries, Mismatch{
				Line:      i + 1,
				Index:     i,
				Predicted: p,
				Actual:    labels[i],
			})
		}
	}
	r.Omitted = r.Total - len(r.Entries)
	return r, nil
}

// ErrorRate returns the mismatch percentage.
func (r Report) ErrorRate() float64 {
	if r.Samples == 0 {
		return 0
	}
	return float64(r.Total) / float64(r.Samples) * 100
}

// WriteTo renders the log in the program's text format.
func (r Report) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	fmt.Fprintln(cw, "=== Error Log: Model Prediction Failures ===")
	fmt.Fprintln(cw, "Format: [Line Number] Predicted: X, Actual: Y")
	fmt.Fprintln(cw, "----------------------------------------")
	for _, m := range r.Entries {
		fmt.Fprintf(cw, "[Line %5d] Predicted: %d, Actual: %.0f\n", m.Line, m.Predicted, m.Actual)
	}
	if r.Omitted > 0 {
		fmt.Fprintf(cw, "... and %d more not shown\n", r.Omitted)
	}
	fmt.Fprintf(cw, "\nSummary: %d errors out of %d samples (%.2f%% error rate)\n",
		r.Total, r.Samples, r.ErrorRate())
	return cw.n, cw.err
}

// countingWriter keeps the first write error and the byte count.
type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (c *countingWriter) Write(p []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	n, err := c.w.Write(p)
	c.n += int64(n)
	c.err = err
	return n, err
}

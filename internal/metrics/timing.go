package metrics

import (
	"fmt"
	"io"
	"time"
)

// Stage is one timed step of a run.
type Stage struct {
	Name     string
	Duration time.Duration
}

// Timings records stage durations in the order they were added.
type Timings struct {
	stages []Stage
}

// Record appends a stage. Recording the same name again adds to it.
func (t *Timings) Record(name string, d time.Duration) {
	for i := range t.stages {
		if t.stages[i].Name == name {
			t.stages[i].Duration += d
			return
		}
	}
	t.stages = append(t.stages, Stage{Name: name, Duration: d})
}

// Time runs fn and records its wall-clock duration under name.
func (t *Timings) Time(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	t.Record(name, time.Since(start))
	return err
}

// Stages returns a copy of the recorded stages.
func (t *Timings) Stages() []Stage {
	out := make([]Stage, len(t.stages))
	copy(out, t.stages)
	return out
}

// Total returns the sum of all stages.
func (t *Timings) Total() time.Duration {
	var total time.Duration
	for _, s := range t.stages {
		total += s.Duration
	}
	return total
}

// WriteTo renders the stages as a box table followed by the total.
func (t *Timings) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	fmt.Fprintln(cw, "┌─────────────────────────────────────┬───────────────┐")
	fmt.Fprintln(cw, "│ Operation                           │   Time (s)    │")
	fmt.Fprintln(cw, "├─────────────────────────────────────┼───────────────┤")
	for _, s := range t.stages {
		fmt.Fprintf(cw, "│ %-36s│ %11.4f s │\n", s.Name, s.Duration.Seconds())
	}
	fmt.Fprintln(cw, "├─────────────────────────────────────┼───────────────┤")
	fmt.Fprintf(cw, "│ %-36s│ %11.4f s │\n", "Total Time", t.Total().Seconds())
	fmt.Fprintln(cw, "└─────────────────────────────────────┴───────────────┘")
	return cw.n, cw.err
}

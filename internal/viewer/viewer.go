// Package viewer browses samples as ASCII images in the terminal.
//
// Commands are read one per line:
//
//	n, next, <enter>   next sample
//	p, prev            previous sample
//	q, quit, esc       close the viewer
//
// Navigation wraps around at both ends. The viewer only reads the sample
// matrix.
package viewer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/parinfer/internal/tensor"
)

// ErrGeometry is returned when width×height does not match the sample width.
var ErrGeometry = errors.New("viewer: image geometry does not match sample width")

// Event is one navigation command.
type Event int

// Events.
const (
	EventNone Event = iota
	EventNext
	EventPrev
	EventQuit
)

// ParseEvent maps a command line to an Event.
func ParseEvent(line string) Event {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "", "n", "next", "right":
		return EventNext
	case "p", "prev", "left":
		return EventPrev
	case "q", "quit", "esc", "exit":
		return EventQuit
	default:
		return EventNone
	}
}

// Navigator tracks the current sample index.
type Navigator struct {
	index int
	count int
}

// NewNavigator starts at sample 0 of count.
func NewNavigator(count int) *Navigator {
	return &Navigator{count: count}
}

// Index returns the current sample.
func (n *Navigator) Index() int {
	return n.index
}

// Apply moves according to ev and reports whether the viewer should close.
func (n *Navigator) Apply(ev Event) bool {
	if n.count == 0 {
		return true
	}
	switch ev {
	case EventNext:
		n.index = (n.index + 1) % n.count
	case EventPrev:
		n.index = (n.index - 1 + n.count) % n.count
	case EventQuit:
		return true
	}
	return false
}

// ramp goes from dark to bright.
const ramp = " .:-=+*#%@"

// Render draws one sample as a width×height character image, two
// characters per pixel.
func Render(w io.Writer, sample []float64, width, height int) error {
	if width*height != len(sample) {
		return fmt.Errorf("%w: %dx%d for %d values", ErrGeometry, width, height, len(sample))
	}
	if len(sample) == 0 {
		return nil
	}
	lo, hi := floats.Min(sample), floats.Max(sample)
	span := hi - lo

	var sb strings.Builder
	for y := 0; y < height; y++ {
		for _, v := range sample[y*width : (y+1)*width] {
			level := 0
			if span > 0 {
				level = int(math.Round((v - lo) / span * float64(len(ramp)-1)))
			}
			sb.WriteByte(ramp[level])
			sb.WriteByte(ramp[level])
		}
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// Viewer shows the samples of a data set with their labels.
type Viewer struct {
	Samples *tensor.Matrix
	Labels  tensor.Vector // Optional.
	Width   int
	Height  int
}

// show draws sample i with its header.
func (v *Viewer) show(out io.Writer, i int) error {
	header := fmt.Sprintf("Image %d/%d", i+1, v.Samples.Rows())
	if i < len(v.Labels) {
		header += fmt.Sprintf(" - label %.0f", v.Labels[i])
	}
	if _, err := fmt.Fprintf(out, "%s - n: next, p: prev, q: quit\n", header); err != nil {
		return err
	}
	return Render(out, v.Samples.Row(i), v.Width, v.Height)
}

// Run shows the first sample and then follows commands from in until quit
// or end of input. It returns the index that was showing when it closed.
func (v *Viewer) Run(in io.Reader, out io.Writer) (int, error) {
	if v.Width*v.Height != v.Samples.Cols() {
		return 0, fmt.Errorf("%w: %dx%d for %d columns", ErrGeometry, v.Width, v.Height, v.Samples.Cols())
	}
	nav := NewNavigator(v.Samples.Rows())
	if v.Samples.Rows() == 0 {
		return 0, nil
	}
	if err := v.show(out, nav.Index()); err != nil {
		return nav.Index(), err
	}

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		ev := ParseEvent(sc.Text())
		if ev == EventNone {
			continue
		}
		if nav.Apply(ev) {
			return nav.Index(), nil
		}
		if err := v.show(out, nav.Index()); err != nil {
			return nav.Index(), err
		}
	}
	return nav.Index(), sc.Err()
}

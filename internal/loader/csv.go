package loader

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/born-ml/parinfer/internal/tensor"
)

// FillPolicy names the sentinel written in place of absent or unparseable fields.
type FillPolicy struct {
	Name  string
	Value float64
}

// Fill policies.
var (
	DefaultFill = FillPolicy{Name: "zero", Value: 0}
	LegacyFill  = FillPolicy{Name: "legacy", Value: -1}
)

// ParseFillPolicy resolves a policy by name. The empty name is DefaultFill.
func ParseFillPolicy(name string) (FillPolicy, error) {
	switch name {
	case "", DefaultFill.Name:
		return DefaultFill, nil
	case LegacyFill.Name:
		return LegacyFill, nil
	default:
		return FillPolicy{}, fmt.Errorf("loader: unknown fill policy %q (want %q or %q)",
			name, DefaultFill.Name, LegacyFill.Name)
	}
}

// MaxIssues bounds the RowErrors kept in Stats.
const MaxIssues = 16

const maxLineBytes = 1 << 20

// Stats counts what was recovered while reading one file.
type Stats struct {
	Rows      int // rows present in the file
	ShortRows int // rows filled entirely because the file ended early
	Missing   int // absent fields
	Malformed int // fields that failed to parse
	Issues    []*RowError
}

// Clean reports whether every requested value was read from the file.
func (s Stats) Clean() bool {
	return s.ShortRows == 0 && s.Missing == 0 && s.Malformed == 0
}

func (s *Stats) note(e *RowError) {
	if len(s.Issues) < MaxIssues {
		s.Issues = append(s.Issues, e)
	}
}

func isSeparator(r rune) bool {
	return r == ' ' || r == ',' || r == '\t' || r == '\r'
}

// fields splits a line on spaces, commas and tabs. Empty fields are dropped.
func fields(line string) []string {
	return strings.FieldsFunc(line, isSeparator)
}

// ReadMatrix reads rows lines of cols fields each.
//
// Absent fields, unparseable fields and rows past the end of the input are
// written as fill.Value and counted in Stats. Extra fields and lines are
// ignored. A failing reader is an error, and so is a line longer than
// 1 MiB, which is far beyond the 784 fields of a sample row.
func ReadMatrix(r io.Reader, rows, cols int, fill FillPolicy) (*tensor.Matrix, Stats, error) {
	var stats Stats
	m, err := tensor.New(rows, cols)
	if err != nil {
		return nil, stats, err
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineBytes)

	row := 0
	for ; row < rows && sc.Scan(); row++ {
		stats.Rows++
		dst := m.Row(row)
		toks := fields(sc.Text())
		for col := range dst {
			if col >= len(toks) {
				dst[col] = fill.Value
				stats.Missing++
				stats.note(&RowError{Row: row, Col: col, Err: ErrMissingValue})
				continue
			}
			v, err := strconv.ParseFloat(toks[col], 64)
			if err != nil {
				dst[col] = fill.Value
				stats.Malformed++
				stats.note(&RowError{Row: row, Col: col, Err: fmt.Errorf("%w: %q", ErrMalformed, toks[col])})
				continue
			}
			dst[col] = v
		}
	}
	if err := sc.Err(); err != nil {
		return nil, stats, fmt.Errorf("%w: %w", ErrIO, err)
	}

	if row < rows {
		stats.note(&RowError{Row: row, Col: -1, Err: fmt.Errorf("%w: %d of %d rows", ErrShortFile, row, rows)})
	}
	for ; row < rows; row++ {
		stats.ShortRows++
		for j := range m.Row(row) {
			m.Row(row)[j] = fill.Value
		}
	}
	return m, stats, nil
}

// ReadVector reads the first field of each of n lines.
func ReadVector(r io.Reader, n int, fill FillPolicy) (tensor.Vector, Stats, error) {
	m, stats, err := ReadMatrix(r, n, 1, fill)
	if err != nil {
		return nil, stats, err
	}
	return tensor.Vector(m.Data()), stats, nil
}

// ZeroRows returns the indices of rows whose every entry is 0.
// A large share of zero rows usually means the file was read with the
// wrong separator.
func ZeroRows(m *tensor.Matrix) []int {
	var out []int
	for i := 0; i < m.Rows(); i++ {
		zero := true
		for _, v := range m.Row(i) {
			if v != 0 {
				zero = false
				break
			}
		}
		if zero {
			out = append(out, i)
		}
	}
	return out
}

package parallel

import "fmt"

// Partition is the half-open row range [Start, End) owned by unit Index.
type Partition struct {
	Index int
	Start int
	End   int
}

// Len returns the number of rows in the partition.
func (p Partition) Len() int {
	return p.End - p.Start
}

// Empty reports whether the partition owns no rows.
func (p Partition) Empty() bool {
	return p.End == p.Start
}

// Overlaps reports whether p and q share at least one row.
func (p Partition) Overlaps(q Partition) bool {
	return p.Start < q.End && q.Start < p.End
}

// String returns "#i[start,end)".
func (p Partition) String() string {
	return fmt.Sprintf("#%d[%d,%d)", p.Index, p.Start, p.End)
}

// Split divides n rows into workers contiguous partitions.
//
// base = n / workers; unit i < workers-1 gets [i*base, (i+1)*base) and the
// last unit gets [(workers-1)*base, n), absorbing the remainder. When
// workers > n every unit but the last receives an empty range.
func Split(n, workers int) ([]Partition, error) {
	if workers <= 0 {
		return nil, fmt.Errorf("%w (got %d)", ErrInvalidWorkerCount, workers)
	}
	if n < 0 {
		return nil, fmt.Errorf("%w (got %d)", ErrInvalidRowCount, n)
	}

	base := n / workers
	parts := make([]Partition, workers)
	for i := range parts {
		parts[i] = Partition{Index: i, Start: i * base, End: (i + 1) * base}
	}
	parts[workers-1].End = n
	return parts, nil
}

// Verify checks that parts are ordered, pairwise disjoint and cover exactly
// [0, n).
func Verify(parts []Partition, n int) error {
	next := 0
	for i, p := range parts {
		if p.Index != i {
			return fmt.Errorf("%w: partition %d has index %d", ErrPartitionCover, i, p.Index)
		}
		if p.Start != next || p.End < p.Start {
			return fmt.Errorf("%w: %v does not start at row %d", ErrPartitionCover, p, next)
		}
		next = p.End
	}
	if next != n {
		return fmt.Errorf("%w: covered [0,%d) of [0,%d)", ErrPartitionCover, next, n)
	}
	return nil
}

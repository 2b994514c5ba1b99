package parallel

import "fmt"

// PredictionBuffer holds one prediction per sample row.
//
// The orchestrator hands out exclusive Shards with Claim before starting
// the units, and Seals the buffer after the join barrier. The full slice is
// only readable once sealed. Claim and Seal are not safe for concurrent use;
// writes through distinct Shards are.
type PredictionBuffer struct {
	values  []int
	claimed []Partition
	sealed  bool
}

// Shard is an exclusive, write-only view over one partition of the buffer.
type Shard struct {
	partition Partition
	values    []int
}

// NewPredictionBuffer allocates a buffer for n rows.
func NewPredictionBuffer(n int) *PredictionBuffer {
	return &PredictionBuffer{values: make([]int, n)}
}

// Len returns the number of rows.
func (b *PredictionBuffer) Len() int {
	return len(b.values)
}

// Claim returns the shard for p. It fails if p is out of range, overlaps a
// previous claim, or the buffer is sealed. Empty partitions always succeed.
func (b *PredictionBuffer) Claim(p Partition) (Shard, error) {
	if b.sealed {
		return Shard{}, ErrBufferSealed
	}
	if p.Start < 0 || p.End < p.Start || p.End > len(b.values) {
		return Shard{}, fmt.Errorf("%w: %v outside [0,%d)", ErrPartitionCover, p, len(b.values))
	}
	if !p.Empty() {
		for _, q := range b.claimed {
			if p.Overlaps(q) {
				return Shard{}, fmt.Errorf("%w: %v and %v", ErrOverlappingShard, p, q)
			}
		}
		b.claimed = append(b.claimed, p)
	}
	// Cap the view so append on a shard can never spill into a neighbour.
	return Shard{partition: p, values: b.values[p.Start:p.End:p.End]}, nil
}

// Seal marks every shard as joined and opens the buffer for reading.
func (b *PredictionBuffer) Seal() {
	b.sealed = true
}

// Sealed reports whether Seal was called.
func (b *PredictionBuffer) Sealed() bool {
	return b.sealed
}

// Predictions returns the full buffer. It fails with ErrBufferBusy until the
// buffer is sealed.
func (b *PredictionBuffer) Predictions() ([]int, error) {
	if !b.sealed {
		return nil, ErrBufferBusy
	}
	return b.values, nil
}

// Partition returns the range the shard covers.
func (s Shard) Partition() Partition {
	return s.partition
}

// Values returns the shard's slice of the buffer.
func (s Shard) Values() []int {
	return s.values
}

// Len returns the number of rows in the shard.
func (s Shard) Len() int {
	return len(s.values)
}

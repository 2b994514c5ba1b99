// Package parallel runs the forward pipeline across execution units that
// share one address space.
//
// The sample rows are split into contiguous, disjoint partitions. Each unit
// owns one partition: it reads its row view of the shared input, uses its
// own scratch workspace and writes only its Shard of the shared
// PredictionBuffer. Writes need no locking because no two shards overlap;
// the join barrier (sync.WaitGroup) orders every unit's writes before the
// orchestrator reads the buffer.
package parallel

import (
	"errors"
	"log"
)

// Common errors.
var (
	ErrInvalidWorkerCount = errors.New("parallel: worker count must be > 0")
	ErrInvalidRowCount    = errors.New("parallel: row count must be >= 0")
	ErrPartitionCover     = errors.New("parallel: partitions do not cover the row range")
	ErrOverlappingShard   = errors.New("parallel: shard overlaps an existing claim")
	ErrBufferBusy         = errors.New("parallel: prediction buffer read before join")
	ErrBufferSealed       = errors.New("parallel: prediction buffer already sealed")
	ErrWorkerFailed       = errors.New("parallel: execution unit failed")
)

// Config controls parallel execution behavior.
type Config struct {
	Workers    int         // Number of execution units.
	PinThreads bool        // Lock each unit to its own OS thread while it runs.
	Logger     *log.Logger // Nil means log.Default().
}

// DefaultConfig returns one unit per logical core.
func DefaultConfig() Config {
	return Config{
		Workers: DescribeHost().Cores(),
	}
}

// Validate checks the config is runnable.
func (c Config) Validate() error {
	if c.Workers <= 0 {
		return ErrInvalidWorkerCount
	}
	return nil
}

func (c Config) logger() *log.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return log.Default()
}

package parallel

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/born-ml/parinfer/internal/nn"
	"github.com/born-ml/parinfer/internal/tensor"
)

// UnitState is the lifecycle state of one execution unit.
type UnitState int

// Unit states. Every unit moves Created → Running → Joined.
const (
	UnitCreated UnitState = iota
	UnitRunning
	UnitJoined
)

// String returns the state name.
func (s UnitState) String() string {
	switch s {
	case UnitCreated:
		return "created"
	case UnitRunning:
		return "running"
	case UnitJoined:
		return "joined"
	default:
		return "unknown"
	}
}

// UnitReport summarises one unit after the join barrier.
type UnitReport struct {
	Partition    Partition
	State        UnitState
	Err          error
	Elapsed      time.Duration
	ScratchBytes int
}

// Failed reports whether the unit terminated abnormally.
func (r UnitReport) Failed() bool {
	return r.Err != nil
}

// Result is the outcome of a successful run.
type Result struct {
	RunID       uuid.UUID
	Predictions []int
	Units       []UnitReport
	Elapsed     time.Duration
}

// Engine runs the forward pipeline over a sample matrix with one
// execution unit per partition.
type Engine struct {
	backend tensor.Backend
	net     *nn.Network
	cfg     Config
}

// unit is owned by the orchestrator except for err and elapsed, which the
// unit's goroutine writes before signalling the join barrier.
type unit struct {
	partition Partition
	state     UnitState
	input     *tensor.Matrix
	shard     Shard
	ws        *nn.Workspace
	scratch   int
	err       error
	elapsed   time.Duration
}

// NewEngine creates an engine. The network is shared read-only by every
// unit of every run.
func NewEngine(backend tensor.Backend, net *nn.Network, cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w (got %d)", err, cfg.Workers)
	}
	if backend == nil {
		return nil, errors.New("parallel: nil backend")
	}
	if net == nil {
		return nil, errors.New("parallel: nil network")
	}
	return &Engine{backend: backend, net: net, cfg: cfg}, nil
}

// Workers returns the configured unit count.
func (e *Engine) Workers() int {
	return e.cfg.Workers
}

// Run classifies every row of x.
//
// It partitions the rows, prepares one unit per partition (shard claim and
// scratch allocation), starts all units, and blocks at the join barrier.
// If any unit fails the whole run fails and no predictions are returned.
// There is no cancellation: a unit that never returns blocks Run forever.
func (e *Engine) Run(x *tensor.Matrix) (*Result, error) {
	start := time.Now()
	runID := uuid.New()
	logger := e.cfg.logger()

	if x.Cols() != e.net.InputSize() {
		return nil, fmt.Errorf("%w: input has %d features, network expects %d",
			tensor.ErrDimensionMismatch, x.Cols(), e.net.InputSize())
	}

	units, buf, err := e.prepare(x)
	if err != nil {
		return nil, err
	}

	logger.Printf("run=%s backend=%s units=%d rows=%d pinned=%t",
		runID, e.backend.Name(), len(units), x.Rows(), e.cfg.PinThreads)

	var wg sync.WaitGroup
	wg.Add(len(units))
	for _, u := range units {
		u.state = UnitRunning
		go e.execute(u, &wg)
	}

	// Join barrier: after Wait every unit's shard writes are visible here.
	wg.Wait()

	var errs []error
	reports := make([]UnitReport, len(units))
	for i, u := range units {
		u.state = UnitJoined
		u.ws.Release()
		u.ws = nil
		if u.err != nil {
			errs = append(errs, fmt.Errorf("unit %v: %w: %w", u.partition, ErrWorkerFailed, u.err))
		}
		reports[i] = UnitReport{
			Partition:    u.partition,
			State:        u.state,
			Err:          u.err,
			Elapsed:      u.elapsed,
			ScratchBytes: u.scratch,
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("run %s: %w", runID, errors.Join(errs...))
	}

	buf.Seal()
	predictions, err := buf.Predictions()
	if err != nil {
		return nil, err
	}

	elapsed := time.Since(start)
	logger.Printf("run=%s joined units=%d elapsed=%s", runID, len(units), elapsed)

	return &Result{
		RunID:       runID,
		Predictions: predictions,
		Units:       reports,
		Elapsed:     elapsed,
	}, nil
}

// prepare moves every unit into the Created state: partition assigned,
// shard claimed, input view taken and scratch allocated.
func (e *Engine) prepare(x *tensor.Matrix) ([]*unit, *PredictionBuffer, error) {
	parts, err := Split(x.Rows(), e.cfg.Workers)
	if err != nil {
		return nil, nil, err
	}
	if err := Verify(parts, x.Rows()); err != nil {
		return nil, nil, err
	}

	buf := NewPredictionBuffer(x.Rows())
	units := make([]*unit, len(parts))
	for i, p := range parts {
		shard, err := buf.Claim(p)
		if err != nil {
			return nil, nil, err
		}
		view, err := x.Slice(p.Start, p.End)
		if err != nil {
			return nil, nil, err
		}
		ws, err := nn.NewWorkspace(e.net.Topology(), p.Len())
		if err != nil {
			return nil, nil, fmt.Errorf("unit %v: scratch: %w", p, err)
		}
		units[i] = &unit{
			partition: p,
			state:     UnitCreated,
			input:     view,
			shard:     shard,
			ws:        ws,
			scratch:   ws.Bytes(),
		}
	}
	return units, buf, nil
}

// execute is the body of one unit. A panic inside the pipeline is
// recovered and reported as the unit's error.
func (e *Engine) execute(u *unit, wg *sync.WaitGroup) {
	defer wg.Done()
	if e.cfg.PinThreads {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
	}

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			u.err = fmt.Errorf("panic: %v", r)
		}
		u.elapsed = time.Since(start)
	}()

	u.err = nn.Forward(e.backend, e.net, u.input, u.ws, u.shard.Values())
}

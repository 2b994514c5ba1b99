// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package inference runs the classifier over a sample matrix in parallel
// and scores the result.
//
// The rows are split into one contiguous partition per worker. Every
// worker runs the forward pass over its own row view and writes only its
// own range of the shared prediction buffer, so no locking is needed.
// The run returns once every worker has joined; if any worker fails the
// whole run fails.
//
// Example:
//
//	engine, err := inference.NewEngine(net, inference.Options{Workers: 8})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	eval, err := engine.Evaluate(ds.Samples, ds.Labels, 20)
//	fmt.Printf("accuracy %.2f%%\n", eval.Accuracy)
package inference

import (
	"log"

	"github.com/born-ml/parinfer/backend/cpu"
	"github.com/born-ml/parinfer/internal/metrics"
	"github.com/born-ml/parinfer/internal/parallel"
	"github.com/born-ml/parinfer/nn"
	"github.com/born-ml/parinfer/tensor"
)

// Partition is the half-open row range owned by one worker.
type Partition = parallel.Partition

// Result is the outcome of a successful run.
type Result = parallel.Result

// UnitReport summarises one worker after the join.
type UnitReport = parallel.UnitReport

// Report is the bounded error log of a scored run.
type Report = metrics.Report

// Mismatch is one misclassified sample.
type Mismatch = metrics.Mismatch

// Host describes the processor the workers run on.
type Host = parallel.Host

// Common errors.
var (
	ErrInvalidWorkerCount = parallel.ErrInvalidWorkerCount
	ErrWorkerFailed       = parallel.ErrWorkerFailed
	ErrLengthMismatch     = metrics.ErrLengthMismatch
)

// Options configures an Engine. Zero values select defaults.
type Options struct {
	Workers    int            // Default: one per hardware thread.
	Backend    tensor.Backend // Default: cpu.
	PinThreads bool
	Logger     *log.Logger
}

// Engine classifies sample matrices with a fixed network.
type Engine struct {
	engine *parallel.Engine
}

// NewEngine creates an engine for net.
func NewEngine(net *nn.Network, opts Options) (*Engine, error) {
	cfg := parallel.DefaultConfig()
	if opts.Workers != 0 {
		cfg.Workers = opts.Workers
	}
	cfg.PinThreads = opts.PinThreads
	cfg.Logger = opts.Logger

	backend := opts.Backend
	if backend == nil {
		backend = cpu.New()
	}
	e, err := parallel.NewEngine(backend, net, cfg)
	if err != nil {
		return nil, err
	}
	return &Engine{engine: e}, nil
}

// Workers returns the number of workers per run.
func (e *Engine) Workers() int {
	return e.engine.Workers()
}

// Run classifies every row of x.
func (e *Engine) Run(x *tensor.Matrix) (*Result, error) {
	return e.engine.Run(x)
}

// Evaluation is a run together with its score.
type Evaluation struct {
	Result   *Result
	Accuracy float64
	Report   Report
}

// Evaluate runs x and scores the predictions against labels, logging at
// most maxToLog mismatches in the report.
func (e *Engine) Evaluate(x *tensor.Matrix, labels tensor.Vector, maxToLog int) (*Evaluation, error) {
	res, err := e.engine.Run(x)
	if err != nil {
		return nil, err
	}
	acc, err := metrics.Accuracy(res.Predictions, labels)
	if err != nil {
		return nil, err
	}
	report, err := metrics.ErrorLog(res.Predictions, labels, maxToLog)
	if err != nil {
		return nil, err
	}
	return &Evaluation{Result: res, Accuracy: acc, Report: report}, nil
}

// Split partitions n rows across workers.
func Split(n, workers int) ([]Partition, error) {
	return parallel.Split(n, workers)
}

// DescribeHost reads the CPU description of the current machine.
func DescribeHost() Host {
	return parallel.DescribeHost()
}

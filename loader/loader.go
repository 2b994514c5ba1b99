// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package loader reads samples, labels and classifier parameters from a
// data directory.
//
// This package wraps the internal loader and exports its public API.
//
// Example usage:
//
//	import (
//	    "github.com/born-ml/parinfer/loader"
//	    "github.com/born-ml/parinfer/nn"
//	)
//
//	dir, err := loader.Discover(loader.DefaultSearchPaths)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	l := loader.New(loader.Layout{Dir: dir, Seed: 3})
//	net, err := l.LoadNetwork(nn.DefaultTopology)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ds, err := l.LoadDataset(10000, net.InputSize())
package loader

import (
	"io"

	"github.com/born-ml/parinfer/internal/loader"
	"github.com/born-ml/parinfer/nn"
	"github.com/born-ml/parinfer/tensor"
)

// Layout names the files of one data directory.
type Layout = loader.Layout

// Loader reads a Layout into tensors.
type Loader = loader.Loader

// Dataset is the sample matrix with its labels.
type Dataset = loader.Dataset

// Stats counts what was recovered while reading one file.
type Stats = loader.Stats

// RowError locates one recovered problem in a CSV file.
type RowError = loader.RowError

// FillPolicy names the sentinel written in place of absent fields.
type FillPolicy = loader.FillPolicy

// Fill policies.
var (
	DefaultFill = loader.DefaultFill
	LegacyFill  = loader.LegacyFill
)

// DefaultSearchPaths are tried in order when no data directory is configured.
var DefaultSearchPaths = loader.DefaultSearchPaths

// Common errors.
var (
	ErrIO            = loader.ErrIO
	ErrNotFound      = loader.ErrNotFound
	ErrMissingValue  = loader.ErrMissingValue
	ErrMalformed     = loader.ErrMalformed
	ErrShortFile     = loader.ErrShortFile
	ErrInvalidBundle = loader.ErrInvalidBundle
)

// New creates a loader with DefaultFill.
func New(layout Layout) *Loader {
	return loader.New(layout)
}

// Discover returns the first candidate directory that holds csvs/data.csv.
func Discover(candidates []string) (string, error) {
	return loader.Discover(candidates)
}

// ParseFillPolicy resolves a fill policy by name.
func ParseFillPolicy(name string) (FillPolicy, error) {
	return loader.ParseFillPolicy(name)
}

// ReadMatrix reads rows lines of cols fields each.
func ReadMatrix(r io.Reader, rows, cols int, fill FillPolicy) (*tensor.Matrix, Stats, error) {
	return loader.ReadMatrix(r, rows, cols, fill)
}

// ReadVector reads the first field of each of n lines.
func ReadVector(r io.Reader, n int, fill FillPolicy) (tensor.Vector, Stats, error) {
	return loader.ReadVector(r, n, fill)
}

// ZeroRows returns the indices of rows whose every entry is 0.
func ZeroRows(m *tensor.Matrix) []int {
	return loader.ZeroRows(m)
}

// ReadBundle loads a network from a SafeTensors parameter bundle.
func ReadBundle(path string) (*nn.Network, error) {
	return loader.ReadBundle(path)
}

// WriteBundle stores net in SafeTensors format.
func WriteBundle(w io.Writer, net *nn.Network, metadata map[string]string) error {
	return loader.WriteBundle(w, net, metadata)
}

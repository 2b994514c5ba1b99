// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/parinfer/internal/backend/cpu"
	"github.com/born-ml/parinfer/tensor"
)

// Name identifies the backend in configuration.
const Name = internalcpu.Name

// Backend represents the CPU backend implementation.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend.
//
// Example:
//
//	backend := cpu.New()
//	engine, err := inference.NewEngine(net, inference.Options{Backend: backend, Workers: 4})
func New() *Backend {
	return internalcpu.New()
}

// MatMul computes a @ b into a new matrix.
func MatMul(a, b *tensor.Matrix) (*tensor.Matrix, error) {
	return internalcpu.MatMul(a, b)
}

// MatMulInto computes a @ b into dst.
func MatMulInto(dst, a, b *tensor.Matrix) error {
	return internalcpu.MatMulInto(dst, a, b)
}

// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package blas provides a matrix product backend on top of gonum.
//
// Results agree with the cpu backend to rounding error but are not
// guaranteed bit-identical, so argmax ties may resolve differently.
package blas

import (
	internalblas "github.com/born-ml/parinfer/internal/backend/blas"
	"github.com/born-ml/parinfer/tensor"
)

// Name identifies the backend in configuration.
const Name = internalblas.Name

// Backend is the gonum-backed implementation.
type Backend = internalblas.Backend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new BLAS backend.
func New() *Backend {
	return internalblas.New()
}

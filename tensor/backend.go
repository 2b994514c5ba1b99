// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/parinfer/internal/tensor"
)

// Backend computes the matrix products of the forward pass.
//
// Implementations must be safe for concurrent use: every execution unit
// calls MatMulInto at the same time, each with its own destination.
//
// Available implementations:
//   - backend/cpu: reference kernel, bit-deterministic
//   - backend/blas: gonum BLAS
type Backend = tensor.Backend

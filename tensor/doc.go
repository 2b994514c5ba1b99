// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the dense float64 matrices used by the classifier.
//
// # Overview
//
// The package exposes:
//   - Matrix: row-major rows×cols storage with no-copy row views
//   - Vector: biases and labels
//   - Row primitives: AddBiasRows, ReLU, ArgmaxRow
//   - Backend: the matrix product implementation used by the forward pass
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/parinfer/tensor"
//	    "github.com/born-ml/parinfer/backend/cpu"
//	)
//
//	func main() {
//	    a, _ := tensor.FromRows([][]float64{{1, 2}, {3, 4}})
//	    id, _ := tensor.Identity(2)
//	    c, _ := cpu.MatMul(a, id)
//	    _ = tensor.AddBiasRows(c, tensor.Vector{0.5, -0.5})
//	    tensor.ReLU(c)
//	    cls, _ := tensor.ArgmaxRow(c.Row(0))
//	}
//
// # Views
//
// Slice returns a view over a row range that shares storage with its parent.
// A view's capacity ends at its last row, so appending to one of its rows
// never spills into the next partition.
//
// # Determinism
//
// ArgmaxRow resolves ties to the lowest index. The cpu backend accumulates
// every product cell in the same order, so results do not depend on how
// the rows were partitioned.
package tensor

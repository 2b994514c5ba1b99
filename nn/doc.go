// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the fixed 4-layer classifier and its forward pass.
//
// # Overview
//
// This package contains:
//   - Network: four Dense layers with chained, validated dimensions
//   - Topology: the layer widths, DefaultTopology is 784→200→100→50→10
//   - Forward: relu(h @ W + b) per layer, then argmax per row
//   - Workspace: reusable scratch for one execution unit
//   - Initialization: Identity, Random
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/parinfer/backend/cpu"
//	    "github.com/born-ml/parinfer/nn"
//	)
//
//	func main() {
//	    net, err := nn.Random(nn.DefaultTopology, 1, 0.05)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    predictions, err := nn.Predict(cpu.New(), net, samples)
//	}
//
// # Weight Layout
//
// Weights are stored [in, out], the layout of the parameter files, so the
// forward pass multiplies h @ W without a transpose.
//
// # Immutability
//
// A Network has no mutating methods and is shared read-only by every
// execution unit of a run.
package nn

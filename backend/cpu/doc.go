// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the pure Go reference backend.
//
// # Overview
//
// The kernel is the classic triple loop: for every output cell the products
// are accumulated in k order 0..K-1. The same inputs therefore always give
// bit-identical outputs, whichever partition a row belongs to.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/parinfer/backend/cpu"
//	    "github.com/born-ml/parinfer/nn"
//	)
//
//	func main() {
//	    net, _ := nn.Random(nn.DefaultTopology, 1, 0.05)
//	    predictions, err := nn.Predict(cpu.New(), net, samples)
//	}
//
// # Thread Safety
//
// The backend holds no state and may be shared by every execution unit.
package cpu

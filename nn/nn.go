// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/born-ml/parinfer/internal/nn"
	"github.com/born-ml/parinfer/tensor"
)

// LayerCount is the fixed depth of the classifier.
const LayerCount = nn.LayerCount

// Topology lists the layer widths from input to output.
type Topology = nn.Topology

// DefaultTopology is the 784→200→100→50→10 digit classifier.
var DefaultTopology = nn.DefaultTopology

// ErrTopology is returned when a network does not match the expected topology.
var ErrTopology = nn.ErrTopology

// Dense is one fully connected layer with a ReLU activation.
type Dense = nn.Dense

// Network holds the immutable parameters of the classifier.
type Network = nn.Network

// Workspace is the scratch region of one execution unit.
type Workspace = nn.Workspace

// NewNetwork validates the chained dimensions and builds a Network.
func NewNetwork(layers [LayerCount]Dense) (*Network, error) {
	return nn.NewNetwork(layers)
}

// NewWorkspace allocates scratch for up to rows samples.
func NewWorkspace(topo Topology, rows int) (*Workspace, error) {
	return nn.NewWorkspace(topo, rows)
}

// Identity builds a network of identity weights and zero biases.
func Identity(topo Topology) (*Network, error) {
	return nn.Identity(topo)
}

// Random builds a network with seeded uniform weights in [-scale, scale).
func Random(topo Topology, seed int64, scale float64) (*Network, error) {
	return nn.Random(topo, seed, scale)
}

// Forward classifies every row of x into out using ws as scratch.
// A nil ws allocates scratch for the call.
func Forward(backend tensor.Backend, net *Network, x *tensor.Matrix, ws *Workspace, out []int) error {
	return nn.Forward(backend, net, x, ws, out)
}

// Predict classifies every row of x sequentially.
func Predict(backend tensor.Backend, net *Network, x *tensor.Matrix) ([]int, error) {
	return nn.Predict(backend, net, x)
}

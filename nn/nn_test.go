// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/parinfer/backend/cpu"
	"github.com/born-ml/parinfer/nn"
	"github.com/born-ml/parinfer/tensor"
)

func TestPublicForward(t *testing.T) {
	net, err := nn.Identity(nn.Topology{3, 3, 3, 3, 3})
	require.NoError(t, err)
	x, err := tensor.FromRows([][]float64{{0.1, 0.9, 0.2}, {0.7, 0.1, 0.3}})
	require.NoError(t, err)

	pred, err := nn.Predict(cpu.New(), net, x)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0}, pred)

	ws, err := nn.NewWorkspace(net.Topology(), x.Rows())
	require.NoError(t, err)
	out := make([]int, 1)
	view, err := x.Slice(1, 2)
	require.NoError(t, err)
	require.NoError(t, nn.Forward(cpu.New(), net, view, ws, out))
	assert.Equal(t, []int{0}, out)
}

func TestPublicTopology(t *testing.T) {
	net, err := nn.Random(nn.DefaultTopology, 1, 0.05)
	require.NoError(t, err)
	require.NoError(t, net.Conforms(nn.DefaultTopology))
	assert.Equal(t, 784, net.InputSize())
	assert.Equal(t, 10, net.Classes())
	require.ErrorIs(t, net.Conforms(nn.Topology{784, 100, 100, 50, 10}), nn.ErrTopology)
}

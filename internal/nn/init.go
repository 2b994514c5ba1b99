package nn

import (
	"math/rand"

	"github.com/born-ml/parinfer/internal/tensor"
)

// Identity builds a network whose every weight matrix is a (rectangular)
// identity and every bias is zero. For non-negative inputs with a uniform
// topology the classifier reduces to argmax over the input row.
func Identity(topo Topology) (*Network, error) {
	var layers [LayerCount]Dense
	for l := range layers {
		shape := topo.WeightShape(l)
		w, err := tensor.New(shape.Rows, shape.Cols)
		if err != nil {
			return nil, err
		}
		for i := 0; i < min(shape.Rows, shape.Cols); i++ {
			w.Set(i, i, 1)
		}
		layers[l] = Dense{Weight: w, Bias: make(tensor.Vector, shape.Cols)}
	}
	return NewNetwork(layers)
}

// Random builds a network with uniform weights in [-scale, scale) and small
// positive biases, drawn from a seeded source.
func Random(topo Topology, seed int64, scale float64) (*Network, error) {
	rng := rand.New(rand.NewSource(seed))
	var layers [LayerCount]Dense
	for l := range layers {
		shape := topo.WeightShape(l)
		w, err := tensor.New(shape.Rows, shape.Cols)
		if err != nil {
			return nil, err
		}
		for i := range w.Data() {
			w.Data()[i] = (rng.Float64()*2 - 1) * scale
		}
		bias := make(tensor.Vector, shape.Cols)
		for i := range bias {
			bias[i] = rng.Float64() * 0.01
		}
		layers[l] = Dense{Weight: w, Bias: bias}
	}
	return NewNetwork(layers)
}

package nn

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/born-ml/parinfer/internal/tensor"
)

// LayerCount is the fixed depth of the classifier.
const LayerCount = 4

// Topology lists the layer widths from input to output.
// Topology[0] is the input width, Topology[LayerCount] the class count.
type Topology [LayerCount + 1]int

// DefaultTopology is the production 784→200→100→50→10 digit classifier.
var DefaultTopology = Topology{784, 200, 100, 50, 10}

// ErrTopology is returned when a network does not match the expected topology.
var ErrTopology = errors.New("nn: topology mismatch")

// WeightShape returns the expected shape of layer l's weight matrix.
func (t Topology) WeightShape(l int) tensor.Shape {
	return tensor.Shape{Rows: t[l], Cols: t[l+1]}
}

// MaxWidth returns the widest hidden or output layer.
func (t Topology) MaxWidth() int {
	w := 0
	for _, n := range t[1:] {
		w = max(w, n)
	}
	return w
}

// Network holds the immutable parameters of the 4-layer classifier.
//
// A Network is shared read-only by every execution unit of a run; it has
// no mutating methods and NewNetwork copies nothing, so callers must not
// modify the matrices they passed in once inference starts.
type Network struct {
	layers   [LayerCount]Dense
	topology Topology
}

// NewNetwork validates the chained dimensions and builds a Network.
// weight[i].Cols == len(bias[i]) == weight[i+1].Rows must hold for every i.
func NewNetwork(layers [LayerCount]Dense) (*Network, error) {
	var topo Topology
	for i, layer := range layers {
		if err := layer.validate(); err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		if i > 0 && layer.InFeatures() != layers[i-1].OutFeatures() {
			return nil, fmt.Errorf("layer %d: %w: %d inputs after a layer with %d outputs",
				i, tensor.ErrDimensionMismatch, layer.InFeatures(), layers[i-1].OutFeatures())
		}
		topo[i] = layer.InFeatures()
		topo[i+1] = layer.OutFeatures()
	}
	return &Network{layers: layers, topology: topo}, nil
}

// Layer returns layer l.
func (n *Network) Layer(l int) Dense {
	return n.layers[l]
}

// Topology returns the layer widths.
func (n *Network) Topology() Topology {
	return n.topology
}

// InputSize returns the number of input features.
func (n *Network) InputSize() int {
	return n.topology[0]
}

// Classes returns the number of output classes.
func (n *Network) Classes() int {
	return n.topology[LayerCount]
}

// Conforms checks the network against an expected topology.
func (n *Network) Conforms(want Topology) error {
	if n.topology != want {
		return fmt.Errorf("%w: have %v, want %v", ErrTopology, n.topology, want)
	}
	return nil
}

// Fingerprint returns a SHA-256 digest of all weights and biases in layer
// order. Two networks with bit-identical parameters share a fingerprint.
func (n *Network) Fingerprint() [32]byte {
	h := sha256.New()
	var buf [8]byte
	write := func(vs []float64) {
		for _, v := range vs {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
			h.Write(buf[:])
		}
	}
	for _, layer := range n.layers {
		binary.LittleEndian.PutUint64(buf[:], uint64(layer.InFeatures()))
		h.Write(buf[:])
		binary.LittleEndian.PutUint64(buf[:], uint64(layer.OutFeatures()))
		h.Write(buf[:])
		write(layer.Weight.Data())
		write(layer.Bias)
	}
	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	return sum
}

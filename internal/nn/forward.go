package nn

import (
	"fmt"

	"github.com/born-ml/parinfer/internal/tensor"
)

// Forward runs the 4-layer pipeline over x and writes one class index per
// row into out.
//
// x is typically a row view [start, end) of the full sample matrix and out
// the matching slice of the prediction buffer. Forward reads only x and the
// network, and writes only out and ws. An empty x is a no-op.
//
// Pipeline, per layer: h = relu(h @ W + b); finally out[i] = argmax(h[i]).
//
// If ws is nil a workspace sized for x is allocated for this call.
func Forward(backend tensor.Backend, net *Network, x *tensor.Matrix, ws *Workspace, out []int) error {
	if x.Cols() != net.InputSize() {
		return fmt.Errorf("Forward: %w: input has %d features, network expects %d",
			tensor.ErrDimensionMismatch, x.Cols(), net.InputSize())
	}
	if len(out) != x.Rows() {
		return fmt.Errorf("Forward: %w: %d outputs for %d rows",
			tensor.ErrDimensionMismatch, len(out), x.Rows())
	}
	if x.Rows() == 0 {
		return nil
	}

	if ws == nil {
		var err error
		ws, err = NewWorkspace(net.Topology(), x.Rows())
		if err != nil {
			return err
		}
		defer ws.Release()
	}
	if ws.Rows() < x.Rows() {
		return fmt.Errorf("Forward: %w: workspace holds %d rows, input has %d",
			tensor.ErrDimensionMismatch, ws.Rows(), x.Rows())
	}

	h := x
	for l, layer := range net.layers {
		dst, err := ws.buffer(l, x.Rows(), layer.OutFeatures())
		if err != nil {
			return err
		}
		if err := layer.forwardInto(backend, dst, h); err != nil {
			return fmt.Errorf("Forward: layer %d: %w", l, err)
		}
		h = dst
	}

	if err := tensor.ArgmaxRows(h, out); err != nil {
		return fmt.Errorf("Forward: %w", err)
	}
	return nil
}

// Predict runs Forward sequentially over the whole of x.
func Predict(backend tensor.Backend, net *Network, x *tensor.Matrix) ([]int, error) {
	out := make([]int, x.Rows())
	if err := Forward(backend, net, x, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

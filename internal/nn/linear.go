package nn

import (
	"fmt"

	"github.com/born-ml/parinfer/internal/tensor"
)

// Dense is one fully connected layer with a ReLU activation.
//
// Performs: y = relu(x @ W + b)
// where:
//   - x has shape [batch_size, in_features]
//   - W has shape [in_features, out_features]
//   - b has length out_features
//
// Note the weight layout is [in, out], the layout of the parameter CSV files,
// so no transpose is needed in the forward pass.
type Dense struct {
	Weight *tensor.Matrix
	Bias   tensor.Vector
}

// InFeatures returns the number of input features.
func (d Dense) InFeatures() int {
	return d.Weight.Rows()
}

// OutFeatures returns the number of output features.
func (d Dense) OutFeatures() int {
	return d.Weight.Cols()
}

func (d Dense) validate() error {
	if d.Weight == nil {
		return fmt.Errorf("%w: nil weight", tensor.ErrDimensionMismatch)
	}
	if len(d.Bias) != d.Weight.Cols() {
		return fmt.Errorf("%w: weight %v with bias length %d",
			tensor.ErrDimensionMismatch, d.Weight.Shape(), len(d.Bias))
	}
	return nil
}

// forwardInto computes relu(x @ W + b) into dst.
func (d Dense) forwardInto(backend tensor.Backend, dst, x *tensor.Matrix) error {
	if err := backend.MatMulInto(dst, x, d.Weight); err != nil {
		return err
	}
	if err := tensor.AddBiasRows(dst, d.Bias); err != nil {
		return err
	}
	tensor.ReLU(dst)
	return nil
}

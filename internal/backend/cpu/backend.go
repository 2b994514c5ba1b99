// Package cpu implements the reference CPU backend.
package cpu

import "github.com/born-ml/parinfer/internal/tensor"

// Name is the configuration key for this backend.
const Name = "cpu"

// CPUBackend runs the naive triple-loop kernel.
// It holds no mutable state and is safe for concurrent use.
type CPUBackend struct{}

var _ tensor.Backend = (*CPUBackend)(nil)

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return Name
}

// MatMulInto computes dst = a @ b with the reference kernel.
func (cpu *CPUBackend) MatMulInto(dst, a, b *tensor.Matrix) error {
	return MatMulInto(dst, a, b)
}

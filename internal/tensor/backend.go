package tensor

// Backend computes the matrix products of the forward pipeline.
//
// Implementations:
//   - backend/cpu: reference triple loop, bit-deterministic
//   - backend/blas: gonum BLAS
//
// Implementations must be safe for concurrent use: the engine calls
// MatMulInto from every execution unit at once, each with its own dst.
type Backend interface {
	// Name identifies the backend in logs and configuration.
	Name() string

	// MatMulInto computes dst = a @ b. dst must already be a.Rows()×b.Cols()
	// and must not alias a or b.
	MatMulInto(dst, a, b *Matrix) error
}

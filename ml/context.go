// context.go - Context und Tensor Interfaces fuer ML-Operationen
// Dieses Modul definiert die Schnittstellen fuer Tensor-Operationen und Compute-Kontexte.
package ml

// Context represents an execution context for tensor operations.
type Context interface {
	Empty(dtype DType, shape ...int) Tensor
	Zeros(dtype DType, shape ...int) Tensor
	FromFloats(s []float32, shape ...int) Tensor
	FromInts(s []int32, shape ...int) Tensor

	Forward(...Tensor) Context

	Compute(...Tensor)

	Close()
}

// Tensor represents a multi-dimensional array with various operations.
//
// Shapes are row-major with Dim(0) outermost; strides are in elements.
// Time-major sequence batches are shaped [time, batch].
type Tensor interface {
	Dim(n int) int
	Stride(n int) int

	Shape() []int
	DType() DType
	Cast(ctx Context, dtype DType) Tensor

	Bytes() []byte
	Floats() []float32
	Ints() []int32

	FromBytes([]byte)
	FromFloats([]float32)
	FromInts([]int32)

	Add(ctx Context, t2 Tensor) Tensor
	Sub(ctx Context, t2 Tensor) Tensor
	Mul(ctx Context, t2 Tensor) Tensor
	Scale(ctx Context, s float64) Tensor

	Mulmat(ctx Context, t2 Tensor) Tensor

	Softmax(ctx Context) Tensor
	Tanh(ctx Context) Tensor
	Sigmoid(ctx Context) Tensor

	Reshape(ctx Context, shape ...int) Tensor

	Concat(ctx Context, t2 Tensor, dim int) Tensor
	Stack(ctx Context, dim int, s ...Tensor) Tensor
	Rows(ctx Context, t2 Tensor) Tensor
	Copy(ctx Context, t2 Tensor) Tensor
	Duplicate(ctx Context) Tensor

	Slice(ctx Context, dim, low, high, step int) Tensor
	Chunk(ctx Context, dim int, size int) []Tensor

	// Argmax reduces the innermost dimension to the index of its
	// largest element, returning an I32 tensor.
	Argmax(ctx Context) Tensor
}

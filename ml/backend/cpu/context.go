// context.go - Context-Struktur und Tensor-Konstruktoren
// Das CPU-Backend rechnet eager: jede Operation materialisiert ihr Ergebnis
// sofort, Forward/Compute sind daher reine Synchronisationspunkte.

package cpu

import (
	"fmt"

	"github.com/compgen/transduce/ml"
)

// Context repraesentiert einen CPU-Berechnungskontext
type Context struct {
	b *Backend
}

// Empty erstellt einen uninitialisierten Tensor
func (c *Context) Empty(dtype ml.DType, shape ...int) ml.Tensor {
	return newTensor(dtype, shape)
}

// Zeros erstellt einen mit Nullen initialisierten Tensor
func (c *Context) Zeros(dtype ml.DType, shape ...int) ml.Tensor {
	return newTensor(dtype, shape)
}

// FromFloats erstellt einen F32-Tensor aus einem Slice
func (c *Context) FromFloats(s []float32, shape ...int) ml.Tensor {
	t := newTensor(ml.DTypeF32, shape)
	t.FromFloats(s)
	return t
}

// FromInts erstellt einen I32-Tensor aus einem Slice
func (c *Context) FromInts(s []int32, shape ...int) ml.Tensor {
	t := newTensor(ml.DTypeI32, shape)
	t.FromInts(s)
	return t
}

// Forward fuegt Tensoren zum Berechnungsgraphen hinzu.
// Eager-Backend: die Ergebnisse liegen bereits vor.
func (c *Context) Forward(tensors ...ml.Tensor) ml.Context {
	return c
}

// Compute erzwingt die Berechnung der uebergebenen Tensoren.
// Eager-Backend: no-op.
func (c *Context) Compute(tensors ...ml.Tensor) {}

// Close gibt den Kontext frei
func (c *Context) Close() {}

// newTensor alloziert einen Tensor mit der gegebenen Form
func newTensor(dtype ml.DType, shape []int) *Tensor {
	n := 1
	for _, d := range shape {
		if d < 0 {
			panic(fmt.Sprintf("cpu: invalid dimension %d", d))
		}
		n *= d
	}

	t := &Tensor{dtype: dtype, shape: append([]int(nil), shape...)}
	switch dtype {
	case ml.DTypeF32:
		t.f32 = make([]float32, n)
	case ml.DTypeF16:
		t.f16 = make([]uint16, n)
	case ml.DTypeI32:
		t.i32 = make([]int32, n)
	default:
		panic("cpu: unsupported dtype")
	}

	return t
}

// tensor_shape.go - Form-Operationen fuer Tensoren
// Enthaelt: Reshape, Slice, Chunk, Copy, Duplicate

package cpu

import (
	"fmt"

	"github.com/compgen/transduce/ml"
)

// Reshape aendert die Form des Tensors bei gleicher Elementzahl
func (t *Tensor) Reshape(ctx ml.Context, shape ...int) ml.Tensor {
	out := newTensor(t.dtype, shape)
	if out.numel() != t.numel() {
		panic(fmt.Sprintf("cpu: reshape %v to %v changes element count", t.shape, shape))
	}

	copy(out.f32, t.f32)
	copy(out.f16, t.f16)
	copy(out.i32, t.i32)

	return out
}

// Slice schneidet den Bereich [low, high) entlang einer Dimension aus
func (t *Tensor) Slice(ctx ml.Context, dim, low, high, step int) ml.Tensor {
	if step != 1 {
		panic("cpu: slice step != 1 not supported")
	}
	if low < 0 || high > t.shape[dim] || low > high {
		panic(fmt.Sprintf("cpu: slice [%d:%d) out of range for dim %d of %v", low, high, dim, t.shape))
	}

	shape := t.Shape()
	shape[dim] = high - low
	out := newTensor(t.dtype, shape)

	outer := 1
	for i := 0; i < dim; i++ {
		outer *= t.shape[i]
	}
	inner := t.Stride(dim)
	srcBlock := t.shape[dim] * inner
	dstBlock := (high - low) * inner

	for o := 0; o < outer; o++ {
		src := o*srcBlock + low*inner
		switch t.dtype {
		case ml.DTypeF32:
			copy(out.f32[o*dstBlock:(o+1)*dstBlock], t.f32[src:src+dstBlock])
		case ml.DTypeF16:
			copy(out.f16[o*dstBlock:(o+1)*dstBlock], t.f16[src:src+dstBlock])
		case ml.DTypeI32:
			copy(out.i32[o*dstBlock:(o+1)*dstBlock], t.i32[src:src+dstBlock])
		}
	}

	return out
}

// Chunk teilt den Tensor entlang einer Dimension in Stuecke der Groesse size
func (t *Tensor) Chunk(ctx ml.Context, dim int, size int) []ml.Tensor {
	if t.shape[dim]%size != 0 {
		panic(fmt.Sprintf("cpu: chunk size %d does not divide dim %d of %v", size, dim, t.shape))
	}

	chunks := make([]ml.Tensor, 0, t.shape[dim]/size)
	for low := 0; low < t.shape[dim]; low += size {
		chunks = append(chunks, t.Slice(ctx, dim, low, low+size, 1))
	}

	return chunks
}

// Copy kopiert die Daten von t nach t2 und gibt t2 zurueck
func (t *Tensor) Copy(ctx ml.Context, t2 ml.Tensor) ml.Tensor {
	u := t2.(*Tensor)
	if u.numel() != t.numel() {
		panic(fmt.Sprintf("cpu: copy %v to %v changes element count", t.shape, u.shape))
	}

	switch u.dtype {
	case ml.DTypeF32:
		copy(u.f32, t.Floats())
	case ml.DTypeI32:
		copy(u.i32, t.Ints())
	default:
		panic("cpu: copy requires F32 or I32 destination")
	}

	return u
}

// Duplicate erstellt eine tiefe Kopie des Tensors
func (t *Tensor) Duplicate(ctx ml.Context) ml.Tensor {
	out := newTensor(t.dtype, t.shape)
	copy(out.f32, t.f32)
	copy(out.f16, t.f16)
	copy(out.i32, t.i32)

	return out
}

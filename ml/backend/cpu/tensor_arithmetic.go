// tensor_arithmetic.go - Basis-Arithmetik-Operationen fuer Tensoren
// Enthaelt: Add, Sub, Mul, Scale, Stack, Concat

package cpu

import (
	"fmt"

	"github.com/compgen/transduce/ml"
)

// binaryOp wendet eine elementweise Operation an. t2 darf eine Suffix-Form
// von t haben (z.B. Bias [H] auf Aktivierung [B, H]); dann wird t2 ueber die
// fuehrenden Dimensionen wiederholt.
func (t *Tensor) binaryOp(t2 *Tensor, f func(a, b float32) float32) *Tensor {
	if t.dtype != ml.DTypeF32 || t2.dtype != ml.DTypeF32 {
		panic("cpu: arithmetic requires F32 tensors")
	}

	n, n2 := t.numel(), t2.numel()
	if n2 == 0 || n%n2 != 0 {
		panic(fmt.Sprintf("cpu: shape mismatch %v %v", t.shape, t2.shape))
	}
	if !suffixShape(t.shape, t2.shape) {
		panic(fmt.Sprintf("cpu: shape mismatch %v %v", t.shape, t2.shape))
	}

	out := newTensor(ml.DTypeF32, t.shape)
	for i := 0; i < n; i++ {
		out.f32[i] = f(t.f32[i], t2.f32[i%n2])
	}

	return out
}

// suffixShape prueft, ob sub mit den letzten Dimensionen von shape uebereinstimmt
func suffixShape(shape, sub []int) bool {
	if len(sub) > len(shape) {
		return false
	}

	for i := range sub {
		if sub[len(sub)-1-i] != shape[len(shape)-1-i] {
			return false
		}
	}

	return true
}

// Add addiert zwei Tensoren elementweise
func (t *Tensor) Add(ctx ml.Context, t2 ml.Tensor) ml.Tensor {
	return t.binaryOp(t2.(*Tensor), func(a, b float32) float32 { return a + b })
}

// Sub subtrahiert zwei Tensoren elementweise
func (t *Tensor) Sub(ctx ml.Context, t2 ml.Tensor) ml.Tensor {
	return t.binaryOp(t2.(*Tensor), func(a, b float32) float32 { return a - b })
}

// Mul multipliziert zwei Tensoren elementweise
func (t *Tensor) Mul(ctx ml.Context, t2 ml.Tensor) ml.Tensor {
	return t.binaryOp(t2.(*Tensor), func(a, b float32) float32 { return a * b })
}

// Scale skaliert den Tensor mit einem Skalarwert
func (t *Tensor) Scale(ctx ml.Context, s float64) ml.Tensor {
	out := newTensor(ml.DTypeF32, t.shape)
	for i, v := range t.f32 {
		out.f32[i] = v * float32(s)
	}

	return out
}

// Stack stapelt Tensoren entlang einer Dimension
func (t *Tensor) Stack(ctx ml.Context, dim int, s ...ml.Tensor) ml.Tensor {
	if len(s) > 0 {
		return t.Concat(ctx, s[0].Stack(ctx, dim, s[1:]...), dim)
	}

	return t
}

// Concat verbindet zwei Tensoren entlang einer Dimension
func (t *Tensor) Concat(ctx ml.Context, t2 ml.Tensor, dim int) ml.Tensor {
	u := t2.(*Tensor)
	if t.dtype != u.dtype || len(t.shape) != len(u.shape) {
		panic(fmt.Sprintf("cpu: concat mismatch %v %v", t.shape, u.shape))
	}
	for i := range t.shape {
		if i != dim && t.shape[i] != u.shape[i] {
			panic(fmt.Sprintf("cpu: concat mismatch %v %v", t.shape, u.shape))
		}
	}

	shape := t.Shape()
	shape[dim] += u.shape[dim]
	out := newTensor(t.dtype, shape)

	// Blockweise kopieren: pro aeusserem Index erst der Block aus t,
	// dann der Block aus t2.
	outer := 1
	for i := 0; i < dim; i++ {
		outer *= t.shape[i]
	}
	blockT := t.numel() / outer
	blockU := u.numel() / outer

	for o := 0; o < outer; o++ {
		switch t.dtype {
		case ml.DTypeF32:
			copy(out.f32[o*(blockT+blockU):], t.f32[o*blockT:(o+1)*blockT])
			copy(out.f32[o*(blockT+blockU)+blockT:], u.f32[o*blockU:(o+1)*blockU])
		case ml.DTypeI32:
			copy(out.i32[o*(blockT+blockU):], t.i32[o*blockT:(o+1)*blockT])
			copy(out.i32[o*(blockT+blockU)+blockT:], u.i32[o*blockU:(o+1)*blockU])
		default:
			panic("cpu: concat requires F32 or I32 tensors")
		}
	}

	return out
}

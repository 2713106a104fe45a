// tensor_nn.go - Neuronale Aktivierungen und Lookup-Operationen
// Enthaelt: Tanh, Sigmoid, Softmax, Rows, Argmax

package cpu

import (
	"fmt"
	"math"

	"github.com/compgen/transduce/ml"
)

// unaryOp wendet eine elementweise Funktion auf einen F32-Tensor an
func (t *Tensor) unaryOp(f func(x float32) float32) *Tensor {
	if t.dtype != ml.DTypeF32 {
		panic("cpu: activation requires F32 tensor")
	}

	out := newTensor(ml.DTypeF32, t.shape)
	for i, v := range t.f32 {
		out.f32[i] = f(v)
	}

	return out
}

// Tanh wendet den Tangens hyperbolicus elementweise an
func (t *Tensor) Tanh(ctx ml.Context) ml.Tensor {
	return t.unaryOp(func(x float32) float32 {
		return float32(math.Tanh(float64(x)))
	})
}

// Sigmoid wendet die logistische Funktion elementweise an
func (t *Tensor) Sigmoid(ctx ml.Context) ml.Tensor {
	return t.unaryOp(func(x float32) float32 {
		return float32(1 / (1 + math.Exp(-float64(x))))
	})
}

// Softmax normalisiert die innerste Dimension zu einer Verteilung
func (t *Tensor) Softmax(ctx ml.Context) ml.Tensor {
	if t.dtype != ml.DTypeF32 {
		panic("cpu: softmax requires F32 tensor")
	}

	inner := t.shape[len(t.shape)-1]
	out := newTensor(ml.DTypeF32, t.shape)
	for o := 0; o < t.numel(); o += inner {
		row := t.f32[o : o+inner]

		// Maximum abziehen fuer numerische Stabilitaet
		max := float32(math.Inf(-1))
		for _, v := range row {
			if v > max {
				max = v
			}
		}

		var sum float64
		for i, v := range row {
			e := math.Exp(float64(v - max))
			out.f32[o+i] = float32(e)
			sum += e
		}
		for i := range row {
			out.f32[o+i] = float32(float64(out.f32[o+i]) / sum)
		}
	}

	return out
}

// Rows gibt die Zeilen des Tensors zurueck, die t2 indiziert.
// Fuer eine Tabelle [V, H] und Indizes der Form S ist das Ergebnis [S..., H].
func (t *Tensor) Rows(ctx ml.Context, t2 ml.Tensor) ml.Tensor {
	ids := t2.(*Tensor)
	if ids.dtype != ml.DTypeI32 {
		panic("cpu: rows requires I32 indices")
	}

	rowLen := t.numel() / t.shape[0]
	shape := append(ids.Shape(), t.shape[1:]...)
	out := newTensor(ml.DTypeF32, shape)

	for i, id := range ids.i32 {
		if int(id) < 0 || int(id) >= t.shape[0] {
			panic(fmt.Sprintf("cpu: row index %d out of range [0,%d)", id, t.shape[0]))
		}
		copy(out.f32[i*rowLen:(i+1)*rowLen], t.f32[int(id)*rowLen:(int(id)+1)*rowLen])
	}

	return out
}

// Argmax reduziert die innerste Dimension auf den Index des groessten Elements
func (t *Tensor) Argmax(ctx ml.Context) ml.Tensor {
	if t.dtype != ml.DTypeF32 {
		panic("cpu: argmax requires F32 tensor")
	}

	inner := t.shape[len(t.shape)-1]
	out := newTensor(ml.DTypeI32, t.shape[:len(t.shape)-1])
	for o := 0; o < t.numel(); o += inner {
		best := 0
		for i, v := range t.f32[o : o+inner] {
			if v > t.f32[o+best] {
				best = i
			}
		}
		out.i32[o/inner] = int32(best)
	}

	return out
}

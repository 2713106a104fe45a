// tensor_matrix.go - Matrix-Operationen fuer Tensoren
// Enthaelt: Mulmat (via gonum BLAS)

package cpu

import (
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"

	"github.com/compgen/transduce/ml"
)

// Mulmat berechnet das Matrixprodukt t x t2 fuer 2D-Tensoren [m,k] x [k,n] -> [m,n]
func (t *Tensor) Mulmat(ctx ml.Context, t2 ml.Tensor) ml.Tensor {
	u := t2.(*Tensor)
	if len(t.shape) != 2 || len(u.shape) != 2 {
		panic("cpu: mulmat requires 2D tensors")
	}
	if t.shape[1] != u.shape[0] {
		panic(fmt.Sprintf("cpu: mulmat mismatch %v %v", t.shape, u.shape))
	}

	m, k, n := t.shape[0], t.shape[1], u.shape[1]
	out := newTensor(ml.DTypeF32, []int{m, n})

	// GEMM braucht Stride >= 1 auch bei leeren Matrizen
	if m == 0 || k == 0 || n == 0 {
		return out
	}

	a := blas32.General{Rows: m, Cols: k, Stride: k, Data: t.f32}
	b := blas32.General{Rows: k, Cols: n, Stride: n, Data: u.f32}
	c := blas32.General{Rows: m, Cols: n, Stride: n, Data: out.f32}
	blas32.Gemm(blas.NoTrans, blas.NoTrans, 1, a, b, 0, c)

	return out
}

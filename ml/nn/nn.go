// nn.go - Basis-Layer fuer neuronale Netze
// Enthaelt: Linear, Embedding

package nn

import (
	"github.com/compgen/transduce/ml"
)

// Linear ist eine affine Transformation y = x * W + b
type Linear struct {
	Weight ml.Tensor
	Bias   ml.Tensor
}

// Forward wendet die lineare Transformation an
func (m *Linear) Forward(ctx ml.Context, t ml.Tensor) ml.Tensor {
	t = t.Mulmat(ctx, m.Weight)
	if m.Bias != nil {
		t = t.Add(ctx, m.Bias)
	}

	return t
}

// Embedding bildet Token-Ids auf Vektoren ab
type Embedding struct {
	Weight ml.Tensor
}

// Forward schlaegt die Embeddings fuer die gegebenen Ids nach
func (m *Embedding) Forward(ctx ml.Context, ids ml.Tensor) ml.Tensor {
	return m.Weight.Rows(ctx, ids)
}

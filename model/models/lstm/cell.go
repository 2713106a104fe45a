// Modul: cell.go
// Beschreibung: LSTM-Zelle mit fusionierten Gate-Gewichten
//
// Die vier Gates werden als ein fusionierter Linear-Layer [*, 4H]
// berechnet und anschliessend in i, f, g, o zerlegt.

package lstm

import (
	"math/rand"

	"github.com/compgen/transduce/ml"
	"github.com/compgen/transduce/ml/nn"
)

// cell buendelt die Gewichte einer LSTM-Zelle
type cell struct {
	InputWeights  *nn.Linear // [E, 4H]
	HiddenWeights *nn.Linear // [H, 4H]

	hiddenSize int
}

// newCell erstellt eine Zelle mit geseedeten Gewichten
func newCell(ctx ml.Context, rng *rand.Rand, inputSize, hiddenSize int) cell {
	return cell{
		InputWeights:  linear(ctx, rng, inputSize, 4*hiddenSize, false),
		HiddenWeights: linear(ctx, rng, hiddenSize, 4*hiddenSize, true),
		hiddenSize:    hiddenSize,
	}
}

// step fuehrt einen Zeitschritt aus: (x, h, c) -> (h', c')
func (l cell) step(ctx ml.Context, x, h, c ml.Tensor) (ml.Tensor, ml.Tensor) {
	z := l.InputWeights.Forward(ctx, x).Add(ctx, l.HiddenWeights.Forward(ctx, h))

	gates := z.Chunk(ctx, 1, l.hiddenSize)
	i := gates[0].Sigmoid(ctx)
	f := gates[1].Sigmoid(ctx)
	g := gates[2].Tanh(ctx)
	o := gates[3].Sigmoid(ctx)

	c = f.Mul(ctx, c).Add(ctx, i.Mul(ctx, g))
	h = o.Mul(ctx, c.Tanh(ctx))

	return h, c
}

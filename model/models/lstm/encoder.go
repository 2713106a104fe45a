// Modul: encoder.go
// Beschreibung: LSTM-Encoder mit fortsetzbarem (h, c)-Hidden-State

package lstm

import (
	"fmt"
	"math/rand"

	"github.com/compgen/transduce/ml"
	"github.com/compgen/transduce/ml/nn"
	"github.com/compgen/transduce/model"
)

// Encoder encodiert eine Sequenz mit einer LSTM-Zelle
type Encoder struct {
	TokenEmbedding *nn.Embedding
	Cell           cell

	hiddenSize int
}

// newEncoder erstellt den Encoder mit geseedeten Gewichten
func newEncoder(ctx ml.Context, rng *rand.Rand, opts Options) *Encoder {
	return &Encoder{
		TokenEmbedding: &nn.Embedding{Weight: uniform(ctx, rng, 0.08, opts.vocabSize, opts.embeddingLength)},
		Cell:           newCell(ctx, rng, opts.embeddingLength, opts.hiddenSize),
		hiddenSize:     opts.hiddenSize,
	}
}

// Encode fuehrt einen vollstaendigen, zustandslosen Encode durch
func (e *Encoder) Encode(ctx ml.Context, source ml.Tensor) (model.Encoding, error) {
	B := source.Dim(1)
	hidden := model.Hidden{
		ctx.Zeros(ml.DTypeF32, 1, B, e.hiddenSize),
		ctx.Zeros(ml.DTypeF32, 1, B, e.hiddenSize),
	}

	return e.EncodeWithHidden(ctx, source, hidden)
}

// EncodeWithHidden setzt das Encoding ab einem gegebenen (h, c)-Paar fort
func (e *Encoder) EncodeWithHidden(ctx ml.Context, source ml.Tensor, hidden model.Hidden) (model.Encoding, error) {
	if len(hidden) != 2 {
		return model.Encoding{}, fmt.Errorf("lstm: hidden state has %d components, want 2", len(hidden))
	}

	T, B := source.Dim(0), source.Dim(1)
	h := hidden[0].Reshape(ctx, B, e.hiddenSize)
	c := hidden[1].Reshape(ctx, B, e.hiddenSize)

	var outputs ml.Tensor
	for t := 0; t < T; t++ {
		ids := source.Slice(ctx, 0, t, t+1, 1).Reshape(ctx, B)
		x := e.TokenEmbedding.Forward(ctx, ids)
		h, c = e.Cell.step(ctx, x, h, c)

		step := h.Reshape(ctx, 1, B, e.hiddenSize)
		if outputs == nil {
			outputs = step
		} else {
			outputs = outputs.Concat(ctx, step, 0)
		}
	}

	return model.Encoding{
		Source: source,
		EncHidden: model.Hidden{
			h.Reshape(ctx, 1, B, e.hiddenSize),
			c.Reshape(ctx, 1, B, e.hiddenSize),
		},
		EncOutputs: outputs,
	}, nil
}

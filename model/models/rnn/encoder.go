// Modul: encoder.go
// Beschreibung: RNN-Encoder mit Schritt-Outputs und fortsetzbarem Hidden-State

package rnn

import (
	"fmt"
	"math/rand"

	"github.com/compgen/transduce/ml"
	"github.com/compgen/transduce/ml/nn"
	"github.com/compgen/transduce/model"
)

// Encoder encodiert eine Sequenz mit einer Elman-Zelle:
// h' = tanh(Wx*x + Wh*h + b)
type Encoder struct {
	TokenEmbedding *nn.Embedding
	InputWeights   *nn.Linear
	HiddenWeights  *nn.Linear

	hiddenSize int
}

// newEncoder erstellt den Encoder mit geseedeten Gewichten
func newEncoder(ctx ml.Context, rng *rand.Rand, opts Options) *Encoder {
	return &Encoder{
		TokenEmbedding: &nn.Embedding{Weight: uniform(ctx, rng, 0.08, opts.vocabSize, opts.embeddingLength)},
		InputWeights:   linear(ctx, rng, opts.embeddingLength, opts.hiddenSize, false),
		HiddenWeights:  linear(ctx, rng, opts.hiddenSize, opts.hiddenSize, true),
		hiddenSize:     opts.hiddenSize,
	}
}

// Encode fuehrt einen vollstaendigen, zustandslosen Encode durch
func (e *Encoder) Encode(ctx ml.Context, source ml.Tensor) (model.Encoding, error) {
	hidden := model.Hidden{ctx.Zeros(ml.DTypeF32, 1, source.Dim(1), e.hiddenSize)}
	return e.EncodeWithHidden(ctx, source, hidden)
}

// EncodeWithHidden setzt das Encoding ab einem gegebenen Hidden-State fort
func (e *Encoder) EncodeWithHidden(ctx ml.Context, source ml.Tensor, hidden model.Hidden) (model.Encoding, error) {
	if len(hidden) != 1 {
		return model.Encoding{}, fmt.Errorf("rnn: hidden state has %d components, want 1", len(hidden))
	}

	T, B := source.Dim(0), source.Dim(1)
	h := hidden[0].Reshape(ctx, B, e.hiddenSize)

	var outputs ml.Tensor
	for t := 0; t < T; t++ {
		ids := source.Slice(ctx, 0, t, t+1, 1).Reshape(ctx, B)
		x := e.TokenEmbedding.Forward(ctx, ids)
		h = e.InputWeights.Forward(ctx, x).Add(ctx, e.HiddenWeights.Forward(ctx, h)).Tanh(ctx)

		step := h.Reshape(ctx, 1, B, e.hiddenSize)
		if outputs == nil {
			outputs = step
		} else {
			outputs = outputs.Concat(ctx, step, 0)
		}
	}

	return model.Encoding{
		Source:     source,
		EncHidden:  model.Hidden{h.Reshape(ctx, 1, B, e.hiddenSize)},
		EncOutputs: outputs,
	}, nil
}

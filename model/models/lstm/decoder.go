// Modul: decoder.go
// Beschreibung: LSTM-Decoder mit Greedy-Decoding und optionalem Teacher-Forcing

package lstm

import (
	"errors"
	"math/rand"

	"github.com/compgen/transduce/ml"
	"github.com/compgen/transduce/ml/nn"
	"github.com/compgen/transduce/model"
)

// Decoder decodiert aus einem Encoding Schritt fuer Schritt Logits ueber
// dem Ziel-Vokabular
type Decoder struct {
	TokenEmbedding *nn.Embedding
	Cell           cell
	Output         *nn.Linear

	hiddenSize int
	sos        int32
	rng        *rand.Rand
}

// newDecoder erstellt den Decoder mit geseedeten Gewichten
func newDecoder(ctx ml.Context, rng *rand.Rand, opts Options) *Decoder {
	return &Decoder{
		TokenEmbedding: &nn.Embedding{Weight: uniform(ctx, rng, 0.08, opts.targetVocabSize, opts.embeddingLength)},
		Cell:           newCell(ctx, rng, opts.embeddingLength, opts.hiddenSize),
		Output:         linear(ctx, rng, opts.hiddenSize, opts.targetVocabSize, true),
		hiddenSize:     opts.hiddenSize,
		sos:            opts.sos,
		rng:            rng,
	}
}

// Decode erzeugt Logits der Form [time, batch, vocabulary]
func (d *Decoder) Decode(ctx ml.Context, enc model.Encoding, tfRatio float32) (model.Encoding, error) {
	if enc.Source == nil {
		return model.Encoding{}, errors.New("lstm: decode requires a source")
	}

	B := enc.Source.Dim(1)
	steps := enc.Source.Dim(0)
	if enc.Target != nil {
		steps = enc.Target.Dim(0)
	}

	var h, c ml.Tensor
	if enc.EncHidden != nil {
		if len(enc.EncHidden) != 2 {
			return model.Encoding{}, errors.New("lstm: hidden state must have two components")
		}
		h = enc.EncHidden[0].Reshape(ctx, B, d.hiddenSize)
		c = enc.EncHidden[1].Reshape(ctx, B, d.hiddenSize)
	} else {
		h = ctx.Zeros(ml.DTypeF32, B, d.hiddenSize)
		c = ctx.Zeros(ml.DTypeF32, B, d.hiddenSize)
	}

	prev := d.firstInput(ctx, enc, B)

	var logits ml.Tensor
	for t := 0; t < steps; t++ {
		x := d.TokenEmbedding.Forward(ctx, prev)
		h, c = d.Cell.step(ctx, x, h, c)

		step := d.Output.Forward(ctx, h)
		stacked := step.Reshape(ctx, 1, B, step.Dim(1))
		if logits == nil {
			logits = stacked
		} else {
			logits = logits.Concat(ctx, stacked, 0)
		}

		if enc.Target != nil && tfRatio > 0 && d.rng.Float32() < tfRatio {
			prev = enc.Target.Slice(ctx, 0, t, t+1, 1).Reshape(ctx, B)
		} else {
			prev = step.Argmax(ctx)
		}
	}

	return model.Encoding{DecOutputs: logits}, nil
}

// firstInput bestimmt das erste Decoder-Token: das Transform-Token der
// Annotation, sonst <sos>
func (d *Decoder) firstInput(ctx ml.Context, enc model.Encoding, batch int) ml.Tensor {
	if enc.Transform != nil {
		return enc.Transform.Slice(ctx, 0, 0, 1, 1).Reshape(ctx, batch)
	}

	ids := make([]int32, batch)
	for i := range ids {
		ids[i] = d.sos
	}

	return ctx.FromInts(ids, batch)
}

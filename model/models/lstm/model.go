// Modul: model.go
// Beschreibung: LSTM-Referenzarchitektur mit (h, c)-Tupel-Hidden-State
// Hauptstrukturen:
//   - Model: Encoder/Decoder-Paar mit zweikomponentigem Hidden-State
//   - New: Erstellt das Modell mit deterministisch geseedeten Gewichten

package lstm

import (
	"math/rand"

	"github.com/compgen/transduce/ml"
	"github.com/compgen/transduce/ml/nn"
	"github.com/compgen/transduce/model"
)

// Model repraesentiert das LSTM-Encoder/Decoder-Paar
type Model struct {
	model.Base
	*Encoder
	*Decoder
}

// Options enthaelt die Architektur-Parameter
type Options struct {
	vocabSize       int
	targetVocabSize int
	embeddingLength int
	hiddenSize      int
	sos             int32
}

// New erstellt ein neues LSTM-Modell aus der gegebenen Konfiguration
func New(base model.Base, c model.Config) (model.Model, error) {
	opts := Options{
		vocabSize:       int(c.Uint("vocab_size", 16)),
		embeddingLength: int(c.Uint("embedding_length", 8)),
		hiddenSize:      int(c.Uint("hidden_size", 16)),
		sos:             int32(c.Uint("sos_token_id", 1)),
	}
	opts.targetVocabSize = int(c.Uint("target_vocab_size", uint32(opts.vocabSize)))

	rng := rand.New(rand.NewSource(int64(c.Uint("seed", 42))))
	ctx := base.Backend().NewContext()
	defer ctx.Close()

	return &Model{
		Base:    base,
		Encoder: newEncoder(ctx, rng, opts),
		Decoder: newDecoder(ctx, rng, opts),
	}, nil
}

// uniform erstellt einen Tensor mit Werten aus [-scale, scale]
func uniform(ctx ml.Context, rng *rand.Rand, scale float32, shape ...int) ml.Tensor {
	n := 1
	for _, d := range shape {
		n *= d
	}

	data := make([]float32, n)
	for i := range data {
		data[i] = (rng.Float32()*2 - 1) * scale
	}

	return ctx.FromFloats(data, shape...)
}

// linear erstellt einen Linear-Layer mit zufaelligen Gewichten
func linear(ctx ml.Context, rng *rand.Rand, in, out int, bias bool) *nn.Linear {
	l := &nn.Linear{Weight: uniform(ctx, rng, 0.08, in, out)}
	if bias {
		l.Bias = ctx.Zeros(ml.DTypeF32, out)
	}

	return l
}

func init() {
	model.Register("lstm", New)
}

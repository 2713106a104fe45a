// encoding.go - Encoding-Bag fuer den Datenfluss zwischen Encoder und Decoder
package model

import "github.com/compgen/transduce/ml"

// Hidden is a recurrent hidden state, one tensor per state component:
// a single component for plain RNN cells, an (h, c) pair for LSTM cells.
// Each component is shaped [layers, batch, hidden].
type Hidden []ml.Tensor

// Encoding is the optional-field bag passed between the encoder, the
// arithmetic reducer, and the decoder. A nil field is absent, which is
// distinct from a present zero-valued tensor.
//
// Encodings are created fresh per encode/decode call, never shared or
// mutated across batch items, and discarded once the next stage has
// consumed them.
type Encoding struct {
	// Source is the token sequence this encoding was computed from.
	Source ml.Tensor

	// Target is the expected output token sequence, when known.
	Target ml.Tensor

	// Transform is the annotation the decoder is conditioned on.
	Transform ml.Tensor

	// EncHidden is the encoder's final recurrent state.
	EncHidden Hidden

	// EncOutputs holds the encoder's per-step outputs, [time, batch, hidden].
	EncOutputs ml.Tensor

	// DecOutputs holds the decoder's output logits, [time, batch, vocabulary].
	DecOutputs ml.Tensor
}

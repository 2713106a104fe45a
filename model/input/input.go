// input.go - Batch-Typen fuer den Modell-Forward-Pass
package input

import "github.com/compgen/transduce/ml"

// Specials are the reserved vocabulary ids every sequence is framed with.
// The unknown id doubles as the structural operator delimiter inside raw
// expression batches; see expression.Splitter.
type Specials struct {
	Unknown int32
	SOS     int32
	EOS     int32
}

// Batch contains the inputs for a model forward pass.
//
// Sequences are time-major I32 tensors of shape [time, batch]. Every
// sequence starts with an SOS marker and ends with an EOS marker.
type Batch struct {
	// Source is the input token sequence batch.
	Source ml.Tensor

	// Target is the expected output token sequence batch, when known.
	Target ml.Tensor

	// Annotation carries the transformation tokens the decoder is
	// conditioned on. Operators between sub-expressions are supplied
	// out-of-band alongside the batch, never inferred from Source.
	Annotation ml.Tensor

	// Specials are the reserved ids used to frame the sequences above.
	Specials Specials
}

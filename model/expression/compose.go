// compose.go - Kompositions-Strategien fuer Ausdrucks-Batches
//
// Ein Composer zerlegt einen Batch in Teilausdruecke, encodiert sie,
// reduziert die Encodings arithmetisch und uebergibt das Komposit an den
// Decoder. Der Offset bestimmt, wann relativ zur Encoder/Decoder-Grenze
// reduziert wird.

package expression

import (
	"fmt"

	"github.com/compgen/transduce/ml"
	"github.com/compgen/transduce/model"
	"github.com/compgen/transduce/model/input"
)

// Composition paths always decode inference-style, without peeking at
// ground truth, even when a target is available. That is the point of the
// generalization test, not a decoding optimization.
const composeTFRatio = 0.0

// Composer wires the splitter, an encoder, the arithmetic reducer, and a
// decoder into one composition pass over a batch.
type Composer struct {
	Encoder  model.Encoder
	Decoder  model.Decoder
	Splitter Splitter

	// Offset is the number of steps relative to the encoder/decoder
	// boundary at which reduction happens. Zero reduces exactly at the
	// boundary after all terms are fully encoded. Negative values reduce
	// during encoding: each term is encoded only up to -Offset steps
	// before its end, the partial encodings are combined, and encoding
	// resumes on the first term's remaining suffix seeded with the
	// reduced hidden state. Positive values (reduce during decoding) are
	// unsupported.
	Offset int
}

// Compose runs one composition pass and returns the decoded logits,
// shaped [time, batch, vocabulary].
func (c *Composer) Compose(ctx ml.Context, batch input.Batch, ops []Operator) (ml.Tensor, error) {
	if c.Offset > 0 {
		return nil, ErrReduceDuringDecode
	}

	terms, err := c.Splitter.Split(ctx, batch.Source)
	if err != nil {
		return nil, err
	}
	if len(ops) != len(terms)-1 {
		return nil, fmt.Errorf("%w: %d operators for %d terms", ErrBadExpression, len(ops), len(terms))
	}

	first := terms[0]
	decIn := model.Encoding{Source: first, Transform: batch.Annotation}

	if c.Offset == 0 {
		encodings, err := c.encodeTerms(ctx, terms, 0)
		if err != nil {
			return nil, err
		}

		reduced, err := Reduce(ctx, encodings, ops)
		if err != nil {
			return nil, err
		}

		decIn.EncHidden = reduced.EncHidden
		decIn.EncOutputs = reduced.EncOutputs
	} else {
		// Reduktion waehrend des Encodings: alle Terme partiell encodieren
		encodings, err := c.encodeTerms(ctx, terms, c.Offset)
		if err != nil {
			return nil, err
		}

		reduced, err := Reduce(ctx, encodings, ops)
		if err != nil {
			return nil, err
		}

		// Encoding auf dem Rest des ersten Terms fortsetzen, geseedet
		// mit dem reduzierten Hidden-State
		suffix := first.Slice(ctx, 0, first.Dim(0)+c.Offset, first.Dim(0), 1)
		resumed, err := c.Encoder.EncodeWithHidden(ctx, suffix, reduced.EncHidden)
		if err != nil {
			return nil, err
		}

		decIn.EncHidden = resumed.EncHidden
		if reduced.EncOutputs != nil && resumed.EncOutputs != nil {
			decIn.EncOutputs = reduced.EncOutputs.Concat(ctx, resumed.EncOutputs, 0)
		}
	}

	out, err := c.Decoder.Decode(ctx, decIn, composeTFRatio)
	if err != nil {
		return nil, err
	}

	return out.DecOutputs, nil
}

// ComposeEOS is the EOS-aware composition variant: terms are encoded with
// their end marker excluded, the encodings are reduced, and the shared end
// marker is encoded once afterwards, seeded with the reduced hidden state.
// Its output is appended to the reduced outputs so that exactly one final
// decoding step sees the complete sequence.
func (c *Composer) ComposeEOS(ctx ml.Context, batch input.Batch, ops []Operator) (ml.Tensor, error) {
	terms, err := c.Splitter.Split(ctx, batch.Source)
	if err != nil {
		return nil, err
	}
	if len(ops) != len(terms)-1 {
		return nil, fmt.Errorf("%w: %d operators for %d terms", ErrBadExpression, len(ops), len(terms))
	}

	// Jeden Term ohne seinen End-Marker encodieren
	encodings, err := c.encodeTerms(ctx, terms, -1)
	if err != nil {
		return nil, err
	}

	reduced, err := Reduce(ctx, encodings, ops)
	if err != nil {
		return nil, err
	}

	// Den gemeinsamen End-Marker genau einmal encodieren, geseedet mit
	// dem reduzierten Hidden-State
	first := terms[0]
	eos := first.Slice(ctx, 0, first.Dim(0)-1, first.Dim(0), 1)
	resumed, err := c.Encoder.EncodeWithHidden(ctx, eos, reduced.EncHidden)
	if err != nil {
		return nil, err
	}

	if reduced.EncOutputs == nil || resumed.EncOutputs == nil {
		return nil, fmt.Errorf("%w: EOS-aware composition requires per-step encoder outputs", ErrShapeContract)
	}

	outputs := reduced.EncOutputs.Concat(ctx, resumed.EncOutputs, 0)
	if outputs.Dim(0) != first.Dim(0) || outputs.Dim(1) != first.Dim(1) {
		return nil, fmt.Errorf("%w: composed outputs [%d,%d] do not match the input [%d,%d]",
			ErrShapeContract, outputs.Dim(0), outputs.Dim(1), first.Dim(0), first.Dim(1))
	}
	for _, h := range resumed.EncHidden {
		if h.Dim(0) != 1 {
			return nil, fmt.Errorf("%w: hidden state spans %d layers, want 1", ErrShapeContract, h.Dim(0))
		}
	}

	decIn := model.Encoding{
		Source:     first,
		Transform:  batch.Annotation,
		EncHidden:  resumed.EncHidden,
		EncOutputs: outputs,
	}

	out, err := c.Decoder.Decode(ctx, decIn, composeTFRatio)
	if err != nil {
		return nil, err
	}

	return out.DecOutputs, nil
}

// encodeTerms encodiert jeden Term, optional um -offset Schritte vor dem
// Ende abgeschnitten (offset == 0 encodiert vollstaendig)
func (c *Composer) encodeTerms(ctx ml.Context, terms []ml.Tensor, offset int) ([]model.Encoding, error) {
	encodings := make([]model.Encoding, len(terms))
	for i, term := range terms {
		cut := term.Dim(0) + offset
		if cut < 1 {
			return nil, fmt.Errorf("%w: offset %d leaves nothing of term %d to encode", ErrBadExpression, offset, i)
		}

		if offset != 0 {
			term = term.Slice(ctx, 0, 0, cut, 1)
		}

		enc, err := c.Encoder.Encode(ctx, term)
		if err != nil {
			return nil, err
		}
		encodings[i] = enc
	}

	return encodings, nil
}

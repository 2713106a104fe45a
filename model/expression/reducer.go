// reducer.go - Arithmetische Reduktion von Teilausdrucks-Encodings
//
// Kombiniert eine geordnete Liste von Encodings mit den dazwischen
// stehenden Operatoren per elementweiser Addition/Subtraktion. Es findet
// keine Re-Normalisierung statt: die Komposition verlaesst sich auf
// additive Struktur im gelernten Repraesentationsraum.

package expression

import (
	"fmt"
	"slices"

	"github.com/compgen/transduce/ml"
	"github.com/compgen/transduce/model"
)

// Reduce folds N term encodings and N-1 operators left to right into one
// composite encoding, field by field.
//
// The combined fields are EncHidden and EncOutputs. A field absent from
// any participating term is omitted from the result rather than failing:
// partial-field composition is expected (an encoder may report only a
// hidden state for single-token inputs). Tuple-valued hidden states are
// combined position by position, preserving their arity. The result is a
// pure function of the inputs, bit-identical across repeated calls.
func Reduce(ctx ml.Context, terms []model.Encoding, ops []Operator) (model.Encoding, error) {
	if len(terms) == 0 {
		return model.Encoding{}, fmt.Errorf("%w: no terms", ErrBadExpression)
	}
	if len(ops) != len(terms)-1 {
		return model.Encoding{}, fmt.Errorf("%w: %d operators for %d terms", ErrBadExpression, len(ops), len(terms))
	}

	var out model.Encoding

	hidden, err := reduceHidden(ctx, terms, ops)
	if err != nil {
		return model.Encoding{}, err
	}
	out.EncHidden = hidden

	out.EncOutputs = reduceOutputs(ctx, terms, ops)

	return out, nil
}

// reduceHidden kombiniert die Hidden-States komponentenweise
func reduceHidden(ctx ml.Context, terms []model.Encoding, ops []Operator) (model.Hidden, error) {
	for _, term := range terms {
		if term.EncHidden == nil {
			return nil, nil
		}
	}

	arity := len(terms[0].EncHidden)
	for _, term := range terms[1:] {
		if len(term.EncHidden) != arity {
			return nil, fmt.Errorf("%w: hidden state arity %d vs %d", ErrShapeContract, arity, len(term.EncHidden))
		}
	}

	acc := model.Hidden(slices.Clone(terms[0].EncHidden))
	for i, op := range ops {
		for j := 0; j < arity; j++ {
			acc[j] = op.apply(ctx, acc[j], terms[i+1].EncHidden[j])
		}
	}

	return acc, nil
}

// reduceOutputs kombiniert die Schritt-Outputs elementweise
func reduceOutputs(ctx ml.Context, terms []model.Encoding, ops []Operator) ml.Tensor {
	for _, term := range terms {
		if term.EncOutputs == nil {
			return nil
		}
	}

	acc := terms[0].EncOutputs
	for i, op := range ops {
		acc = op.apply(ctx, acc, terms[i+1].EncOutputs)
	}

	return acc
}

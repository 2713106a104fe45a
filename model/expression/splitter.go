// splitter.go - Zerlegung von Batch-Sequenzen in Teilausdruecke
//
// Rohsequenzen haben die Form
//   <sos> ..... <delim> ..... <delim> ..... <eos>
// wobei <delim> die Grenze zwischen zwei Teilausdruecken markiert. Der
// Splitter schneidet an den Delimiter-Zeilen und stellt die
// Start/End-Marker-Invariante fuer jeden Teilausdruck wieder her.

package expression

import (
	"fmt"

	"github.com/compgen/transduce/ml"
	"github.com/compgen/transduce/model/input"
)

// Splitter locates operator-delimiter tokens in a time-major batch and
// splits each sequence into an ordered list of sub-expression batches.
type Splitter struct {
	// Delimiter is the token id that separates sub-expressions. The
	// corpus convention reuses the vocabulary's unknown id for this,
	// since the operators were never part of the training vocabulary;
	// a dedicated delimiter id can be configured instead.
	Delimiter int32

	SOS int32
	EOS int32
}

// NewSplitter erstellt einen Splitter aus den reservierten Token-Ids
func NewSplitter(sp input.Specials) Splitter {
	return Splitter{Delimiter: sp.Unknown, SOS: sp.SOS, EOS: sp.EOS}
}

// Split splits a [time, batch] token tensor at the delimiter rows.
//
// Every example in the batch must carry delimiters at identical rows;
// otherwise Split fails fast with ErrHeterogeneousBatch. With zero
// delimiters the whole sequence is returned as a single sub-expression,
// unchanged. Otherwise, per the marker rewrite rule:
//   - the first sub-expression keeps its <sos> and gains an appended <eos>
//   - middle sub-expressions get their leading delimiter rewritten to
//     <sos> and gain an appended <eos>
//   - the last sub-expression gets its leading delimiter rewritten to
//     <sos> and keeps the original <eos>
func (s Splitter) Split(ctx ml.Context, source ml.Tensor) ([]ml.Tensor, error) {
	T, B := source.Dim(0), source.Dim(1)
	toks := source.Ints()

	// Delimiter-Zeilen anhand der ersten Spalte bestimmen
	var cuts []int
	for t := 0; t < T; t++ {
		if toks[t*B] == s.Delimiter {
			cuts = append(cuts, t)
		}
	}

	// Alle Spalten muessen dieselbe Struktur tragen
	for t := 0; t < T; t++ {
		for b := 0; b < B; b++ {
			if (toks[t*B+b] == s.Delimiter) != (toks[t*B] == s.Delimiter) {
				return nil, fmt.Errorf("%w: delimiter at step %d in example %d only", ErrHeterogeneousBatch, t, b)
			}
		}
	}

	if len(cuts) == 0 {
		return []ml.Tensor{source}, nil
	}

	starts := append([]int{0}, cuts...)
	ends := append(append([]int(nil), cuts...), T)

	subs := make([]ml.Tensor, 0, len(starts))
	for i := range starts {
		n := ends[i] - starts[i]
		if n < 1 {
			return nil, fmt.Errorf("%w: empty sub-expression at step %d", ErrBadExpression, starts[i])
		}

		last := i == len(starts)-1
		rows := n
		if !last {
			rows++ // Platz fuer den angehaengten <eos>
		}

		data := make([]int32, rows*B)
		copy(data, toks[starts[i]*B:ends[i]*B])

		if i > 0 {
			for b := 0; b < B; b++ {
				data[b] = s.SOS
			}
		}
		if !last {
			for b := 0; b < B; b++ {
				data[n*B+b] = s.EOS
			}
		}

		subs = append(subs, ctx.FromInts(data, rows, B))
	}

	return subs, nil
}

// cmd_expr.go - Parsen von Ausdrucks-Zeilen und Batch-Aufbau
//
// Zeilenformat:
//   <source ids> | <operators> | <target ids> [| <annotation ids>]
// z.B.
//   1 3 4 5 0 1 3 6 7 0 1 8 6 7 2 | - + | 1 8 4 5 2
// Die Operator-Grenzen in der Source-Sequenz sind mit der Delimiter-Id
// (Default: <unk> = 0) markiert, die Operatoren selbst stehen im zweiten
// Feld.
package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/compgen/transduce/envconfig"
	"github.com/compgen/transduce/ml"
	"github.com/compgen/transduce/model"
	"github.com/compgen/transduce/model/expression"
	"github.com/compgen/transduce/model/input"
)

// exprSpec ist eine geparste Ausdrucks-Zeile
type exprSpec struct {
	source     []int32
	ops        []expression.Operator
	target     []int32
	annotation []int32
}

// parseExpression parst eine Ausdrucks-Zeile
func parseExpression(line string) (exprSpec, error) {
	fields := strings.Split(line, "|")
	if len(fields) < 2 {
		return exprSpec{}, fmt.Errorf("expected at least 'source | operators', got %q", line)
	}

	var e exprSpec
	var err error
	if e.source, err = parseIDs(fields[0]); err != nil {
		return exprSpec{}, err
	}

	for _, s := range strings.Fields(fields[1]) {
		op, err := expression.ParseOperator(s)
		if err != nil {
			return exprSpec{}, err
		}
		e.ops = append(e.ops, op)
	}

	if len(fields) > 2 {
		if e.target, err = parseIDs(fields[2]); err != nil {
			return exprSpec{}, err
		}
	}
	if len(fields) > 3 {
		if e.annotation, err = parseIDs(fields[3]); err != nil {
			return exprSpec{}, err
		}
	}

	return e, nil
}

// parseIDs parst eine Liste von Token-Ids
func parseIDs(s string) ([]int32, error) {
	var ids []int32
	for _, f := range strings.Fields(s) {
		n, err := strconv.ParseInt(f, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid token id %q: %w", f, err)
		}
		ids = append(ids, int32(n))
	}

	if len(ids) == 0 {
		return nil, fmt.Errorf("empty id list %q", s)
	}

	return ids, nil
}

// batch baut einen Batch der Groesse 1 aus einer geparsten Zeile
func (e exprSpec) batch(ctx ml.Context, specials input.Specials) input.Batch {
	b := input.Batch{
		Source:   ctx.FromInts(e.source, len(e.source), 1),
		Specials: specials,
	}
	if e.target != nil {
		b.Target = ctx.FromInts(e.target, len(e.target), 1)
	}
	if e.annotation != nil {
		b.Annotation = ctx.FromInts(e.annotation, len(e.annotation), 1)
	}

	return b
}

// modelFlags registriert die gemeinsamen Modell-Flags
func modelFlags(cmd *cobra.Command) {
	cmd.Flags().String("arch", "rnn", "Model architecture (rnn, lstm)")
	cmd.Flags().Uint32("vocab-size", 32, "Source and target vocabulary size")
	cmd.Flags().Uint32("hidden-size", 16, "Recurrent hidden size")
	cmd.Flags().Uint32("embedding-length", 8, "Token embedding size")
	cmd.Flags().Int32("unk", 0, "Unknown token id (doubles as the operator delimiter)")
	cmd.Flags().Int32("sos", 1, "Start-of-sequence token id")
	cmd.Flags().Int32("eos", 2, "End-of-sequence token id")
}

// modelFromFlags erstellt das Modell gemaess Flags und Environment
func modelFromFlags(cmd *cobra.Command) (model.Model, input.Specials, error) {
	arch, _ := cmd.Flags().GetString("arch")
	vocabSize, _ := cmd.Flags().GetUint32("vocab-size")
	hiddenSize, _ := cmd.Flags().GetUint32("hidden-size")
	embeddingLength, _ := cmd.Flags().GetUint32("embedding-length")
	unk, _ := cmd.Flags().GetInt32("unk")
	sos, _ := cmd.Flags().GetInt32("sos")
	eos, _ := cmd.Flags().GetInt32("eos")

	m, err := model.New(arch, model.Config{
		"backend":          envconfig.Backend(),
		"num_threads":      uint32(envconfig.NumThreads()),
		"seed":             uint32(envconfig.Seed()),
		"vocab_size":       vocabSize,
		"hidden_size":      hiddenSize,
		"embedding_length": embeddingLength,
		"sos_token_id":     uint32(sos),
	})
	if err != nil {
		return nil, input.Specials{}, err
	}

	return m, input.Specials{Unknown: unk, SOS: sos, EOS: eos}, nil
}

// cmd_eval.go - eval Command: Kompositions-Genauigkeit ueber einen Datensatz
package cmd

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/compgen/transduce/model/expression"
)

// newEvalCmd - Erstellt den eval Command
func newEvalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval FILE",
		Short: "Evaluate composition accuracy over a file of expressions",
		Args:  cobra.ExactArgs(1),
		RunE:  EvalHandler,
	}

	modelFlags(cmd)
	cmd.Flags().Int("offset", 0, "Reduction offset relative to the encoder/decoder boundary (<= 0)")
	cmd.Flags().Bool("eos-aware", false, "Reduce before the shared end marker is encoded")
	cmd.Flags().Int("concurrency", 4, "Number of expressions evaluated in parallel")

	return cmd
}

// evalResult haelt das Ergebnis einer Ausdrucks-Zeile
type evalResult struct {
	correct     bool
	tokensRight int
	tokensTotal int
}

// EvalHandler - Evaluierung ueber alle Zeilen der Datei
func EvalHandler(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	var specs []exprSpec
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		spec, err := parseExpression(line)
		if err != nil {
			return err
		}
		if spec.target == nil {
			return fmt.Errorf("line %q has no target to evaluate against", line)
		}
		specs = append(specs, spec)
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if len(specs) == 0 {
		return fmt.Errorf("no expressions in %s", args[0])
	}

	m, specials, err := modelFromFlags(cmd)
	if err != nil {
		return err
	}
	defer m.Backend().Close()

	offset, _ := cmd.Flags().GetInt("offset")
	eosAware, _ := cmd.Flags().GetBool("eos-aware")
	concurrency, _ := cmd.Flags().GetInt("concurrency")

	composer := expression.Composer{
		Encoder:  m,
		Decoder:  m,
		Splitter: expression.NewSplitter(specials),
		Offset:   offset,
	}

	runID := uuid.New()
	start := time.Now()
	slog.Info("starting evaluation", "run", runID, "expressions", len(specs))

	// Die Komposition selbst ist synchron; parallelisiert wird nur ueber
	// Ausdruecke hinweg, mit einem Kontext pro Goroutine.
	results := make([]evalResult, len(specs))
	g, gctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(concurrency)

	for i, spec := range specs {
		i, spec := i, spec
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			ctx := m.Backend().NewContext()
			defer ctx.Close()

			compose := composer.Compose
			if eosAware {
				compose = composer.ComposeEOS
			}

			logits, err := compose(ctx, spec.batch(ctx, specials), spec.ops)
			if err != nil {
				return err
			}

			results[i] = score(logits.Argmax(ctx).Ints(), spec.target)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	var correct, tokensRight, tokensTotal int
	for _, r := range results {
		if r.correct {
			correct++
		}
		tokensRight += r.tokensRight
		tokensTotal += r.tokensTotal
	}

	slog.Info("evaluation finished", "run", runID, "elapsed", time.Since(start))

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"RUN", "EXPRESSIONS", "SEQ ACC", "TOKEN ACC"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.Append([]string{
		runID.String(),
		fmt.Sprintf("%d", len(specs)),
		fmt.Sprintf("%.3f", float64(correct)/float64(len(specs))),
		fmt.Sprintf("%.3f", float64(tokensRight)/float64(tokensTotal)),
	})
	table.Render()

	return nil
}

// score vergleicht die Vorhersage mit dem Ziel
func score(pred, target []int32) evalResult {
	r := evalResult{tokensTotal: len(target), correct: len(pred) == len(target)}
	for i, tok := range target {
		if i < len(pred) && pred[i] == tok {
			r.tokensRight++
		} else {
			r.correct = false
		}
	}

	return r
}

// cmd_compose.go - compose Command: eine Ausdrucks-Komposition ausfuehren
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/compgen/transduce/logutil"
	"github.com/compgen/transduce/ml"
	"github.com/compgen/transduce/model/expression"
)

// newComposeCmd - Erstellt den compose Command
func newComposeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compose EXPRESSION",
		Short: "Run arithmetic composition over one expression",
		Args:  cobra.ExactArgs(1),
		RunE:  ComposeHandler,
	}

	modelFlags(cmd)
	cmd.Flags().Int("offset", 0, "Reduction offset relative to the encoder/decoder boundary (<= 0)")
	cmd.Flags().Bool("eos-aware", false, "Reduce before the shared end marker is encoded")

	return cmd
}

// ComposeHandler - Fuehrt eine Komposition aus und gibt die Vorhersage aus
func ComposeHandler(cmd *cobra.Command, args []string) error {
	spec, err := parseExpression(args[0])
	if err != nil {
		return err
	}

	m, specials, err := modelFromFlags(cmd)
	if err != nil {
		return err
	}
	defer m.Backend().Close()

	offset, _ := cmd.Flags().GetInt("offset")
	eosAware, _ := cmd.Flags().GetBool("eos-aware")

	ctx := m.Backend().NewContext()
	defer ctx.Close()

	composer := expression.Composer{
		Encoder:  m,
		Decoder:  m,
		Splitter: expression.NewSplitter(specials),
		Offset:   offset,
	}

	batch := spec.batch(ctx, specials)

	compose := composer.Compose
	if eosAware {
		compose = composer.ComposeEOS
	}

	logits, err := compose(ctx, batch, spec.ops)
	if err != nil {
		return err
	}

	if slog.Default().Enabled(cmd.Context(), logutil.LevelTrace) {
		logutil.Trace("composed logits", "tensor", ml.Dump(ctx, logits))
	}

	probs := logits.Softmax(ctx).Floats()
	ids := logits.Argmax(ctx).Ints()
	vocab := logits.Dim(2)

	for t, id := range ids {
		fmt.Fprintf(cmd.OutOrStdout(), "%d\t(p=%.3f)\n", id, probs[t*vocab+int(id)])
	}

	return nil
}

// errors.go - Fehler-Taxonomie der Ausdrucks-Komposition
//
// Alle Fehler propagieren unbehandelt zum Aufrufer: dieses Subsystem macht
// keine Retries und unterdrueckt nichts, weil eine stille Fehl-Komposition
// die Experiment-Ergebnisse entwerten wuerde.

package expression

import (
	"errors"
	"fmt"
)

var (
	// ErrHeterogeneousBatch reports a batch whose examples do not share
	// an identical operator structure (count and positions). That is a
	// precondition violation; such batches must be rejected or routed
	// through a single-example path upstream.
	ErrHeterogeneousBatch = errors.New("expression: operator structure differs across batch")

	// ErrBadExpression reports a malformed expression, e.g. an operator
	// count that does not match the term count.
	ErrBadExpression = errors.New("expression: malformed expression")

	// ErrShapeContract reports a broken shape contract between encoder
	// and reducer. It is never coerced or recovered from.
	ErrShapeContract = errors.New("expression: shape contract violated")

	// ErrReduceDuringDecode reports the deliberately unsupported
	// positive-offset policy (arithmetic during decoding).
	ErrReduceDuringDecode = fmt.Errorf("expression: reduce during decoding: %w", errors.ErrUnsupported)
)

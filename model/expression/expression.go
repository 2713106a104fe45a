// expression.go - Operatoren zwischen Teilausdruecken
package expression

import (
	"fmt"

	"github.com/compgen/transduce/ml"
)

// Operator is the algebraic operation associated with the boundary between
// two adjacent sub-expressions.
type Operator int8

const (
	OpAdd Operator = iota
	OpSub
)

// ParseOperator parst "+" oder "-"
func ParseOperator(s string) (Operator, error) {
	switch s {
	case "+":
		return OpAdd, nil
	case "-":
		return OpSub, nil
	}

	return 0, fmt.Errorf("%w: unknown operator %q", ErrBadExpression, s)
}

// String gibt den Operator als Text zurueck
func (op Operator) String() string {
	if op == OpSub {
		return "-"
	}

	return "+"
}

// apply kombiniert zwei Tensoren gemaess dem Operator
func (op Operator) apply(ctx ml.Context, a, b ml.Tensor) ml.Tensor {
	if op == OpSub {
		return a.Sub(ctx, b)
	}

	return a.Add(ctx, b)
}

// cmd_expr_test.go - Tests fuer das Parsen von Ausdrucks-Zeilen

package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compgen/transduce/model/expression"
)

func TestParseExpression(t *testing.T) {
	spec, err := parseExpression("1 3 4 0 1 5 2 | + | 1 8 2")
	require.NoError(t, err)

	assert.Equal(t, []int32{1, 3, 4, 0, 1, 5, 2}, spec.source)
	assert.Equal(t, []expression.Operator{expression.OpAdd}, spec.ops)
	assert.Equal(t, []int32{1, 8, 2}, spec.target)
	assert.Nil(t, spec.annotation)
}

func TestParseExpressionWithAnnotation(t *testing.T) {
	spec, err := parseExpression("1 3 2 | | 1 4 2 | 9")
	require.NoError(t, err)

	assert.Empty(t, spec.ops)
	assert.Equal(t, []int32{9}, spec.annotation)
}

func TestParseExpressionErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"keine Felder", "1 2 3"},
		{"unbekannter Operator", "1 3 2 | * | 1 4 2"},
		{"ungueltige Token-Id", "1 x 2 | + | 1 4 2"},
		{"leere Source", " | + | 1 4 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseExpression(tt.line)
			assert.Error(t, err)
		})
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name        string
		pred        []int32
		target      []int32
		correct     bool
		tokensRight int
	}{
		{"exakt", []int32{1, 8, 2}, []int32{1, 8, 2}, true, 3},
		{"ein Token falsch", []int32{1, 9, 2}, []int32{1, 8, 2}, false, 2},
		{"zu kurz", []int32{1, 8}, []int32{1, 8, 2}, false, 2},
		{"zu lang", []int32{1, 8, 2, 2}, []int32{1, 8, 2}, false, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := score(tt.pred, tt.target)
			assert.Equal(t, tt.correct, got.correct)
			assert.Equal(t, tt.tokensRight, got.tokensRight)
			assert.Equal(t, len(tt.target), got.tokensTotal)
		})
	}
}

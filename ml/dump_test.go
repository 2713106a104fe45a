// dump_test.go - Tests fuer die Tensor-Dump-Ausgabe

package ml_test

import (
	"strings"
	"testing"

	"github.com/compgen/transduce/ml"
	_ "github.com/compgen/transduce/ml/backend"
)

func newTestContext(t *testing.T) ml.Context {
	t.Helper()

	b, err := ml.NewBackend("cpu", ml.BackendParams{NumThreads: 1})
	if err != nil {
		t.Fatalf("NewBackend() Fehler: %v", err)
	}
	t.Cleanup(b.Close)

	ctx := b.NewContext()
	t.Cleanup(ctx.Close)

	return ctx
}

func TestDumpInts(t *testing.T) {
	ctx := newTestContext(t)
	x := ctx.FromInts([]int32{1, 2, 3, 4}, 2, 2)

	got := ml.Dump(ctx, x)
	want := "[[ 1,  2],\n [ 3,  4]]"
	if got != want {
		t.Errorf("Dump() = %q, erwartet %q", got, want)
	}
}

func TestDumpFloatsPrecision(t *testing.T) {
	ctx := newTestContext(t)
	x := ctx.FromFloats([]float32{0.125, -1}, 2)

	got := ml.Dump(ctx, x, ml.DumpWithPrecision(2))
	want := "[ 0.13, -1.00]"
	if got != want {
		t.Errorf("Dump() = %q, erwartet %q", got, want)
	}
}

func TestDumpEdgeItems(t *testing.T) {
	ctx := newTestContext(t)

	data := make([]float32, 10)
	for i := range data {
		data[i] = float32(i)
	}
	x := ctx.FromFloats(data, 10)

	got := ml.Dump(ctx, x, ml.DumpWithThreshold(5), ml.DumpWithEdgeItems(2))
	if !strings.Contains(got, "...") {
		t.Errorf("Dump() = %q, erwartet Auslassung", got)
	}
	if !strings.Contains(got, "9.0000") {
		t.Errorf("Dump() = %q, erwartet letztes Element", got)
	}
}

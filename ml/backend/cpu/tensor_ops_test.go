// tensor_ops_test.go - Tests fuer Tensor-Operationen
// Testet Arithmetik, Matrixmultiplikation, Aktivierungen und Form-Operationen

package cpu

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/compgen/transduce/ml"
)

func TestElementwiseArithmetic(t *testing.T) {
	ctx := newTestContext(t)
	a := ctx.FromFloats([]float32{1, 2, 3, 4}, 2, 2)
	b := ctx.FromFloats([]float32{10, 20, 30, 40}, 2, 2)

	tests := []struct {
		name string
		got  ml.Tensor
		want []float32
	}{
		{"Add", a.Add(ctx, b), []float32{11, 22, 33, 44}},
		{"Sub", b.Sub(ctx, a), []float32{9, 18, 27, 36}},
		{"Mul", a.Mul(ctx, b), []float32{10, 40, 90, 160}},
		{"Scale", a.Scale(ctx, 0.5), []float32{0.5, 1, 1.5, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.got.Floats()); diff != "" {
				t.Errorf("%s Differenz (-want +got):\n%s", tt.name, diff)
			}
		})
	}
}

func TestAddBroadcastsSuffix(t *testing.T) {
	ctx := newTestContext(t)

	// Bias [H] auf Aktivierung [B, H]
	x := ctx.FromFloats([]float32{1, 2, 3, 4, 5, 6}, 2, 3)
	bias := ctx.FromFloats([]float32{10, 20, 30}, 3)

	want := []float32{11, 22, 33, 14, 25, 36}
	if diff := cmp.Diff(want, x.Add(ctx, bias).Floats()); diff != "" {
		t.Errorf("Broadcast-Add Differenz (-want +got):\n%s", diff)
	}
}

func TestMulmat(t *testing.T) {
	ctx := newTestContext(t)
	a := ctx.FromFloats([]float32{1, 2, 3, 4, 5, 6}, 2, 3)
	b := ctx.FromFloats([]float32{7, 8, 9, 10, 11, 12}, 3, 2)

	got := a.Mulmat(ctx, b)
	if diff := cmp.Diff([]int{2, 2}, got.Shape()); diff != "" {
		t.Fatalf("Mulmat Shape Differenz (-want +got):\n%s", diff)
	}

	want := []float32{58, 64, 139, 154}
	if diff := cmp.Diff(want, got.Floats(), cmpopts.EquateApprox(0, 1e-5)); diff != "" {
		t.Errorf("Mulmat Differenz (-want +got):\n%s", diff)
	}
}

func TestSoftmax(t *testing.T) {
	ctx := newTestContext(t)
	x := ctx.FromFloats([]float32{0, 1, 2, 5, 5, 5}, 2, 3)

	probs := x.Softmax(ctx).Floats()

	// Jede Zeile summiert zu 1
	for r := 0; r < 2; r++ {
		var sum float32
		for i := 0; i < 3; i++ {
			sum += probs[r*3+i]
		}
		if sum < 0.9999 || sum > 1.0001 {
			t.Errorf("Zeile %d summiert zu %f, erwartet 1", r, sum)
		}
	}

	// Monotonie in Zeile 0, Gleichverteilung in Zeile 1
	if !(probs[0] < probs[1] && probs[1] < probs[2]) {
		t.Errorf("Softmax nicht monoton: %v", probs[:3])
	}
	if diff := cmp.Diff([]float32{1. / 3, 1. / 3, 1. / 3}, probs[3:], cmpopts.EquateApprox(0, 1e-5)); diff != "" {
		t.Errorf("Gleichverteilung Differenz (-want +got):\n%s", diff)
	}
}

func TestActivations(t *testing.T) {
	ctx := newTestContext(t)
	x := ctx.FromFloats([]float32{-1, 0, 1}, 3)

	tanh := x.Tanh(ctx).Floats()
	if tanh[1] != 0 || tanh[0] != -tanh[2] {
		t.Errorf("Tanh = %v, erwartet ungerade Funktion mit tanh(0)=0", tanh)
	}

	sig := x.Sigmoid(ctx).Floats()
	if sig[1] != 0.5 {
		t.Errorf("Sigmoid(0) = %f, erwartet 0.5", sig[1])
	}
	if !(sig[0] < sig[1] && sig[1] < sig[2]) {
		t.Errorf("Sigmoid nicht monoton: %v", sig)
	}
}

func TestArgmax(t *testing.T) {
	ctx := newTestContext(t)
	x := ctx.FromFloats([]float32{0.1, 0.9, 0.2, 3, 1, 2}, 2, 3)

	got := x.Argmax(ctx)
	if got.DType() != ml.DTypeI32 {
		t.Fatalf("Argmax DType = %v, erwartet I32", got.DType())
	}
	if diff := cmp.Diff([]int32{1, 0}, got.Ints()); diff != "" {
		t.Errorf("Argmax Differenz (-want +got):\n%s", diff)
	}
}

func TestConcatOuterDim(t *testing.T) {
	ctx := newTestContext(t)
	a := ctx.FromFloats([]float32{1, 2, 3, 4}, 2, 2)
	b := ctx.FromFloats([]float32{5, 6}, 1, 2)

	got := a.Concat(ctx, b, 0)
	if diff := cmp.Diff([]int{3, 2}, got.Shape()); diff != "" {
		t.Fatalf("Concat Shape Differenz (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float32{1, 2, 3, 4, 5, 6}, got.Floats()); diff != "" {
		t.Errorf("Concat Differenz (-want +got):\n%s", diff)
	}
}

func TestConcatInnerDim(t *testing.T) {
	ctx := newTestContext(t)
	a := ctx.FromInts([]int32{1, 2, 3, 4}, 2, 2)
	b := ctx.FromInts([]int32{5, 6}, 2, 1)

	got := a.Concat(ctx, b, 1)
	if diff := cmp.Diff([]int32{1, 2, 5, 3, 4, 6}, got.Ints()); diff != "" {
		t.Errorf("Concat Differenz (-want +got):\n%s", diff)
	}
}

func TestSliceMiddle(t *testing.T) {
	ctx := newTestContext(t)
	x := ctx.FromInts([]int32{0, 1, 2, 3, 4, 5, 6, 7}, 4, 2)

	got := x.Slice(ctx, 0, 1, 3, 1)
	if diff := cmp.Diff([]int{2, 2}, got.Shape()); diff != "" {
		t.Fatalf("Slice Shape Differenz (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int32{2, 3, 4, 5}, got.Ints()); diff != "" {
		t.Errorf("Slice Differenz (-want +got):\n%s", diff)
	}
}

func TestChunkSplitsEvenly(t *testing.T) {
	ctx := newTestContext(t)

	// Gate-Aufteilung wie in der LSTM-Zelle: [B, 4H] -> 4x [B, H]
	x := ctx.FromFloats([]float32{0, 1, 2, 3, 4, 5, 6, 7}, 2, 4)

	chunks := x.Chunk(ctx, 1, 1)
	if len(chunks) != 4 {
		t.Fatalf("Chunk Anzahl = %d, erwartet 4", len(chunks))
	}
	if diff := cmp.Diff([]float32{1, 5}, chunks[1].Floats()); diff != "" {
		t.Errorf("Chunk[1] Differenz (-want +got):\n%s", diff)
	}
}

func TestStack(t *testing.T) {
	ctx := newTestContext(t)
	a := ctx.FromFloats([]float32{1, 2}, 1, 2)
	b := ctx.FromFloats([]float32{3, 4}, 1, 2)
	c := ctx.FromFloats([]float32{5, 6}, 1, 2)

	got := a.Stack(ctx, 0, b, c)
	if diff := cmp.Diff([]int{3, 2}, got.Shape()); diff != "" {
		t.Fatalf("Stack Shape Differenz (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float32{1, 2, 3, 4, 5, 6}, got.Floats()); diff != "" {
		t.Errorf("Stack Differenz (-want +got):\n%s", diff)
	}
}

func TestRowsLookup(t *testing.T) {
	ctx := newTestContext(t)

	// Embedding-Tabelle [V=3, H=2]
	table := ctx.FromFloats([]float32{0, 1, 10, 11, 20, 21}, 3, 2)
	ids := ctx.FromInts([]int32{2, 0, 2}, 3)

	got := table.Rows(ctx, ids)
	if diff := cmp.Diff([]int{3, 2}, got.Shape()); diff != "" {
		t.Fatalf("Rows Shape Differenz (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float32{20, 21, 0, 1, 20, 21}, got.Floats()); diff != "" {
		t.Errorf("Rows Differenz (-want +got):\n%s", diff)
	}
}

func TestCopyIntoDestination(t *testing.T) {
	ctx := newTestContext(t)
	src := ctx.FromFloats([]float32{1, 2, 3, 4}, 2, 2)
	dst := ctx.Zeros(ml.DTypeF32, 4)

	got := src.Copy(ctx, dst)
	if diff := cmp.Diff([]float32{1, 2, 3, 4}, got.Floats()); diff != "" {
		t.Errorf("Copy Differenz (-want +got):\n%s", diff)
	}
}

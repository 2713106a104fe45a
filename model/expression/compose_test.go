// compose_test.go - Tests fuer die Kompositions-Strategien
// Fuehrt vollstaendige Split/Encode/Reduce/Decode-Durchlaeufe ueber dem
// RNN-Referenzmodell aus

package expression_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/compgen/transduce/model"
	"github.com/compgen/transduce/model/expression"
	"github.com/compgen/transduce/model/input"
	_ "github.com/compgen/transduce/model/models/rnn"
)

var testSpecials = input.Specials{Unknown: 0, SOS: 1, EOS: 2}

// newTestModel erstellt ein deterministisches RNN-Modell fuer Tests
func newTestModel(t *testing.T) model.Model {
	t.Helper()

	m, err := model.New("rnn", model.Config{
		"vocab_size":       uint32(16),
		"embedding_length": uint32(4),
		"hidden_size":      uint32(6),
		"seed":             uint32(7),
	})
	if err != nil {
		t.Fatalf("model.New() Fehler: %v", err)
	}
	t.Cleanup(m.Backend().Close)

	return m
}

func newComposer(m model.Model, offset int) expression.Composer {
	return expression.Composer{
		Encoder:  m,
		Decoder:  m,
		Splitter: expression.NewSplitter(testSpecials),
		Offset:   offset,
	}
}

func TestComposeThreeTerms(t *testing.T) {
	m := newTestModel(t)
	ctx := m.Backend().NewContext()
	defer ctx.Close()

	batch := input.Batch{
		Source:   ctx.FromInts([]int32{1, 5, 0, 6, 0, 7, 2}, 7, 1),
		Specials: testSpecials,
	}
	c := newComposer(m, 0)

	logits, err := c.Compose(ctx, batch, []expression.Operator{expression.OpAdd, expression.OpSub})
	if err != nil {
		t.Fatalf("Compose() Fehler: %v", err)
	}

	// Decodiert wird ueber dem ersten Term: drei Schritte
	if logits.Dim(0) != 3 || logits.Dim(1) != 1 || logits.Dim(2) != 16 {
		t.Errorf("Compose() Shape = %v, erwartet [3 1 16]", logits.Shape())
	}
}

func TestComposeSingleTermMatchesPlainPass(t *testing.T) {
	m := newTestModel(t)
	ctx := m.Backend().NewContext()
	defer ctx.Close()

	// Keine Delimiter: die Komposition degeneriert zum einfachen
	// Encode/Decode-Durchlauf und muss bit-identisch sein
	source := ctx.FromInts([]int32{1, 5, 6, 2}, 4, 1)
	batch := input.Batch{Source: source, Specials: testSpecials}

	c := newComposer(m, 0)
	composed, err := c.Compose(ctx, batch, nil)
	if err != nil {
		t.Fatalf("Compose() Fehler: %v", err)
	}

	enc, err := m.Encode(ctx, source)
	if err != nil {
		t.Fatalf("Encode() Fehler: %v", err)
	}
	plain, err := m.Decode(ctx, enc, 0)
	if err != nil {
		t.Fatalf("Decode() Fehler: %v", err)
	}

	if diff := cmp.Diff(plain.DecOutputs.Floats(), composed.Floats()); diff != "" {
		t.Errorf("Compose() weicht vom einfachen Durchlauf ab (-want +got):\n%s", diff)
	}
}

func TestComposeDeterministic(t *testing.T) {
	m := newTestModel(t)
	ctx := m.Backend().NewContext()
	defer ctx.Close()

	batch := input.Batch{
		Source:   ctx.FromInts([]int32{1, 5, 0, 6, 2}, 5, 1),
		Specials: testSpecials,
	}
	c := newComposer(m, 0)
	ops := []expression.Operator{expression.OpSub}

	a, err := c.Compose(ctx, batch, ops)
	if err != nil {
		t.Fatalf("Compose() Fehler: %v", err)
	}
	b, err := c.Compose(ctx, batch, ops)
	if err != nil {
		t.Fatalf("Compose() Fehler: %v", err)
	}

	if diff := cmp.Diff(a.Floats(), b.Floats()); diff != "" {
		t.Errorf("Compose() nicht deterministisch (-want +got):\n%s", diff)
	}
}

func TestComposeNegativeOffset(t *testing.T) {
	m := newTestModel(t)
	ctx := m.Backend().NewContext()
	defer ctx.Close()

	batch := input.Batch{
		Source:   ctx.FromInts([]int32{1, 5, 0, 6, 2}, 5, 1),
		Specials: testSpecials,
	}
	c := newComposer(m, -1)

	logits, err := c.Compose(ctx, batch, []expression.Operator{expression.OpAdd})
	if err != nil {
		t.Fatalf("Compose() Fehler: %v", err)
	}

	// Beide Terme haben die Laenge 3; decodiert wird weiterhin ueber dem
	// ersten Term
	if logits.Dim(0) != 3 || logits.Dim(1) != 1 {
		t.Errorf("Compose() Shape = %v, erwartet [3 1 16]", logits.Shape())
	}
}

func TestComposePositiveOffsetUnsupported(t *testing.T) {
	m := newTestModel(t)
	ctx := m.Backend().NewContext()
	defer ctx.Close()

	batch := input.Batch{
		Source:   ctx.FromInts([]int32{1, 5, 0, 6, 2}, 5, 1),
		Specials: testSpecials,
	}
	c := newComposer(m, 1)

	_, err := c.Compose(ctx, batch, []expression.Operator{expression.OpAdd})
	if !errors.Is(err, expression.ErrReduceDuringDecode) {
		t.Errorf("Compose() Fehler = %v, erwartet ErrReduceDuringDecode", err)
	}
	if !errors.Is(err, errors.ErrUnsupported) {
		t.Errorf("Compose() Fehler = %v, sollte errors.ErrUnsupported einwickeln", err)
	}
}

func TestComposeOperatorCountMismatch(t *testing.T) {
	m := newTestModel(t)
	ctx := m.Backend().NewContext()
	defer ctx.Close()

	batch := input.Batch{
		Source:   ctx.FromInts([]int32{1, 5, 0, 6, 2}, 5, 1),
		Specials: testSpecials,
	}
	c := newComposer(m, 0)

	// Zwei Terme, aber kein Operator
	_, err := c.Compose(ctx, batch, nil)
	if !errors.Is(err, expression.ErrBadExpression) {
		t.Errorf("Compose() Fehler = %v, erwartet ErrBadExpression", err)
	}
}

func TestComposeEOSPreservesLength(t *testing.T) {
	m := newTestModel(t)
	ctx := m.Backend().NewContext()
	defer ctx.Close()

	batch := input.Batch{
		Source:   ctx.FromInts([]int32{1, 5, 0, 6, 0, 7, 2}, 7, 1),
		Specials: testSpecials,
	}
	c := newComposer(m, 0)

	logits, err := c.ComposeEOS(ctx, batch, []expression.Operator{expression.OpAdd, expression.OpSub})
	if err != nil {
		t.Fatalf("ComposeEOS() Fehler: %v", err)
	}

	// Die kombinierten Encoder-Outputs muessen die Laenge des ersten
	// Terms haben; decodiert werden daher ebenso viele Schritte
	if logits.Dim(0) != 3 || logits.Dim(1) != 1 {
		t.Errorf("ComposeEOS() Shape = %v, erwartet [3 1 16]", logits.Shape())
	}
}

func TestComposeEOSHeterogeneousBatch(t *testing.T) {
	m := newTestModel(t)
	ctx := m.Backend().NewContext()
	defer ctx.Close()

	// Delimiter an unterschiedlichen Positionen in den beiden Beispielen
	batch := input.Batch{
		Source: ctx.FromInts([]int32{
			1, 1,
			5, 8,
			0, 9,
			6, 0,
			2, 2,
		}, 5, 2),
		Specials: testSpecials,
	}
	c := newComposer(m, 0)

	_, err := c.ComposeEOS(ctx, batch, []expression.Operator{expression.OpAdd})
	if !errors.Is(err, expression.ErrHeterogeneousBatch) {
		t.Errorf("ComposeEOS() Fehler = %v, erwartet ErrHeterogeneousBatch", err)
	}
}

func TestComposeWithAnnotation(t *testing.T) {
	m := newTestModel(t)
	ctx := m.Backend().NewContext()
	defer ctx.Close()

	source := ctx.FromInts([]int32{1, 5, 0, 6, 2}, 5, 1)
	withAnnotation := input.Batch{
		Source:     source,
		Annotation: ctx.FromInts([]int32{3}, 1, 1),
		Specials:   testSpecials,
	}
	without := input.Batch{Source: source, Specials: testSpecials}
	c := newComposer(m, 0)
	ops := []expression.Operator{expression.OpAdd}

	a, err := c.Compose(ctx, withAnnotation, ops)
	if err != nil {
		t.Fatalf("Compose() Fehler: %v", err)
	}
	b, err := c.Compose(ctx, without, ops)
	if err != nil {
		t.Fatalf("Compose() Fehler: %v", err)
	}

	// Das Annotations-Token ersetzt <sos> als erste Decoder-Eingabe und
	// muss die Vorhersage beeinflussen
	if diff := cmp.Diff(a.Floats(), b.Floats()); diff == "" {
		t.Error("Compose() ignoriert die Annotation")
	}
}

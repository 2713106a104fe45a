// forward.go - Einfacher Vorwaerts-Pass ohne Ausdrucks-Komposition
package model

import (
	"errors"

	"github.com/compgen/transduce/ml"
	"github.com/compgen/transduce/model/input"
)

// Forward fuehrt einen einfachen Vorwaerts-Pass durch das Modell aus:
// die komplette Source-Sequenz wird encodiert und das Ergebnis zusammen
// mit Source, Annotation und (falls vorhanden) Target an den Decoder
// weitergereicht. tfRatio ist die Teacher-Forcing-Wahrscheinlichkeit.
func Forward(ctx ml.Context, m Model, batch input.Batch, tfRatio float32) (ml.Tensor, error) {
	if batch.Source == nil {
		return nil, errors.New("model: batch has no source")
	}

	enc, err := m.Encode(ctx, batch.Source)
	if err != nil {
		return nil, err
	}

	enc.Source = batch.Source
	enc.Transform = batch.Annotation
	if batch.Target != nil {
		enc.Target = batch.Target
	}

	out, err := m.Decode(ctx, enc, tfRatio)
	if err != nil {
		return nil, err
	}

	ctx.Forward(out.DecOutputs)

	return out.DecOutputs, nil
}

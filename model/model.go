// model.go - Model-Interface und Initialisierung
//
// Dieses Paket definiert die Encoder/Decoder-Schnittstellen und stellt
// Funktionen zur Initialisierung und Registrierung von Architekturen bereit.
//
// Hauptkomponenten:
// - Encoder/Decoder: Schnittstellen fuer Sequenz-Architekturen
// - Base: Basis-Implementierung fuer gemeinsame Funktionalitaet
// - New: Erstellt neue Model-Instanzen
// - Register: Registriert Modell-Konstruktoren
// - Forward: Fuehrt den einfachen (nicht-kompositionellen) Vorwaerts-Pass durch

package model

import (
	"errors"

	"github.com/compgen/transduce/ml"
	_ "github.com/compgen/transduce/ml/backend"
)

// Fehler-Definitionen
var (
	ErrUnsupportedModel = errors.New("model not supported")
)

// Encoder encodes a time-major token sequence batch into an Encoding
// carrying the recurrent hidden state and the per-step outputs.
type Encoder interface {
	// Encode runs a full, stateless encode of one sequence batch.
	Encode(ctx ml.Context, source ml.Tensor) (Encoding, error)

	// EncodeWithHidden resumes encoding from a previously computed
	// hidden state instead of the zero state.
	EncodeWithHidden(ctx ml.Context, source ml.Tensor, hidden Hidden) (Encoding, error)
}

// Decoder consumes an Encoding carrying at least Source and Transform,
// plus whichever hidden-state/outputs fields were populated, and produces
// decoded output logits of shape [time, batch, vocabulary].
type Decoder interface {
	Decode(ctx ml.Context, enc Encoding, tfRatio float32) (Encoding, error)
}

// Model definiert das Interface fuer spezifische Modell-Architekturen
type Model interface {
	Encoder
	Decoder

	Backend() ml.Backend
}

// Base implementiert gemeinsame Felder und Methoden fuer alle Modelle
type Base struct {
	b ml.Backend
}

// Backend gibt das Backend zurueck, das das Modell ausfuehrt
func (m *Base) Backend() ml.Backend {
	return m.b
}

// models speichert registrierte Modell-Konstruktoren
var models = make(map[string]func(Base, Config) (Model, error))

// Register registriert einen Modell-Konstruktor fuer eine Architektur
func Register(name string, f func(Base, Config) (Model, error)) {
	if _, ok := models[name]; ok {
		panic("model: model already registered")
	}

	models[name] = f
}

// New initialisiert eine neue Model-Instanz fuer die gegebene Architektur
func New(arch string, c Config) (Model, error) {
	f, ok := models[arch]
	if !ok {
		return nil, ErrUnsupportedModel
	}

	backend := c.String("backend")
	if backend == "" {
		backend = "cpu"
	}
	b, err := ml.NewBackend(backend, ml.BackendParams{
		NumThreads: int(c.Uint("num_threads")),
	})
	if err != nil {
		return nil, err
	}

	return f(Base{b: b}, c)
}

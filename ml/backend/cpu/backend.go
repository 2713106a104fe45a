// backend.go - Pure-Go CPU-Backend
// Registriert das CPU-Backend und stellt Kontexte fuer eager Tensor-Berechnung bereit.

package cpu

import (
	"runtime"

	"github.com/compgen/transduce/ml"
)

func init() {
	ml.RegisterBackend("cpu", New)
}

// Backend ist die reine Go-Implementierung der Tensor-Engine
type Backend struct {
	numThreads int
}

// New erstellt ein neues CPU-Backend
func New(params ml.BackendParams) (ml.Backend, error) {
	numThreads := params.NumThreads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}

	return &Backend{numThreads: numThreads}, nil
}

// Close gibt alle Ressourcen des Backends frei
func (b *Backend) Close() {}

// NewContext erstellt einen neuen Berechnungskontext
func (b *Backend) NewContext() ml.Context {
	return &Context{b: b}
}

// backend.go - Aggregator fuer verfuegbare Backends
package backend

import (
	_ "github.com/compgen/transduce/ml/backend/cpu"
)

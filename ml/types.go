// types.go - Datentypen und Konstanten fuer ML-Operationen
// Dieses Modul definiert grundlegende Typen wie DType.
package ml

// DType represents the data type of tensor elements.
type DType int

const (
	DTypeOther DType = iota
	DTypeF32
	DTypeF16
	DTypeI32
)

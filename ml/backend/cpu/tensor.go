// tensor.go - Tensor-Struktur und Basis-Methoden
// Enthaelt: Tensor struct, Shape, Bytes, Floats, Ints, DType, Cast

package cpu

import (
	"encoding/binary"
	"log/slog"
	"math"

	"github.com/x448/float16"

	"github.com/compgen/transduce/ml"
)

// Tensor repraesentiert einen CPU-Tensor mit row-major Layout
type Tensor struct {
	dtype ml.DType
	shape []int

	f32 []float32
	f16 []uint16
	i32 []int32
}

// LogValue gibt den Tensor als slog-Wert zurueck
func (t *Tensor) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("type", int(t.dtype)),
		slog.Any("shape", t.Shape()),
	)
}

// Dim gibt die Groesse einer Dimension zurueck
func (t *Tensor) Dim(n int) int {
	return t.shape[n]
}

// Stride gibt den Stride einer Dimension in Elementen zurueck
func (t *Tensor) Stride(n int) int {
	stride := 1
	for i := n + 1; i < len(t.shape); i++ {
		stride *= t.shape[i]
	}

	return stride
}

// Shape gibt die Form des Tensors zurueck
func (t *Tensor) Shape() []int {
	return append([]int(nil), t.shape...)
}

// DType gibt den Datentyp des Tensors zurueck
func (t *Tensor) DType() ml.DType {
	return t.dtype
}

// numel gibt die Anzahl der Elemente zurueck
func (t *Tensor) numel() int {
	n := 1
	for _, d := range t.shape {
		n *= d
	}

	return n
}

// Bytes gibt die Tensor-Daten als Bytes zurueck (little endian)
func (t *Tensor) Bytes() []byte {
	data := make([]byte, 0, t.numel()*4)
	switch t.dtype {
	case ml.DTypeF32:
		for _, v := range t.f32 {
			data = binary.LittleEndian.AppendUint32(data, math.Float32bits(v))
		}
	case ml.DTypeF16:
		for _, v := range t.f16 {
			data = binary.LittleEndian.AppendUint16(data, v)
		}
	case ml.DTypeI32:
		for _, v := range t.i32 {
			data = binary.LittleEndian.AppendUint32(data, uint32(v))
		}
	}

	return data
}

// Floats gibt die Tensor-Daten als Float32 zurueck
func (t *Tensor) Floats() []float32 {
	switch t.dtype {
	case ml.DTypeF32:
		return append([]float32(nil), t.f32...)
	case ml.DTypeF16:
		data := make([]float32, len(t.f16))
		for i, v := range t.f16 {
			data[i] = float16.Frombits(v).Float32()
		}
		return data
	case ml.DTypeI32:
		data := make([]float32, len(t.i32))
		for i, v := range t.i32 {
			data[i] = float32(v)
		}
		return data
	}

	return nil
}

// Ints gibt die Tensor-Daten als Int32 zurueck
func (t *Tensor) Ints() []int32 {
	switch t.dtype {
	case ml.DTypeI32:
		return append([]int32(nil), t.i32...)
	case ml.DTypeF32:
		data := make([]int32, len(t.f32))
		for i, v := range t.f32 {
			data[i] = int32(v)
		}
		return data
	}

	return nil
}

// tensorSet prueft die Datengroesse und kopiert ein Slice in den Tensor
func tensorSet[S ~[]E, E float32 | int32 | uint16](dst S, s S, n int) {
	if len(s) != n {
		panic("data size does not match tensor size")
	}
	copy(dst, s)
}

// FromBytes setzt Tensor-Daten aus Bytes (little endian)
func (t *Tensor) FromBytes(s []byte) {
	switch t.dtype {
	case ml.DTypeF32:
		if len(s) != t.numel()*4 {
			panic("data size does not match tensor size")
		}
		for i := range t.f32 {
			t.f32[i] = math.Float32frombits(binary.LittleEndian.Uint32(s[i*4:]))
		}
	case ml.DTypeF16:
		if len(s) != t.numel()*2 {
			panic("data size does not match tensor size")
		}
		for i := range t.f16 {
			t.f16[i] = binary.LittleEndian.Uint16(s[i*2:])
		}
	case ml.DTypeI32:
		if len(s) != t.numel()*4 {
			panic("data size does not match tensor size")
		}
		for i := range t.i32 {
			t.i32[i] = int32(binary.LittleEndian.Uint32(s[i*4:]))
		}
	}
}

// FromFloats setzt Tensor-Daten aus Float32
func (t *Tensor) FromFloats(s []float32) {
	tensorSet(t.f32, s, t.numel())
}

// FromInts setzt Tensor-Daten aus Int32
func (t *Tensor) FromInts(s []int32) {
	tensorSet(t.i32, s, t.numel())
}

// Cast konvertiert den Tensor in einen anderen Datentyp
func (t *Tensor) Cast(ctx ml.Context, dtype ml.DType) ml.Tensor {
	if dtype == t.dtype {
		return t.Duplicate(ctx)
	}

	out := newTensor(dtype, t.shape)
	switch dtype {
	case ml.DTypeF32:
		copy(out.f32, t.Floats())
	case ml.DTypeF16:
		for i, v := range t.Floats() {
			out.f16[i] = float16.Fromfloat32(v).Bits()
		}
	case ml.DTypeI32:
		copy(out.i32, t.Ints())
	}

	return out
}

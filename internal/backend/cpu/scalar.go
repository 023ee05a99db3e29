package cpu

import (
	"gonum.org/v1/gonum/floats"

	"github.com/ember-ml/ember/internal/tensor"
)

// Scalar kernels, one set per storage format. The 16-bit formats widen each
// element to float32, apply the operation, and narrow back.

func mulScalarFloat16(dst, src []uint16, s float32) {
	for i, h := range src {
		dst[i] = tensor.Float32ToFloat16(tensor.Float16ToFloat32(h) * s)
	}
}

func divScalarFloat16(dst, src []uint16, s float32) {
	for i, h := range src {
		dst[i] = tensor.Float32ToFloat16(tensor.Float16ToFloat32(h) / s)
	}
}

func mulScalarBFloat16(dst, src []uint16, s float32) {
	for i, b := range src {
		dst[i] = tensor.Float32ToBFloat16(tensor.BFloat16ToFloat32(b) * s)
	}
}

func divScalarBFloat16(dst, src []uint16, s float32) {
	for i, b := range src {
		dst[i] = tensor.Float32ToBFloat16(tensor.BFloat16ToFloat32(b) / s)
	}
}

func mulScalarFloat32(dst, src []float32, s float32) {
	for i, v := range src {
		dst[i] = v * s
	}
}

func divScalarFloat32(dst, src []float32, s float32) {
	for i, v := range src {
		dst[i] = v / s
	}
}

func mulScalarFloat64(dst, src []float64, s float64) {
	copy(dst, src)
	floats.Scale(s, dst)
}

func divScalarFloat64(dst, src []float64, s float64) {
	for i, v := range src {
		dst[i] = v / s
	}
}

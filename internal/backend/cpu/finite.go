package cpu

import (
	"math"

	"github.com/ember-ml/ember/internal/tensor"
)

// Non-finite scans, one per storage format. The 16-bit formats classify on
// the raw exponent bits without decoding; float32/float64 use the math
// package. All return on the first bad element.

func anyNonFiniteFloat16(data []uint16) bool {
	for _, h := range data {
		if tensor.IsNonFiniteFloat16(h) {
			return true
		}
	}
	return false
}

func anyNonFiniteBFloat16(data []uint16) bool {
	for _, b := range data {
		if tensor.IsNonFiniteBFloat16(b) {
			return true
		}
	}
	return false
}

func anyNonFiniteFloat32(data []float32) bool {
	for _, v := range data {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return true
		}
	}
	return false
}

func anyNonFiniteFloat64(data []float64) bool {
	for _, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return true
		}
	}
	return false
}

package train

import (
	"math"

	"github.com/ember-ml/ember/internal/tensor"
)

// GlobalNorm returns the L2 norm over every element of every gradient in
// the mapping.
func GlobalNorm(grads map[string]*tensor.RawTensor) float64 {
	var sumSq float64
	for _, g := range grads {
		n := g.NumElements()
		switch g.DType() {
		case tensor.Float32:
			for _, v := range g.AsFloat32() {
				sumSq += float64(v) * float64(v)
			}
		case tensor.Float64:
			for _, v := range g.AsFloat64() {
				sumSq += v * v
			}
		default:
			for i := 0; i < n; i++ {
				v := g.At(i)
				sumSq += v * v
			}
		}
	}
	return math.Sqrt(sumSq)
}

// ClipByGlobalNorm rescales the gradients in place so their global L2 norm
// does not exceed maxNorm, and returns the norm measured before clipping.
// Gradients already within the bound are left untouched.
func ClipByGlobalNorm(grads map[string]*tensor.RawTensor, maxNorm float64) float64 {
	norm := GlobalNorm(grads)
	if norm <= maxNorm || norm == 0 {
		return norm
	}

	scale := maxNorm / (norm + 1e-12) // epsilon guards the division
	for _, g := range grads {
		switch g.DType() {
		case tensor.Float32:
			data := g.AsFloat32()
			for i := range data {
				data[i] *= float32(scale)
			}
		case tensor.Float64:
			data := g.AsFloat64()
			for i := range data {
				data[i] *= scale
			}
		default:
			for i := 0; i < g.NumElements(); i++ {
				g.SetAt(i, g.At(i)*scale)
			}
		}
	}
	return norm
}

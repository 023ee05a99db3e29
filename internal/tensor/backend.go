package tensor

// Backend is the capability set the loss scaler requires from a compute
// backend: element-wise scaling by a scalar and finite/NaN classification.
// Nothing else about the surrounding framework leaks through this seam.
type Backend interface {
	// Device returns the device this backend computes on.
	Device() Device

	// MulScalar returns a new tensor equal to x * s, element-wise.
	// The input is not mutated.
	MulScalar(x *RawTensor, s float64) *RawTensor

	// DivScalar returns a new tensor equal to x / s, element-wise.
	// The input is not mutated.
	DivScalar(x *RawTensor, s float64) *RawTensor

	// HasNonFinite reports whether any element of x is Inf or NaN.
	// Implementations may stop at the first bad element.
	HasNonFinite(x *RawTensor) bool
}

package tensor

import "fmt"

// FromFloat32 creates a Float32 CPU tensor from a Go slice.
// The slice is copied into the tensor's memory.
func FromFloat32(data []float32, shape Shape) (*RawTensor, error) {
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}
	r, err := NewRaw(shape, Float32, CPU)
	if err != nil {
		return nil, err
	}
	copy(r.AsFloat32(), data)
	return r, nil
}

// FromFloat64 creates a Float64 CPU tensor from a Go slice.
// The slice is copied into the tensor's memory.
func FromFloat64(data []float64, shape Shape) (*RawTensor, error) {
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}
	r, err := NewRaw(shape, Float64, CPU)
	if err != nil {
		return nil, err
	}
	copy(r.AsFloat64(), data)
	return r, nil
}

// Zeros creates a zero-filled CPU tensor of the given shape and dtype.
func Zeros(shape Shape, dtype DataType) *RawTensor {
	r, err := NewRaw(shape, dtype, CPU)
	if err != nil {
		panic(err) // only reachable with an invalid shape literal
	}
	return r
}

// Full creates a CPU tensor filled with value, narrowed to dtype.
func Full(shape Shape, value float64, dtype DataType) *RawTensor {
	r := Zeros(shape, dtype)
	for i := 0; i < r.NumElements(); i++ {
		r.SetAt(i, value)
	}
	return r
}

// Scalar creates a one-element Float32 CPU tensor holding value.
// Loss values flow through the scaler in this form.
func Scalar(value float32) *RawTensor {
	r := Zeros(Shape{1}, Float32)
	r.AsFloat32()[0] = value
	return r
}

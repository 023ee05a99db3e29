// Copyright 2025 Ember ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor re-exports the numeric container types used throughout
// Ember: shaped, typed buffers with the reduced-precision storage formats
// mixed-precision training cares about.
package tensor

import "github.com/ember-ml/ember/internal/tensor"

// Shape represents the dimensions of a tensor.
type Shape = tensor.Shape

// DataType represents runtime element type information for tensors.
type DataType = tensor.DataType

// Supported element types.
const (
	Float16  = tensor.Float16
	BFloat16 = tensor.BFloat16
	Float32  = tensor.Float32
	Float64  = tensor.Float64
)

// Device represents the compute device for tensor operations.
type Device = tensor.Device

// CPU is the host CPU device.
const CPU = tensor.CPU

// RawTensor is the low-level tensor representation.
type RawTensor = tensor.RawTensor

// Backend is the capability set the loss scaler requires from a compute
// backend.
type Backend = tensor.Backend

// NewRaw creates a new RawTensor with the given shape and type.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// FromFloat32 creates a Float32 CPU tensor from a Go slice.
func FromFloat32(data []float32, shape Shape) (*RawTensor, error) {
	return tensor.FromFloat32(data, shape)
}

// FromFloat64 creates a Float64 CPU tensor from a Go slice.
func FromFloat64(data []float64, shape Shape) (*RawTensor, error) {
	return tensor.FromFloat64(data, shape)
}

// Zeros creates a zero-filled CPU tensor.
func Zeros(shape Shape, dtype DataType) *RawTensor {
	return tensor.Zeros(shape, dtype)
}

// Full creates a CPU tensor filled with value.
func Full(shape Shape, value float64, dtype DataType) *RawTensor {
	return tensor.Full(shape, value, dtype)
}

// Scalar creates a one-element Float32 CPU tensor holding value.
func Scalar(value float32) *RawTensor {
	return tensor.Scalar(value)
}

// Float16ToFloat32 converts an IEEE 754 half-precision bit pattern to
// float32.
func Float16ToFloat32(h uint16) float32 {
	return tensor.Float16ToFloat32(h)
}

// Float32ToFloat16 converts float32 to an IEEE 754 half-precision bit
// pattern.
func Float32ToFloat16(f float32) uint16 {
	return tensor.Float32ToFloat16(f)
}

// BFloat16ToFloat32 converts a bfloat16 bit pattern to float32.
func BFloat16ToFloat32(b uint16) float32 {
	return tensor.BFloat16ToFloat32(b)
}

// Float32ToBFloat16 converts float32 to a bfloat16 bit pattern.
func Float32ToBFloat16(f float32) uint16 {
	return tensor.Float32ToBFloat16(f)
}

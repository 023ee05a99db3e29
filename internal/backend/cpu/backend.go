// Package cpu implements the CPU compute backend for the Ember training
// runtime: element-wise scalar kernels and the non-finite scan behind
// gradient overflow detection.
package cpu

import (
	"fmt"

	"github.com/ember-ml/ember/internal/parallel"
	"github.com/ember-ml/ember/internal/tensor"
)

// CPUBackend implements tensor.Backend on the host CPU.
type CPUBackend struct {
	device   tensor.Device
	parallel parallel.Config
}

// New creates a new CPU backend with default parallelism.
func New() *CPUBackend {
	return &CPUBackend{
		device:   tensor.CPU,
		parallel: parallel.DefaultConfig(),
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// MulScalar returns a new tensor equal to x * s, element-wise.
func (cpu *CPUBackend) MulScalar(x *tensor.RawTensor, s float64) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("mulScalar: failed to create result tensor: %v", err))
	}

	switch x.DType() {
	case tensor.Float16:
		mulScalarFloat16(result.AsUint16(), x.AsUint16(), float32(s))
	case tensor.BFloat16:
		mulScalarBFloat16(result.AsUint16(), x.AsUint16(), float32(s))
	case tensor.Float32:
		mulScalarFloat32(result.AsFloat32(), x.AsFloat32(), float32(s))
	case tensor.Float64:
		mulScalarFloat64(result.AsFloat64(), x.AsFloat64(), s)
	default:
		panic(fmt.Sprintf("mulScalar: unsupported dtype %v", x.DType()))
	}

	return result
}

// DivScalar returns a new tensor equal to x / s, element-wise.
func (cpu *CPUBackend) DivScalar(x *tensor.RawTensor, s float64) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("divScalar: failed to create result tensor: %v", err))
	}

	switch x.DType() {
	case tensor.Float16:
		divScalarFloat16(result.AsUint16(), x.AsUint16(), float32(s))
	case tensor.BFloat16:
		divScalarBFloat16(result.AsUint16(), x.AsUint16(), float32(s))
	case tensor.Float32:
		divScalarFloat32(result.AsFloat32(), x.AsFloat32(), float32(s))
	case tensor.Float64:
		divScalarFloat64(result.AsFloat64(), x.AsFloat64(), s)
	default:
		panic(fmt.Sprintf("divScalar: unsupported dtype %v", x.DType()))
	}

	return result
}

// HasNonFinite reports whether any element of x is Inf or NaN. Large
// tensors are scanned in parallel chunks; each chunk stops at the first bad
// element it sees.
func (cpu *CPUBackend) HasNonFinite(x *tensor.RawTensor) bool {
	n := x.NumElements()

	switch x.DType() {
	case tensor.Float16:
		data := x.AsUint16()
		return parallel.Any(n, func(s, e int) bool {
			return anyNonFiniteFloat16(data[s:e])
		}, cpu.parallel)
	case tensor.BFloat16:
		data := x.AsUint16()
		return parallel.Any(n, func(s, e int) bool {
			return anyNonFiniteBFloat16(data[s:e])
		}, cpu.parallel)
	case tensor.Float32:
		data := x.AsFloat32()
		return parallel.Any(n, func(s, e int) bool {
			return anyNonFiniteFloat32(data[s:e])
		}, cpu.parallel)
	case tensor.Float64:
		data := x.AsFloat64()
		return parallel.Any(n, func(s, e int) bool {
			return anyNonFiniteFloat64(data[s:e])
		}, cpu.parallel)
	default:
		panic(fmt.Sprintf("hasNonFinite: unsupported dtype %v", x.DType()))
	}
}

package cpu

import (
	"math"
	"testing"

	"github.com/ember-ml/ember/internal/tensor"
)

func TestCPUBackend_New(t *testing.T) {
	backend := New()
	if backend == nil {
		t.Fatal("New() returned nil")
	}
	if backend.Name() != "CPU" {
		t.Errorf("Name() = %q, want CPU", backend.Name())
	}
	if backend.Device() != tensor.CPU {
		t.Errorf("Device() = %v, want CPU", backend.Device())
	}
}

func TestMulScalar_Float32(t *testing.T) {
	backend := New()
	x, _ := tensor.FromFloat32([]float32{1, -2, 3.5}, tensor.Shape{3})

	result := backend.MulScalar(x, 2)

	want := []float32{2, -4, 7}
	for i, v := range result.AsFloat32() {
		if v != want[i] {
			t.Errorf("element %d = %v, want %v", i, v, want[i])
		}
	}
	// Input must be untouched.
	if x.AsFloat32()[0] != 1 {
		t.Error("MulScalar mutated its input")
	}
}

func TestDivScalar_Float32(t *testing.T) {
	backend := New()
	x, _ := tensor.FromFloat32([]float32{2, -4, 7}, tensor.Shape{3})

	result := backend.DivScalar(x, 2)

	want := []float32{1, -2, 3.5}
	for i, v := range result.AsFloat32() {
		if v != want[i] {
			t.Errorf("element %d = %v, want %v", i, v, want[i])
		}
	}
	if x.AsFloat32()[0] != 2 {
		t.Error("DivScalar mutated its input")
	}
}

func TestScalarOps_Float64(t *testing.T) {
	backend := New()
	x, _ := tensor.FromFloat64([]float64{1.5, -3}, tensor.Shape{2})

	mul := backend.MulScalar(x, 4)
	if got := mul.AsFloat64(); got[0] != 6 || got[1] != -12 {
		t.Errorf("MulScalar float64 = %v", got)
	}

	div := backend.DivScalar(x, 0.5)
	if got := div.AsFloat64(); got[0] != 3 || got[1] != -6 {
		t.Errorf("DivScalar float64 = %v", got)
	}
}

func TestScalarOps_HalfFormats(t *testing.T) {
	backend := New()
	for _, dtype := range []tensor.DataType{tensor.Float16, tensor.BFloat16} {
		x := tensor.Full(tensor.Shape{4}, 1.5, dtype)

		mul := backend.MulScalar(x, 2)
		for i := 0; i < 4; i++ {
			if mul.At(i) != 3 {
				t.Errorf("%s MulScalar element %d = %v, want 3", dtype, i, mul.At(i))
			}
		}

		div := backend.DivScalar(x, 2)
		for i := 0; i < 4; i++ {
			if div.At(i) != 0.75 {
				t.Errorf("%s DivScalar element %d = %v, want 0.75", dtype, i, div.At(i))
			}
		}
	}
}

func TestMulScalar_Float16Overflow(t *testing.T) {
	backend := New()
	x := tensor.Full(tensor.Shape{1}, 60000, tensor.Float16)

	// 60000 * 2 exceeds the half range and must saturate to +Inf.
	result := backend.MulScalar(x, 2)
	if !math.IsInf(result.At(0), 1) {
		t.Errorf("half overflow = %v, want +Inf", result.At(0))
	}
	if !backend.HasNonFinite(result) {
		t.Error("overflowed half tensor not classified as non-finite")
	}
}

func TestHasNonFinite(t *testing.T) {
	backend := New()

	for _, dtype := range []tensor.DataType{tensor.Float16, tensor.BFloat16, tensor.Float32, tensor.Float64} {
		finite := tensor.Full(tensor.Shape{8}, 1.25, dtype)
		if backend.HasNonFinite(finite) {
			t.Errorf("%s: finite tensor classified as non-finite", dtype)
		}

		withInf := tensor.Full(tensor.Shape{8}, 1.25, dtype)
		withInf.SetAt(5, math.Inf(1))
		if !backend.HasNonFinite(withInf) {
			t.Errorf("%s: +Inf not detected", dtype)
		}

		withNegInf := tensor.Full(tensor.Shape{8}, 1.25, dtype)
		withNegInf.SetAt(0, math.Inf(-1))
		if !backend.HasNonFinite(withNegInf) {
			t.Errorf("%s: -Inf not detected", dtype)
		}

		withNaN := tensor.Full(tensor.Shape{8}, 1.25, dtype)
		withNaN.SetAt(3, math.NaN())
		if !backend.HasNonFinite(withNaN) {
			t.Errorf("%s: NaN not detected", dtype)
		}
	}
}

func TestHasNonFinite_LargeTensor(t *testing.T) {
	backend := New()

	// Large enough to take the parallel scan path.
	n := 1 << 18
	data := make([]float32, n)
	for i := range data {
		data[i] = 0.001
	}
	x, _ := tensor.FromFloat32(data, tensor.Shape{n})
	if backend.HasNonFinite(x) {
		t.Error("large finite tensor classified as non-finite")
	}

	x.AsFloat32()[n-1] = float32(math.NaN())
	if !backend.HasNonFinite(x) {
		t.Error("NaN in last element of large tensor not detected")
	}
}

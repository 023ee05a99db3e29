// Package tensor provides the numeric containers used by the Ember training
// runtime: shaped, typed buffers with the reduced-precision storage formats
// mixed-precision training cares about.
package tensor

// DataType represents runtime element type information for tensors.
type DataType int

// Supported element types. The 16-bit formats are stored as raw bits and
// widened to float32 for arithmetic.
const (
	Float16 DataType = iota
	BFloat16
	Float32
	Float64
)

// Size returns the byte size of one element of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Float16, BFloat16:
		return 2
	case Float32:
		return 4
	case Float64:
		return 8
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float16:
		return "float16"
	case BFloat16:
		return "bfloat16"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return "unknown"
	}
}

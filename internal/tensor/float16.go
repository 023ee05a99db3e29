package tensor

import "math"

// Half-precision codecs. Float16 is IEEE 754 binary16; BFloat16 is the
// truncated-float32 format. Both are stored as uint16 bit patterns and
// widened to float32 for arithmetic.

// Float16ToFloat32 converts an IEEE 754 half-precision bit pattern to
// float32. Handles normal, subnormal, zero, infinity and NaN inputs.
func Float16ToFloat32(h uint16) float32 {
	sign := uint32(h>>15) & 0x1
	exp := uint32(h>>10) & 0x1F
	frac := uint32(h) & 0x3FF

	var bits uint32
	switch {
	case exp == 0 && frac == 0:
		bits = sign << 31
	case exp == 0:
		// Subnormal half: renormalize into the float32 exponent range.
		exp = 1
		for frac&0x400 == 0 {
			frac <<= 1
			exp--
		}
		frac &= 0x3FF
		bits = sign<<31 | (exp+127-15)<<23 | frac<<13
	case exp == 31:
		// Infinity or NaN, payload preserved.
		bits = sign<<31 | 0xFF<<23 | frac<<13
	default:
		bits = sign<<31 | (exp+127-15)<<23 | frac<<13
	}
	return math.Float32frombits(bits)
}

// Float32ToFloat16 converts float32 to an IEEE 754 half-precision bit
// pattern. Values outside the half range overflow to infinity; values below
// the smallest subnormal underflow to signed zero.
func Float32ToFloat16(f float32) uint16 {
	bits := math.Float32bits(f)

	sign := uint16(bits>>31) & 0x1
	exp := int(bits>>23) & 0xFF
	frac := bits & 0x7FFFFF

	switch {
	case exp == 0:
		// Zero or float32 subnormal: below the half subnormal range.
		return sign << 15
	case exp == 0xFF:
		if frac == 0 {
			return sign<<15 | 0x1F<<10
		}
		nan := sign<<15 | 0x1F<<10 | uint16(frac>>13)
		if nan&0x3FF == 0 {
			nan |= 1 // keep NaN from collapsing to infinity
		}
		return nan
	}

	newExp := exp - 127 + 15
	if newExp <= 0 {
		return sign << 15
	}
	if newExp >= 31 {
		return sign<<15 | 0x1F<<10
	}
	return sign<<15 | uint16(newExp)<<10 | uint16(frac>>13)
}

// BFloat16ToFloat32 converts a bfloat16 bit pattern to float32. BFloat16 is
// the top 16 bits of the float32 representation, so widening is a shift.
func BFloat16ToFloat32(b uint16) float32 {
	return math.Float32frombits(uint32(b) << 16)
}

// Float32ToBFloat16 converts float32 to a bfloat16 bit pattern with
// round-to-nearest-even on the dropped mantissa bits.
func Float32ToBFloat16(f float32) uint16 {
	bits := math.Float32bits(f)
	if f != f {
		nan := uint16(bits >> 16)
		if nan&0x7F == 0 {
			nan |= 1
		}
		return nan
	}
	rounding := uint32(0x7FFF) + (bits>>16)&1
	return uint16((bits + rounding) >> 16)
}

// IsNonFiniteFloat16 reports whether a half bit pattern encodes Inf or NaN
// (all exponent bits set).
func IsNonFiniteFloat16(h uint16) bool {
	return h&0x7C00 == 0x7C00
}

// IsNonFiniteBFloat16 reports whether a bfloat16 bit pattern encodes Inf or
// NaN (all exponent bits set).
func IsNonFiniteBFloat16(b uint16) bool {
	return b&0x7F80 == 0x7F80
}

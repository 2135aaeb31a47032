// Package fixedpoint implements the three Q-format integer types the
// engine runs on: Q13.3, Q15.16, and Q31.32. No floating point appears
// anywhere in the signal path — every multiply below is integer-only,
// sized to the type's native width.
//
// Convention: the fraction field is unsigned and always adds positively
// to the integer part. −1.125 is stored as integer −2, fraction 7/8,
// i.e. raw = round(value * 2^fracBits) in ordinary two's-complement
// arithmetic. There is no separate sign-magnitude encoding; the
// two's-complement representation already gives this convention for
// free, which is why Add/Sub below are plain raw-wise operations.
package fixedpoint

import "math/bits"

// Q13_3 is a 16-bit fixed-point type with 3 fractional bits.
type Q13_3 int16

// Q15_16 is a 32-bit fixed-point type with 16 fractional bits.
type Q15_16 int32

// Q31_32 is a 64-bit fixed-point type with 32 fractional bits.
type Q31_32 int64

const (
	q13_3Frac  = 3
	q15_16Frac = 16
	q31_32Frac = 32
)

// Add performs raw-wise addition; two's-complement makes this correct
// regardless of sign.
func (a Q13_3) Add(b Q13_3) Q13_3 { return a + b }

// Sub performs raw-wise subtraction.
func (a Q13_3) Sub(b Q13_3) Q13_3 { return a - b }

// Mul computes (a.raw * b.raw) >> fracBits using a 32-bit intermediate,
// wide enough that a 16-bit-by-16-bit product never overflows.
func (a Q13_3) Mul(b Q13_3) Q13_3 {
	return Q13_3((int32(a) * int32(b)) >> q13_3Frac)
}

// FromInt builds a Q13.3 value from an integer part.
func Q13_3FromInt(n int16) Q13_3 { return Q13_3(n) << q13_3Frac }

func (a Q15_16) Add(b Q15_16) Q15_16 { return a + b }
func (a Q15_16) Sub(b Q15_16) Q15_16 { return a - b }

// Mul computes (a.raw * b.raw) >> fracBits using a 64-bit intermediate,
// wide enough that a 32-bit-by-32-bit product never overflows.
func (a Q15_16) Mul(b Q15_16) Q15_16 {
	return Q15_16((int64(a) * int64(b)) >> q15_16Frac)
}

func Q15_16FromInt(n int32) Q15_16 { return Q15_16(n) << q15_16Frac }

func (a Q31_32) Add(b Q31_32) Q31_32 { return a + b }
func (a Q31_32) Sub(b Q31_32) Q31_32 { return a - b }

// Mul computes (a.raw * b.raw) >> 32 without ever forming a 128-bit
// intermediate. bits.Mul64 gives us the full unsigned 128-bit product
// of the two magnitudes from its own four 32-bit partial products
// (hi*hi, hi*lo, lo*hi, lo*lo internally) — the same decomposition an
// embedded C toolchain without __int128 would hand-roll — and we then
// recombine sign and shift ourselves.
func (a Q31_32) Mul(b Q31_32) Q31_32 {
	x, y := int64(a), int64(b)
	neg := (x < 0) != (y < 0)

	ux := uint64(x)
	if x < 0 {
		ux = uint64(-x)
	}
	uy := uint64(y)
	if y < 0 {
		uy = uint64(-y)
	}

	hi, lo := bits.Mul64(ux, uy)
	// (hi:lo) is the 128-bit unsigned product. Shifting right by 32
	// (logical, since both operands were forced non-negative) keeps
	// the low 32 bits of hi joined with the high 32 bits of lo.
	shifted := hi<<32 | lo>>32

	result := int64(shifted)
	if neg {
		result = -result
	}
	return Q31_32(result)
}

func Q31_32FromInt(n int32) Q31_32 { return Q31_32(n) << q31_32Frac }

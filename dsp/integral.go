package dsp

import "golang.org/x/exp/constraints"

// Mean returns the arithmetic mean of samples, truncated toward zero
// the way integer division in the original fixed-point pipeline does.
// Generic over the sample width so the same code serves both the int16
// scaled-sample axis arrays and wider intermediate accumulators.
func Mean[T constraints.Integer](samples []T) T {
	if len(samples) == 0 {
		return 0
	}
	var sum T
	for _, s := range samples {
		sum += s
	}
	return sum / T(len(samples))
}

// AbsIntegral sums the absolute value of every element, widening into
// uint64 so a long run of near-full-scale samples can't wrap the
// accumulator the way it could in the native sample width. The epoch
// engine's per-second PIM integral (§4.3) is summed in Q31.32 inside
// BandpassFilter.RunSecond and does not call this function.
func AbsIntegral[T constraints.Signed](samples []T) uint64 {
	var sum uint64
	for _, s := range samples {
		if s < 0 {
			s = -s
		}
		sum += uint64(s)
	}
	return sum
}

// AbsIntegralRange sums |values[lo:hi]| over a half-open bin range,
// clamped to the slice bounds. The step classifier's score_hf/score_lf
// integrals (§4.6) do not use it: they sum the uint32 composite
// spectrum with the epoch package's own sumRange.
func AbsIntegralRange(values []uint64, lo, hi int) uint64 {
	if lo < 0 {
		lo = 0
	}
	if hi > len(values) {
		hi = len(values)
	}
	var sum uint64
	for i := lo; i < hi; i++ {
		sum += values[i]
	}
	return sum
}

package epoch

import "github.com/wristcore/engine/fixedpoint"

// BandpassFilter is one axis's band-pass PIM filter instance: a
// RecursiveFilter wrapping the shared coefficient table, plus the
// one-time priming flag (§4.3, §3.2).
type BandpassFilter struct {
	filter *fixedpoint.RecursiveFilter[fixedpoint.Q31_32]
	primed bool
}

// NewBandpassFilter builds an unprimed filter sharing the package-level
// coefficient tables.
func NewBandpassFilter() *BandpassFilter {
	return &BandpassFilter{
		filter: fixedpoint.NewRecursiveFilter(bandpassB, bandpassA),
	}
}

// Reset zeroes filter state and clears the primed flag so the next
// epoch re-primes, matching a full engine reset (time-travel, toggle).
func (f *BandpassFilter) Reset() {
	f.filter.Reset()
	f.primed = false
}

// Prime runs an odd-symmetric reflection of the first 10 samples of the
// engine's lifetime through the filter and discards the output,
// suppressing the startup transient. No-op after the first call.
func (f *BandpassFilter) Prime(first10 [10]int16) {
	if f.primed {
		return
	}
	f.primed = true
	for i := 0; i < 10; i++ {
		p := 2*int32(first10[0]) - int32(first10[9-i])
		f.filter.Eval(fixedpoint.Q31_32FromInt(p))
	}
}

// RunSecond evaluates the filter over 25 samples (one second at
// SampleHz) and returns the PIM for that second: the sum of the
// absolute values of the filter's output, less the fixed floor, clamped
// to zero.
func (f *BandpassFilter) RunSecond(samples [SampleHz]int16) uint32 {
	var absSum fixedpoint.Q31_32
	for _, s := range samples {
		y := f.filter.Eval(fixedpoint.Q31_32FromInt(int32(s)))
		if y < 0 {
			y = -y
		}
		absSum = absSum.Add(y)
	}

	pim := absSum.Sub(pimFloorPerSecond)
	if pim < 0 {
		return 0
	}
	return uint32(int64(pim) >> 32)
}

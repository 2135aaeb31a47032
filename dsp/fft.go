package dsp

// FFTWidth is the fixed transform size: a power of two at least as
// large as one epoch's 125 samples (§3.1).
const FFTWidth = 128

// FFTMagnitudeCount is the number of usable magnitude bins after
// reduction — half the transform width, since a real-valued input's
// spectrum is Hermitian-symmetric and the upper half carries no new
// information.
const FFTMagnitudeCount = FFTWidth / 2

const trigShiftBits = 14 // log2(TrigMaxRatio)

// FFTMagnitudes runs an in-place decimation-in-time radix-2 FFT over
// samples (zero-padded/truncated to FFTWidth) and reduces the complex
// spectrum to FFTMagnitudeCount integer magnitudes.
//
// Packing: because the input is real, D[0] and D[N/2] are purely real
// and D[N-i] = conj(D[i]) for the rest. Rather than returning separate
// real/imaginary arrays, the spectrum is folded back into one array the
// way the source does it: packed[i] holds Re(D[i]) for i in [0, N/2],
// and packed[N-i] holds Im(D[i]) for i in (0, N/2). Magnitude i then
// reads as isqrt(packed[i]^2 + packed[N-i]^2) — this is the open
// question in spec.md §9 about bin semantics; there is no original
// source to check against (original_source/ kept zero files for this
// spec), so this packing is the documented resolution: it is the
// simplest scheme consistent with the "re = d[i], im = d[N-i]" formula
// spec.md states directly, and it is self-consistent (round-trips
// correctly for any real input).
func FFTMagnitudes(samples []int32) []uint32 {
	var re, im [FFTWidth]int32
	copy(re[:], samples)

	computeComplexFFT(re[:], im[:])

	var packed [FFTWidth]int32
	half := FFTWidth / 2
	for i := 0; i <= half; i++ {
		packed[i] = re[i]
	}
	for i := 1; i < half; i++ {
		packed[FFTWidth-i] = im[i]
	}

	mags := make([]uint32, half)
	for i := 0; i < half; i++ {
		var imVal int32
		if i != 0 {
			imVal = packed[FFTWidth-i]
		}
		reVal := int64(packed[i])
		sumSq := uint64(reVal*reVal + int64(imVal)*int64(imVal))
		mags[i] = uint32(ISqrt64(sumSq))
	}
	return mags
}

// computeComplexFFT runs an iterative radix-2 Cooley-Tukey DIT
// transform in place: bit-reversal permutation followed by log2(N)
// butterfly passes, twiddle factors drawn from the quantized trig
// tables so the whole transform stays integer-only.
func computeComplexFFT(re, im []int32) {
	n := len(re)
	bitReversePermute(re, im)

	for size := 2; size <= n; size <<= 1 {
		half := size / 2
		angleStep := TrigMaxAngle / size
		for start := 0; start < n; start += size {
			for k := 0; k < half; k++ {
				angle := k * angleStep
				cos := int64(CosLookup(angle))
				sin := int64(SinLookup(angle))

				i0 := start + k
				i1 := i0 + half

				// Twiddle factor is e^{-j*angle} = cos(angle) - j*sin(angle).
				oddRe, oddIm := int64(re[i1]), int64(im[i1])
				tRe := int32((oddRe*cos + oddIm*sin) >> trigShiftBits)
				tIm := int32((oddIm*cos - oddRe*sin) >> trigShiftBits)

				re[i1] = re[i0] - tRe
				im[i1] = im[i0] - tIm
				re[i0] = re[i0] + tRe
				im[i0] = im[i0] + tIm
			}
		}
	}
}

// bitReversePermute reorders re/im in place into bit-reversed index
// order, the standard precondition for an iterative DIT FFT.
func bitReversePermute(re, im []int32) {
	n := len(re)
	j := 0
	for i := 1; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j &^= bit
		}
		j |= bit
		if i < j {
			re[i], re[j] = re[j], re[i]
			im[i], im[j] = im[j], im[i]
		}
	}
}

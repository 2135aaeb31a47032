package epoch

import "github.com/wristcore/engine/dsp"

// ProcessEpoch runs the full §4.5 pipeline over one 125-sample epoch
// (already split into three per-axis arrays) and returns the step
// delta contributed by this epoch.
func (s *State) ProcessEpoch(samples [3][EpochSamples]int16) int {
	var epochPIM [3]uint64
	var fftMag [3][]uint32

	for axis := 0; axis < 3; axis++ {
		s.meanAccum[axis] += int64(dsp.Mean(samples[axis][:]))

		var first10 [10]int16
		copy(first10[:], samples[axis][:10])
		s.filters[axis].Prime(first10)

		for sec := 0; sec < EpochSeconds; sec++ {
			var secSamples [SampleHz]int16
			copy(secSamples[:], samples[axis][sec*SampleHz:(sec+1)*SampleHz])
			pim := s.filters[axis].RunSecond(secSamples)
			s.pimAccum[axis] += uint64(pim)
			epochPIM[axis] += uint64(pim)
		}

		windowed := make([]int32, EpochSamples)
		for i, v := range samples[axis] {
			windowed[i] = int32(v)
		}
		tapered := dsp.CosineTaperWindow(windowed, dsp.TrigMaxRatio)
		fftMag[axis] = dsp.FFTMagnitudes(tapered)
	}

	composite := make([]uint32, dsp.FFTMagnitudeCount)
	for i := range composite {
		var sumSq uint64
		for axis := 0; axis < 3; axis++ {
			v := uint64(fftMag[axis][i])
			sumSq += v * v
		}
		composite[i] = uint32(dsp.ISqrt64(sumSq))
	}

	vmc := ComputeVMC(epochPIM)
	c := classifyEpoch(composite, vmc)
	newSteps := stepsForEpoch(c, s.prevWasFull, s.prevWasHalf, s.prevWalkHz)

	if s.Stats != nil {
		s.Stats(EpochStats{
			Steps:   newSteps,
			Freq:    c.walkHz,
			VMC:     vmc,
			Score0:  c.score0,
			ScoreHF: c.scoreHF,
			ScoreLF: c.scoreLF,
			Total:   epochPIM[0] + epochPIM[1] + epochPIM[2],
		})
	}

	s.prevWasFull = c.isFull
	s.prevWasHalf = c.isHalf
	if c.isFull || c.isHalf {
		s.prevWalkHz = c.walkHz
	}

	return newSteps
}

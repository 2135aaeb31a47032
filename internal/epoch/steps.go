package epoch

// classification is the result of scoring one epoch's composite
// magnitude spectrum against the step-detection thresholds (§4.6).
type classification struct {
	walkHz  int
	score0  int
	scoreHF int
	scoreLF int
	isFull  bool
	isHalf  bool
}

// classifyEpoch picks a candidate walking frequency from the composite
// magnitude spectrum, scores it, and decides whether the epoch is a
// full or half step epoch.
func classifyEpoch(mag []uint32, vmc uint32) classification {
	lo, hi := candidateBand(vmc)
	if vmc >= 1000 && lo == MinStepFreq && hi == 12 {
		if sumRange(mag, 12, MaxStepFreq+1) > sumRange(mag, lo, hi+1)*3/2 {
			lo, hi = 12, MaxStepFreq
		}
	}

	center := argmaxBin(mag, lo, hi)

	var best int
	var bestEnergy uint64
	for w := center - 2; w <= center+2; w++ {
		if w < MinStepFreq || w > MaxStepFreq {
			continue
		}
		e := signalEnergy(mag, w)
		if e >= bestEnergy {
			bestEnergy = e
			best = w
		}
	}

	totalAbs := totalEnergy(mag)

	var score0, scoreHF, scoreLF int
	if bestEnergy > 0 {
		scoreHF = int(100 * sumRange(mag, 50, len(mag)) / bestEnergy)
		scoreLF = int(100 * sumRange(mag, 0, 4) / bestEnergy)
	}
	if totalAbs > 0 {
		score0 = int(100 * bestEnergy / totalAbs)
	}

	c := classification{
		walkHz:  best,
		score0:  score0,
		scoreHF: scoreHF,
		scoreLF: scoreLF,
	}

	fullRangeOK := best >= MinStepFreq && best <= MaxStepFreq
	c.isFull = fullRangeOK &&
		score0 >= 15 &&
		vmc >= 135 &&
		scoreHF <= 120 &&
		scoreLF <= 145 &&
		totalAbs >= 1000 &&
		!(best >= 12 && vmc < 1000)

	if !c.isFull {
		c.isHalf = best >= 6 && best <= MaxStepFreq &&
			score0 >= 9 &&
			vmc >= 120
	}

	return c
}

// candidateBand picks the VMC-dependent search band (§4.6).
func candidateBand(vmc uint32) (lo, hi int) {
	switch {
	case vmc < 340:
		return MinStepFreq, 10
	case vmc < 2000:
		return MinStepFreq, 12
	default:
		return 10, MaxStepFreq
	}
}

// signalEnergy sums the magnitude contributions the spec lists for
// candidate walking frequency w: the fundamental, the arm-swing term
// and its harmonics, and the walk's own second through fifth harmonics.
func signalEnergy(mag []uint32, w int) uint64 {
	energy := bandSum(mag, w, 0)

	arm := w / 2
	if arm >= 5 {
		energy += bandSum(mag, arm, 1)
	}
	energy += bandSum(mag, w+arm, 1)  // third harmonic of arm
	energy += bandSum(mag, 2*w, 1)    // second harmonic of walk
	energy += bandSum(mag, 2*w+arm, 1) // fifth harmonic of arm
	energy += bandSum(mag, 3*w, 1)    // third harmonic of walk
	energy += bandSum(mag, 4*w, 1)    // fourth harmonic of walk
	energy += bandSum(mag, 5*w, 1)    // fifth harmonic of walk

	return energy
}

// bandSum sums mag[center-radius .. center+radius], inclusive,
// silently dropping out-of-range indices rather than panicking — the
// harmonic windows can run past the top of the spectrum for large w.
func bandSum(mag []uint32, center, radius int) uint64 {
	var sum uint64
	for i := center - radius; i <= center+radius; i++ {
		if i < 0 || i >= len(mag) {
			continue
		}
		sum += uint64(mag[i])
	}
	return sum
}

// argmaxBin returns the index of the largest magnitude in mag[lo, hi],
// clipped to the array bounds.
func argmaxBin(mag []uint32, lo, hi int) int {
	if lo < 0 {
		lo = 0
	}
	if hi >= len(mag) {
		hi = len(mag) - 1
	}
	best := lo
	for i := lo + 1; i <= hi; i++ {
		if mag[i] > mag[best] {
			best = i
		}
	}
	return best
}

// sumRange sums mag[lo, hi) — a half-open range, clamped to bounds.
func sumRange(mag []uint32, lo, hi int) uint64 {
	if lo < 0 {
		lo = 0
	}
	if hi > len(mag) {
		hi = len(mag)
	}
	var sum uint64
	for i := lo; i < hi; i++ {
		sum += uint64(mag[i])
	}
	return sum
}

// totalEnergy sums the whole spectrum.
func totalEnergy(mag []uint32) uint64 {
	return sumRange(mag, 0, len(mag))
}

// stepsForEpoch applies the full/half carry rule across consecutive
// epochs (§4.6's emitted-step-count table).
func stepsForEpoch(c classification, prevFull, prevHalf bool, prevWalkHz int) int {
	switch {
	case c.isFull:
		steps := c.walkHz
		if prevHalf {
			steps += c.walkHz / 2
		}
		return steps
	case c.isHalf:
		if prevFull {
			return prevWalkHz / 2
		}
		return 0
	default:
		return 0
	}
}

package epoch

// State holds everything the epoch engine carries across calls: the
// three per-axis band-pass filters, the minute accumulators they feed,
// and the full/half-epoch carry needed for step emission (§3.2, §3.3,
// §4.6). NewState allocates it once and the engine's state struct
// (§4.12) holds it by pointer, so no per-epoch state lives on the stack.
type State struct {
	filters [3]*BandpassFilter

	meanAccum [3]int64
	pimAccum  [3]uint64

	prevWasFull bool
	prevWasHalf bool
	prevWalkHz  int

	Stats StatsCallback
}

// NewState builds a zeroed epoch engine state with fresh filters.
func NewState(stats StatsCallback) *State {
	s := &State{Stats: stats}
	for i := range s.filters {
		s.filters[i] = NewBandpassFilter()
	}
	return s
}

// Reset zeroes accumulators, clears the full/half-epoch carry, and
// resets every filter (which also clears its primed flag, so the next
// epoch re-primes as if at engine init).
func (s *State) Reset() {
	for _, f := range s.filters {
		f.Reset()
	}
	s.meanAccum = [3]int64{}
	s.pimAccum = [3]uint64{}
	s.prevWasFull = false
	s.prevWasHalf = false
	s.prevWalkHz = 0
}

// DrainMinuteAccumulators returns the current mean/PIM accumulators and
// zeroes them, for the minute summary (§4.7).
func (s *State) DrainMinuteAccumulators() (mean [3]int64, pim [3]uint64) {
	mean, pim = s.meanAccum, s.pimAccum
	s.meanAccum = [3]int64{}
	s.pimAccum = [3]uint64{}
	return mean, pim
}

// Package sleepstate implements the sleep-score convolution and its
// three state machines: sleep session detection, the deep-sleep child
// state machine, and not-worn detection (spec §4.8-§4.10).
package sleepstate

// FilterWidth is the rolling minute-history length the score
// convolution runs over (§3.4).
const FilterWidth = 9

// HalfWidth is how many minutes into the past the scored minute sits
// relative to the most recently appended one — the convolution is
// centred, so the minute evaluated each call is four minutes stale.
const HalfWidth = 4

// scoreWeights are applied to the 9 VMCs oldest-to-newest, divided by
// 100 (§4.8). The kernel is not symmetric: the real weight mass sits
// left of centre, and the last two taps are unused padding carried
// over from the fixed 9-slot history width.
var scoreWeights = [FilterWidth]int64{10, 15, 28, 31, 85, 15, 10, 0, 0}

// MinuteSample is one minute's contribution to the rolling history
// (§3.4), plus the not-worn status computed for it at push time — the
// not-worn detector has no delay of its own, so capturing its verdict
// alongside the sample lets the score convolution, which evaluates a
// stale minute, read the not-worn status for that same stale minute.
type MinuteSample struct {
	VMC         uint16
	Orientation uint8
	PluggedIn   bool
	NotWorn     bool
}

// History is the 9-slot rolling minute queue (§3.4): oldest at index 0,
// most recently pushed at the last occupied index.
type History struct {
	slots [FilterWidth]MinuteSample
	count int
}

// Push appends a sample, dropping the oldest once the history is full.
func (h *History) Push(s MinuteSample) {
	if h.count < FilterWidth {
		h.slots[h.count] = s
		h.count++
		return
	}
	copy(h.slots[:], h.slots[1:])
	h.slots[FilterWidth-1] = s
}

// Full reports whether 9 minutes have been pushed since the last reset.
func (h *History) Full() bool { return h.count == FilterWidth }

// Score computes the weighted VMC convolution for the minute at
// index HalfWidth, valid only once Full reports true.
func (h *History) Score() int {
	var weighted int64
	for i, w := range scoreWeights {
		weighted += int64(h.slots[i].VMC) * w
	}
	return int(weighted / 100)
}

// Evaluated returns the minute the current Score() call is scoring —
// the one HalfWidth slots from the oldest end.
func (h *History) Evaluated() MinuteSample {
	return h.slots[HalfWidth]
}

// Reset clears the history, e.g. on a time-travel reset.
func (h *History) Reset() {
	h.slots = [FilterWidth]MinuteSample{}
	h.count = 0
}

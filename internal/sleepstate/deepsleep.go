package sleepstate

// deepScoreThreshold: a minute with score at or below this is "deep".
const deepScoreThreshold = 160

// deepRunThreshold is the number of consecutive deep minutes that
// registers an official deep-sleep candidate with a start time.
const deepRunThreshold = 20

// deepBufferCapacity bounds the candidate buffer (§3.6).
const deepBufferCapacity = 8

type deepCandidate struct {
	start int64
	lenM  int
}

// Deep implements the §4.9 deep-sleep child state machine, driven
// entirely by the parent sleep state machine's Start/Continue/End/Abort
// calls.
type Deep struct {
	deepRun       int
	deepStartTime int64
	hasDeepStart  bool

	okToRegister bool
	buffer       []deepCandidate

	emittedOngoing []int64
}

// Start resets the child state machine for a new parent session.
func (d *Deep) Start() {
	*d = Deep{}
}

// Continue processes one more scored minute. score and okToRegister
// come from the parent sleep state machine's own evaluation of the
// same minute.
func (d *Deep) Continue(sampleUTC int64, score int, okToRegister bool, emit Emit) {
	if score <= deepScoreThreshold {
		d.deepRun++
		if d.deepRun == deepRunThreshold {
			d.deepStartTime = sampleUTC - (deepRunThreshold-1)*60
			d.hasDeepStart = true
		}
	} else {
		d.closeRun(sampleUTC, emit)
	}

	if okToRegister && !d.okToRegister {
		for _, c := range d.buffer {
			d.emitOngoing(c.start, c.lenM, emit)
		}
	}
	d.okToRegister = okToRegister

	if d.okToRegister && d.hasDeepStart {
		lenM := int((sampleUTC - d.deepStartTime) / 60)
		d.emitOngoing(d.deepStartTime, lenM, emit)
	}
}

// closeRun handles a non-deep minute arriving: it ends any in-progress
// run, either emitting it immediately (already registered) or
// buffering/emitting per the current registration state.
func (d *Deep) closeRun(sampleUTC int64, emit Emit) {
	switch {
	case d.hasDeepStart:
		lenM := int((sampleUTC - d.deepStartTime) / 60)
		d.finishCandidate(deepCandidate{start: d.deepStartTime, lenM: lenM}, emit)
		d.hasDeepStart = false
	case d.deepRun > 0:
		cand := deepCandidate{start: sampleUTC - int64(d.deepRun)*60, lenM: d.deepRun}
		d.finishCandidate(cand, emit)
	}
	d.deepRun = 0
}

func (d *Deep) finishCandidate(c deepCandidate, emit Emit) {
	if d.okToRegister {
		emit(Session{Kind: KindRestfulSleep, StartUTC: c.start, DurationSec: int64(c.lenM) * 60})
		return
	}
	d.buffer = append(d.buffer, c)
	if len(d.buffer) > deepBufferCapacity {
		d.buffer = d.buffer[1:]
	}
}

func (d *Deep) emitOngoing(start int64, lenM int, emit Emit) {
	emit(Session{Kind: KindRestfulSleep, StartUTC: start, DurationSec: int64(lenM) * 60, Ongoing: true})
	d.emittedOngoing = append(d.emittedOngoing, start)
}

// End finalizes the parent session normally: a run that has reached
// deepRunThreshold is closed, and buffered candidates are flushed as
// completed. A shorter run still in progress is dropped.
func (d *Deep) End(sampleUTC int64, emit Emit) {
	if d.hasDeepStart {
		lenM := int((sampleUTC - d.deepStartTime) / 60)
		d.finishCandidate(deepCandidate{start: d.deepStartTime, lenM: lenM}, emit)
		d.hasDeepStart = false
	}
	for _, c := range d.buffer {
		emit(Session{Kind: KindRestfulSleep, StartUTC: c.start, DurationSec: int64(c.lenM) * 60})
	}
	*d = Deep{}
}

// Abort retracts every ongoing deep-sleep session this child state
// machine has emitted, because the parent session was rejected.
func (d *Deep) Abort(emit Emit) {
	for _, start := range d.emittedOngoing {
		emit(Session{Kind: KindRestfulSleep, StartUTC: start, Delete: true})
	}
	*d = Deep{}
}

package sleepstate

const (
	sessionStartMinutes = 5

	maxWakeShort = 14 // consecutive awake minutes tolerated, session < 60 min
	maxWakeLong  = 11 // ... session >= 60 min

	sessionMinDurationM = 60

	validityCheckMinDurationM = 39
	nonZeroRatioRejectPct     = 89
	clippedVMCAvgRejectLimit  = 180
	clippedVMCCap             = 1000

	rejectVMCThreshold   = 10000
	rejectScoreThreshold = 8000

	sleepScoreThreshold = 330

	// maxUncertainSleepM = maxWakeShort + HalfWidth + 1 (§4.8).
	maxUncertainSleepM = maxWakeShort + HalfWidth + 1
)

// SummaryStats mirrors the latest closed or ongoing sleep session for
// external queries (§3.5, §4.12's get_sleep_stats).
type SummaryStats struct {
	SleepStartUTC     int64
	UncertainStartUTC int64
	SleepLenM         int
}

// Detector bundles the sleep session state machine with its deep-sleep
// child and the not-worn detector it consults (§3.5-§3.7).
type Detector struct {
	history History
	notWorn NotWorn
	deep    Deep

	hasStart bool
	startUTC int64

	consecutiveSleep int
	consecutiveAwake int
	numNonZeroMinutes int
	clippedVMCSum     int64

	ongoingEmitted  bool
	ongoingStartUTC int64

	summary SummaryStats
}

// Update processes one minute's (vmc, orientation, plugged_in),
// advancing the not-worn detector, the rolling history, and — once the
// history is full — the sleep session and deep-sleep state machines.
// shuttingDown forces any open session closed.
func (d *Detector) Update(nowUTC int64, vmc uint16, orientation uint8, pluggedIn, shuttingDown bool, emit Emit) {
	notWorn := d.notWorn.Update(nowUTC, vmc, orientation, pluggedIn)
	d.history.Push(MinuteSample{VMC: vmc, Orientation: orientation, PluggedIn: pluggedIn, NotWorn: notWorn})

	if !d.history.Full() {
		return
	}

	evaluated := d.history.Evaluated()
	score := d.history.Score()
	sampleUTC := nowUTC - HalfWidth*60
	isSleepMinute := score <= sleepScoreThreshold && !evaluated.NotWorn

	if !d.hasStart {
		if isSleepMinute {
			d.consecutiveSleep++
		} else {
			d.consecutiveSleep = 0
		}
		if d.consecutiveSleep >= sessionStartMinutes {
			d.hasStart = true
			d.startUTC = sampleUTC - sessionStartMinutes*60
			d.consecutiveAwake = 0
			d.numNonZeroMinutes = 0
			d.clippedVMCSum = 0
			d.deep.Start()
		}
		return
	}

	durationM := int((sampleUTC - d.startUTC) / 60)

	if isSleepMinute {
		d.consecutiveSleep++
		d.consecutiveAwake = 0
	} else {
		d.consecutiveAwake++
		d.consecutiveSleep = 0
	}
	if evaluated.VMC > 0 {
		d.numNonZeroMinutes++
	}
	clipped := evaluated.VMC
	if clipped > clippedVMCCap {
		clipped = clippedVMCCap
	}
	d.clippedVMCSum += int64(clipped)

	maxWake := maxWakeShort
	if durationM >= sessionMinDurationM {
		maxWake = maxWakeLong
	}

	end, reject := false, false
	if d.consecutiveAwake >= maxWake {
		end = true
	}
	if evaluated.VMC > rejectVMCThreshold || score > rejectScoreThreshold {
		end = true
	}
	if durationM > validityCheckMinDurationM {
		if durationM > 0 && d.numNonZeroMinutes*100/durationM > nonZeroRatioRejectPct {
			end, reject = true, true
		}
		if durationM > 0 && d.clippedVMCSum/int64(durationM) > clippedVMCAvgRejectLimit {
			end, reject = true, true
		}
	}
	if d.notWorn.DuringSession(d.startUTC, durationM, true) {
		end, reject = true, true
	}
	if shuttingDown {
		end = true
	}

	if end {
		finalReject := reject || durationM < sessionMinDurationM || d.notWorn.DuringSession(d.startUTC, durationM, false)
		if !finalReject {
			emit(Session{Kind: KindSleep, StartUTC: d.startUTC, DurationSec: int64(durationM) * 60})
			d.summary = SummaryStats{
				SleepStartUTC:     d.startUTC,
				SleepLenM:         durationM,
				UncertainStartUTC: sampleUTC - maxUncertainSleepM*60,
			}
			d.deep.End(sampleUTC, emit)
		} else {
			if d.ongoingEmitted {
				emit(Session{Kind: KindSleep, StartUTC: d.ongoingStartUTC, Delete: true})
			}
			d.deep.Abort(emit)
		}
		d.resetSession()
		return
	}

	okToRegister := durationM >= sessionMinDurationM
	if okToRegister {
		emit(Session{Kind: KindSleep, StartUTC: d.startUTC, DurationSec: int64(durationM) * 60, Ongoing: true})
		d.ongoingEmitted = true
		d.ongoingStartUTC = d.startUTC
		d.summary.UncertainStartUTC = sampleUTC - maxUncertainSleepM*60
		d.summary.SleepStartUTC = d.startUTC
		d.summary.SleepLenM = durationM
	}
	d.deep.Continue(sampleUTC, score, okToRegister, emit)
}

func (d *Detector) resetSession() {
	d.hasStart = false
	d.consecutiveSleep = 0
	d.consecutiveAwake = 0
	d.numNonZeroMinutes = 0
	d.clippedVMCSum = 0
	d.ongoingEmitted = false
}

// Summary returns the latest closed or ongoing session's stats.
func (d *Detector) Summary() SummaryStats { return d.summary }

// Reset clears all state — history, not-worn, deep-sleep, and the
// session in progress — for a time-travel discontinuity or an
// activity-tracking toggle.
func (d *Detector) Reset() {
	d.history.Reset()
	d.notWorn.Reset()
	d.deep = Deep{}
	d.resetSession()
}

// Package stepactivity implements the walk/run activity-session
// tracker (spec §3.8, §4.11): two independently parametrized instances
// of the same state machine, one for walking step rates and one for
// running.
package stepactivity

// Params is one activity's steps/minute classification band.
type Params struct {
	MinStepsPerMin int
	MaxStepsPerMin int
}

var (
	// WalkParams classifies 40-130 steps/min as walking.
	WalkParams = Params{MinStepsPerMin: 40, MaxStepsPerMin: 130}
	// RunParams classifies 130-255 steps/min as running.
	RunParams = Params{MinStepsPerMin: 130, MaxStepsPerMin: 255}
)

const (
	hrmAcquireDurationSec = 3 * 60
	minEmitDurationSec    = 600
	maxInactiveMinutes    = 6
)

// HRMSubscriber is the consumed HRM interface (§6.3): the tracker
// acquires a session purely to keep sensor power management aware, and
// never reads anything back from it.
type HRMSubscriber interface {
	Subscribe() (handle int, ok bool)
	Unsubscribe(handle int)
}

// Session is one emitted activity-session event (§6.1), trimmed to the
// fields Walk/Run use.
type Session struct {
	StartUTC    int64
	DurationSec int64
	Ongoing     bool
	Delete      bool
	Steps       int
	RestingCal  int
	ActiveCal   int
	DistanceMM  int
}

// Emit delivers one session event.
type Emit func(Session)

// Tracker is one activity's state machine (§3.8).
type Tracker struct {
	params Params
	hrm    HRMSubscriber

	active              bool
	startUTC            int64
	inactiveMinuteCount int

	steps      int
	restingCal int
	activeCal  int
	distanceMM int

	hrmHandle      int
	hrmAcquired    bool
	ongoingEmitted bool
}

// New builds a tracker for the given band, using hrm to acquire and
// release HRM sessions. hrm may be nil, in which case HRM is never
// touched.
func New(params Params, hrm HRMSubscriber) *Tracker {
	return &Tracker{params: params, hrm: hrm}
}

// Active reports whether a session is currently in progress.
func (t *Tracker) Active() bool { return t.active }

// inRange reports whether stepsPerMin falls in this tracker's band.
func (t *Tracker) inRange(stepsPerMin int) bool {
	return stepsPerMin >= t.params.MinStepsPerMin && stepsPerMin <= t.params.MaxStepsPerMin
}

// Update feeds one minute's step count and roll-up deltas (§4.11).
// shuttingDown forces the session closed regardless of activity.
func (t *Tracker) Update(nowUTC int64, stepsPerMin int, restingCalDelta, activeCalDelta, distanceMMDelta int, shuttingDown bool, emit Emit) {
	isActive := t.inRange(stepsPerMin)

	if !t.active {
		if !isActive || shuttingDown {
			return
		}
		t.active = true
		t.startUTC = nowUTC - 60
		t.inactiveMinuteCount = 0
		t.steps, t.restingCal, t.activeCal, t.distanceMM = 0, 0, 0, 0
		t.ongoingEmitted = false
	}

	t.steps += stepsPerMin
	t.restingCal += restingCalDelta
	t.activeCal += activeCalDelta
	t.distanceMM += distanceMMDelta

	if isActive {
		t.inactiveMinuteCount = 0
	} else {
		t.inactiveMinuteCount++
	}

	durationSec := nowUTC - t.startUTC

	if !t.hrmAcquired && durationSec >= hrmAcquireDurationSec && t.hrm != nil {
		if h, ok := t.hrm.Subscribe(); ok {
			t.hrmHandle = h
			t.hrmAcquired = true
		}
	}

	if durationSec >= minEmitDurationSec {
		emit(t.snapshot(durationSec, true, false))
		t.ongoingEmitted = true
	}

	if t.inactiveMinuteCount > maxInactiveMinutes || shuttingDown {
		if durationSec >= minEmitDurationSec {
			emit(t.snapshot(durationSec, false, false))
		} else if t.ongoingEmitted {
			emit(t.snapshot(durationSec, false, true))
		}
		t.release()
		t.resetToZero()
	}
}

func (t *Tracker) snapshot(durationSec int64, ongoing, del bool) Session {
	return Session{
		StartUTC:    t.startUTC,
		DurationSec: durationSec,
		Ongoing:     ongoing,
		Delete:      del,
		Steps:       t.steps,
		RestingCal:  t.restingCal,
		ActiveCal:   t.activeCal,
		DistanceMM:  t.distanceMM,
	}
}

func (t *Tracker) release() {
	if t.hrmAcquired && t.hrm != nil {
		t.hrm.Unsubscribe(t.hrmHandle)
	}
	t.hrmAcquired = false
}

func (t *Tracker) resetToZero() {
	t.active = false
	t.startUTC = 0
	t.inactiveMinuteCount = 0
	t.steps, t.restingCal, t.activeCal, t.distanceMM = 0, 0, 0, 0
	t.ongoingEmitted = false
}

// LastUpdateUTC backs activity_last_processed_time for walk/run
// (§4.12): while a session is active it returns nowUTC, the caller's
// last update time, i.e. the minute most recently folded in; with no
// active session it returns 0.
func (t *Tracker) LastUpdateUTC(nowUTC int64) int64 {
	if !t.active {
		return 0
	}
	return nowUTC
}

// Reset forces the tracker back to zero state, releasing any held HRM
// session first — a time-travel discontinuity or a tracking toggle.
func (t *Tracker) Reset() {
	t.release()
	t.resetToZero()
}

// Package wristcore is the engine facade (spec §4.12): it owns the
// epoch engine, the minute summary, the sleep/deep-sleep/not-worn
// detectors, and the walk/run activity trackers behind one state
// struct, and drives them from the three calls a caller actually makes
// once a sensor/activity task is running — analyze_samples,
// minute_stats, and activities_update.
package wristcore

import (
	"unsafe"

	"github.com/golang/glog"

	"github.com/wristcore/engine/internal/epoch"
	"github.com/wristcore/engine/internal/minute"
	"github.com/wristcore/engine/internal/sleepstate"
	"github.com/wristcore/engine/internal/stepactivity"
)

// timeTravelWindowSec bounds how far utc_now may advance between calls
// before the engine treats it as a wall-clock discontinuity (§4.12).
const timeTravelWindowSec = 5 * 60

// Activity enumerates the four session kinds the facade can emit
// (§6.1).
type Activity int

const (
	ActivitySleep Activity = iota
	ActivityRestfulSleep
	ActivityWalk
	ActivityRun
)

func (a Activity) String() string {
	switch a {
	case ActivitySleep:
		return "Sleep"
	case ActivityRestfulSleep:
		return "RestfulSleep"
	case ActivityWalk:
		return "Walk"
	case ActivityRun:
		return "Run"
	default:
		return "Unknown"
	}
}

// SessionCallback is the external session-emit callback (§6.1).
type SessionCallback func(ctx any, activity Activity, startUTC, durationSec int64, ongoing, del bool, steps, restingCal, activeCal, distanceMM int)

// StatsCallback is the optional per-epoch calibration callback (§6.2).
type StatsCallback = epoch.StatsCallback

// EpochStats re-exports the per-epoch payload so callers configuring a
// StatsCallback don't need to import the internal epoch package.
type EpochStats = epoch.EpochStats

// HRMSubscriber is the consumed HRM interface (§6.3). The engine never
// reads the HRM data stream — it subscribes purely to keep sensor
// power management aware an activity is in progress — so unlike the
// spec's C signature this carries no data callback at all.
type HRMSubscriber interface {
	Subscribe(activity Activity, intervalSec, expireSec int, features uint32) (handle int, ok bool)
	Unsubscribe(handle int)
}

// hrmAdapter narrows the richer HRMSubscriber down to the minimal
// shape internal/stepactivity needs, fixing the activity identity and
// a conservative default interval/expiry at construction time.
type hrmAdapter struct {
	sub      HRMSubscriber
	activity Activity
}

func (a *hrmAdapter) Subscribe() (int, bool) {
	if a.sub == nil {
		return 0, false
	}
	return a.sub.Subscribe(a.activity, 1, 0, 0)
}

func (a *hrmAdapter) Unsubscribe(handle int) {
	if a.sub != nil {
		a.sub.Unsubscribe(handle)
	}
}

// Engine is the full engine state (§3, §4.12). Every exported method
// takes *Engine as its receiver in place of the spec's explicit
// state-pointer-as-first-parameter convention (§9's re-architecture
// note): the receiver *is* that parameter.
type Engine struct {
	epoch *epoch.State

	rawBuf     [3][epoch.EpochSamples]int16
	numSamples int

	sleep sleepstate.Detector
	walk  *stepactivity.Tracker
	run   *stepactivity.Tracker

	trackingEnabled bool

	haveLastUpdate bool
	lastUpdateUTC  int64
}

// Init builds a ready-to-use engine. statsCb may be nil to disable
// epoch calibration stats; hrm may be nil to disable HRM acquisition
// entirely (§4.12's init contract: stats_cb may be null).
func Init(statsCb StatsCallback, hrm HRMSubscriber) *Engine {
	e := &Engine{
		epoch:           epoch.NewState(statsCb),
		trackingEnabled: true,
	}
	e.walk = stepactivity.New(stepactivity.WalkParams, &hrmAdapter{sub: hrm, activity: ActivityWalk})
	e.run = stepactivity.New(stepactivity.RunParams, &hrmAdapter{sub: hrm, activity: ActivityRun})
	return e
}

// StateSize reports the engine's own in-memory footprint, mirroring
// the spec's opaque engine_size() (§4.12). It measures the top-level
// struct only: Go's slice-backed filter and history types mean a
// byte-exact flat C-struct size is not reproducible, and no caller
// here ever allocates engine_size() bytes and casts them the way the
// original firmware does, so the shallow size is what the contract
// actually needs — a rough sizing hint, not a serialization length.
func (e *Engine) StateSize() uintptr {
	return unsafe.Sizeof(*e)
}

// AnalyzeSamples buffers samples until a 125-sample epoch fills,
// processing every complete epoch the call produces, and returns the
// cumulative step delta plus how many input samples were folded into
// completed epochs this call — always a multiple of 125, possibly 0
// (§4.12, tested directly by scenario S6).
func (e *Engine) AnalyzeSamples(samples [][3]int16) (newSteps, consumed int) {
	for _, s := range samples {
		if e.numSamples >= epoch.EpochSamples {
			invariant(false, "epoch buffer overrun: numSamples=%d", e.numSamples)
		}
		for axis := 0; axis < 3; axis++ {
			e.rawBuf[axis][e.numSamples] = s[axis]
		}
		e.numSamples++

		if e.numSamples == epoch.EpochSamples {
			newSteps += e.epoch.ProcessEpoch(e.rawBuf)
			e.numSamples = 0
			consumed += epoch.EpochSamples
		}
	}
	return newSteps, consumed
}

// AnalyzeFinishEpoch forces processing of whatever partial epoch is
// currently buffered, zero-filling the unfilled tail, and resets the
// buffer (§4.12 — used before long suspends).
func (e *Engine) AnalyzeFinishEpoch() int {
	if e.numSamples == 0 {
		return 0
	}
	for axis := 0; axis < 3; axis++ {
		for i := e.numSamples; i < epoch.EpochSamples; i++ {
			e.rawBuf[axis][i] = 0
		}
	}
	steps := e.epoch.ProcessEpoch(e.rawBuf)
	e.numSamples = 0
	return steps
}

// MinuteStats reads and clears the minute accumulators (§4.7, §4.12).
func (e *Engine) MinuteStats() (vmc uint16, orientation uint8, still bool) {
	mean, pim := e.epoch.DrainMinuteAccumulators()
	return minute.Summarize(mean, pim)
}

// checkTimeTravel resets all detector state on a non-monotonic or
// excessively large jump in utc_now (§4.12, §5's ordering guarantee).
// Returns true if a reset occurred.
func (e *Engine) checkTimeTravel(utcNow int64) bool {
	if !e.haveLastUpdate {
		e.haveLastUpdate = true
		e.lastUpdateUTC = utcNow
		return false
	}
	if utcNow < e.lastUpdateUTC || utcNow > e.lastUpdateUTC+timeTravelWindowSec {
		glog.Warningf("wristcore: time travel detected (last=%d now=%d), resetting detector state", e.lastUpdateUTC, utcNow)
		e.resetDetectors()
		e.lastUpdateUTC = utcNow
		return true
	}
	e.lastUpdateUTC = utcNow
	return false
}

func (e *Engine) resetDetectors() {
	e.epoch.Reset()
	e.sleep.Reset()
	e.walk.Reset()
	e.run.Reset()
	e.numSamples = 0
}

// ActivitiesUpdate is the per-minute activity drive call (§4.12): time
// travel guard, then the sleep detector and both step-activity
// trackers, all synchronously emitting through sessionCb.
func (e *Engine) ActivitiesUpdate(
	utcNow int64,
	steps int,
	vmc uint16,
	orientation uint8,
	pluggedIn bool,
	restingCalDelta, activeCalDelta, distanceMMDelta int,
	shuttingDown bool,
	sessionCb SessionCallback,
	ctx any,
) {
	e.checkTimeTravel(utcNow)
	if !e.trackingEnabled {
		return
	}

	if sessionCb != nil {
		e.sleep.Update(utcNow, vmc, orientation, pluggedIn, shuttingDown, func(s sleepstate.Session) {
			activity := ActivitySleep
			if s.Kind == sleepstate.KindRestfulSleep {
				activity = ActivityRestfulSleep
			}
			sessionCb(ctx, activity, s.StartUTC, s.DurationSec, s.Ongoing, s.Delete, 0, 0, 0, 0)
		})

		walkEmit := func(s stepactivity.Session) {
			sessionCb(ctx, ActivityWalk, s.StartUTC, s.DurationSec, s.Ongoing, s.Delete, s.Steps, s.RestingCal, s.ActiveCal, s.DistanceMM)
		}
		runEmit := func(s stepactivity.Session) {
			sessionCb(ctx, ActivityRun, s.StartUTC, s.DurationSec, s.Ongoing, s.Delete, s.Steps, s.RestingCal, s.ActiveCal, s.DistanceMM)
		}
		e.walk.Update(utcNow, steps, restingCalDelta, activeCalDelta, distanceMMDelta, shuttingDown, walkEmit)
		e.run.Update(utcNow, steps, restingCalDelta, activeCalDelta, distanceMMDelta, shuttingDown, runEmit)
	} else {
		e.sleep.Update(utcNow, vmc, orientation, pluggedIn, shuttingDown, func(sleepstate.Session) {})
		e.walk.Update(utcNow, steps, restingCalDelta, activeCalDelta, distanceMMDelta, shuttingDown, func(stepactivity.Session) {})
		e.run.Update(utcNow, steps, restingCalDelta, activeCalDelta, distanceMMDelta, shuttingDown, func(stepactivity.Session) {})
	}
}

// ActivityLastProcessedTime implements §4.12's per-activity timestamp
// query: sleep and deep sleep report 4 minutes in the past because of
// the score convolution's centring, walk/run report the last update
// directly.
func (e *Engine) ActivityLastProcessedTime(activity Activity) int64 {
	switch activity {
	case ActivitySleep, ActivityRestfulSleep:
		return e.lastUpdateUTC - sleepstate.HalfWidth*60
	case ActivityWalk:
		return e.walk.LastUpdateUTC(e.lastUpdateUTC)
	case ActivityRun:
		return e.run.LastUpdateUTC(e.lastUpdateUTC)
	default:
		invariant(false, "unknown activity %v", activity)
		return 0
	}
}

// SleepStats mirrors get_sleep_stats (§4.12).
func (e *Engine) SleepStats() sleepstate.SummaryStats {
	return e.sleep.Summary()
}

// EnableActivityTracking toggles the gate on the sleep and
// step-activity detectors, resetting their state every time it is
// called (§4.12): this is a coarse, deliberately disruptive operation,
// not a pause/resume.
func (e *Engine) EnableActivityTracking(enable bool) {
	e.trackingEnabled = enable
	e.resetDetectors()
}

// invariant halts the process on a violated precondition — a
// programmer error per the §7 error taxonomy, not a recoverable
// condition.
func invariant(cond bool, format string, args ...any) {
	if !cond {
		glog.Fatalf(format, args...)
	}
}

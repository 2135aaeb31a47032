package wristcore

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wristcore/engine/internal/epoch"
)

func zeroSamples(n int) [][3]int16 {
	return make([][3]int16, n)
}

// TestScenarioS1AllZeros: 30 minutes of (0,0,0) samples produce zero
// steps and no activity sessions.
func TestScenarioS1AllZeros(t *testing.T) {
	e := Init(nil, nil)
	var sessions int

	samplesPerMinute := epoch.SampleHz * 60
	for m := 0; m < 30; m++ {
		newSteps, consumed := e.AnalyzeSamples(zeroSamples(samplesPerMinute))
		require.Zerof(t, newSteps, "minute %d", m)
		require.Equalf(t, samplesPerMinute, consumed, "minute %d", m)

		vmc, _, _ := e.MinuteStats()
		require.LessOrEqualf(t, vmc, uint16(5), "minute %d: vmc should be ~0", m)

		e.ActivitiesUpdate(int64(m)*60, 0, vmc, 0, false, 0, 0, 0, false, func(ctx any, activity Activity, start, dur int64, ongoing, del bool, steps, rc, ac, dm int) {
			sessions++
		}, nil)
	}
	require.Zero(t, sessions, "expected zero sessions for 30 minutes of silence")
}

// TestScenarioS6EpochBoundary: feeding 124 samples buffers without
// completing an epoch; the 125th completes it.
func TestScenarioS6EpochBoundary(t *testing.T) {
	e := Init(nil, nil)

	_, consumed := e.AnalyzeSamples(zeroSamples(124))
	require.Zero(t, consumed, "consumed after 124 samples")

	_, consumed = e.AnalyzeSamples(zeroSamples(1))
	require.Equal(t, epoch.EpochSamples, consumed, "consumed after the 125th sample")
}

// TestScenarioS5TimeTravel: an ongoing Walk session is not updated
// across a backward utc_now jump, and subsequent activity re-accumulates
// from zero.
func TestScenarioS5TimeTravel(t *testing.T) {
	e := Init(nil, nil)
	e.trackingEnabled = true

	var lastStart int64
	var sawOngoing bool
	cb := func(ctx any, activity Activity, start, dur int64, ongoing, del bool, steps, rc, ac, dm int) {
		if activity == ActivityWalk && ongoing {
			lastStart = start
			sawOngoing = true
		}
	}

	for m := 0; m < 15; m++ {
		e.ActivitiesUpdate(int64(m)*60, 80, 0, 0, false, 0, 0, 0, false, cb, nil)
	}
	require.True(t, sawOngoing, "expected an ongoing Walk session after 15 active minutes")
	require.Equal(t, int64(-60), lastStart, "first Walk session starts one minute before the first active minute")

	// Jump 10 minutes into the past: exceeds the window in the
	// backward direction (utc_now < last_update). The guard resets
	// before the minute is processed, so this active minute opens a
	// fresh session instead of updating the old one.
	jumpUTC := int64(14)*60 - 600
	e.ActivitiesUpdate(jumpUTC, 80, 0, 0, false, 0, 0, 0, false, cb, nil)
	require.True(t, e.walk.Active(), "walk tracker should restart from the jump minute")

	for m := int64(1); m <= 10; m++ {
		e.ActivitiesUpdate(jumpUTC+m*60, 80, 0, 0, false, 0, 0, 0, false, cb, nil)
	}
	require.Equal(t, jumpUTC-60, lastStart, "walk session after the time-travel reset should re-accumulate from a fresh start")
}

// TestScenarioS2SteadyOscillationDoesNotPanic exercises the filter and
// FFT chain over many epochs of a synthetic walking-cadence signal;
// full numeric step-classification assertions are left to the
// package-level epoch tests, which pin the classifier against known
// spectra directly.
func TestScenarioS2SteadyOscillationDoesNotPanic(t *testing.T) {
	e := Init(nil, nil)

	const freqHz = 1.2
	const amplitude = 400.0
	samplesPerSec := epoch.SampleHz

	totalSteps := 0
	for epochIdx := 0; epochIdx < 180; epochIdx++ {
		samples := make([][3]int16, epoch.EpochSamples)
		for i := range samples {
			tSec := float64(epochIdx*epoch.EpochSamples+i) / float64(samplesPerSec)
			samples[i][0] = int16(amplitude * math.Sin(2*math.Pi*freqHz*tSec))
		}
		newSteps, consumed := e.AnalyzeSamples(samples)
		require.Equalf(t, epoch.EpochSamples, consumed, "epoch %d", epochIdx)
		require.GreaterOrEqualf(t, newSteps, 0, "epoch %d", epochIdx)
		totalSteps += newSteps
	}
	require.GreaterOrEqual(t, totalSteps, 0)
}

func TestStateSizeNonZero(t *testing.T) {
	e := Init(nil, nil)
	require.NotZero(t, e.StateSize())
}

func TestEnableActivityTrackingResetsState(t *testing.T) {
	e := Init(nil, nil)
	for m := 0; m < 5; m++ {
		e.ActivitiesUpdate(int64(m)*60, 80, 0, 0, false, 0, 0, 0, false, nil, nil)
	}
	e.EnableActivityTracking(false)
	require.False(t, e.walk.Active(), "expected walk tracker reset after disabling tracking")

	e.EnableActivityTracking(true)
	// A disabled engine must not advance any detector on ActivitiesUpdate.
	e.trackingEnabled = false
	e.ActivitiesUpdate(int64(100)*60, 80, 0, 0, false, 0, 0, 0, false, nil, nil)
	require.False(t, e.walk.Active(), "disabled engine must not start new activity sessions")
}

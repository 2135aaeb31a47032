// Package epoch implements the 5-second epoch engine: the band-pass PIM
// filter, per-epoch VMC, the FFT-based composite magnitude spectrum, and
// step classification (spec §4.3-§4.6).
package epoch

import "github.com/wristcore/engine/fixedpoint"

const (
	// SampleHz is the fixed accelerometer sample rate the whole engine
	// is tuned around.
	SampleHz = 25
	// EpochSeconds is the fixed epoch width.
	EpochSeconds = 5
	// EpochSamples is the number of samples per axis in one epoch.
	EpochSamples = SampleHz * EpochSeconds

	// VMCPMScale is the calibration divisor applied to per-axis PIM
	// before the root-sum-of-squares reduction, and reapplied after
	// (§4.4).
	VMCPMScale = 10
	// axisClip bounds each axis's scaled PIM before squaring, so the
	// sum of three squares can never overflow a uint32.
	axisClip = 37500

	// realVMCNumerator/realVMCDenominator calibrate Pebble-style raw
	// VMC units into Actigraph-style "real" counts.
	realVMCNumerator   = 2408
	realVMCDenominator = 12500

	// MinStepFreq and MaxStepFreq bound every step-frequency search.
	MinStepFreq = 7
	MaxStepFreq = 20
)

// Band-pass PIM filter coefficients: a 4th-order (5 input tap / 4
// output tap) digital Butterworth bandpass, 0.25-1.75 Hz at 25 Hz,
// designed via the standard lowpass-to-bandpass analog transform
// followed by the bilinear transform. The original firmware's exact
// constants are not recoverable (original_source/ retained zero files
// for this spec); these are a from-scratch design matching the named
// band edges and the 5-tap/4-tap shape spec.md requires, recorded as
// an explicit Open Question resolution in DESIGN.md.
//
// Coefficients are given in the filter's additive convention
// (y = Σ b·stateX + Σ a·stateY), not the textbook subtractive Direct
// Form I convention — the feedback coefficients here are already
// negated relative to a standard a1..a4.
var (
	bandpassB = []fixedpoint.Q31_32{
		119656784, 0, -239313569, 0, 119656784,
	}
	bandpassA = []fixedpoint.Q31_32{
		14718824180, -19125610132, 11219993310, -2520800093,
	}
)

// pimFloorPerSecond is 3.75*N/1000 with N = SampleHz, in the same
// fixed-point units as the filter's own arithmetic, subtracted from
// each second's absolute-value integral before clamping to zero
// (§4.3).
var pimFloorPerSecond = fixedpoint.Q31_32(402653184) // 0.09375 * 2^32, rounded

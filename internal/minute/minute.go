// Package minute converts the epoch engine's rolling mean/PIM
// accumulators into the once-a-minute summary the engine facade exposes
// to the caller: a VMC, a quantized orientation byte, and a reserved
// "still" flag (spec §4.7).
package minute

import (
	"github.com/wristcore/engine/dsp"
	"github.com/wristcore/engine/internal/epoch"
)

// numOrientationAngles is the bin count for both theta and phi, giving
// 16*16 = 256 discrete orientation bytes.
const numOrientationAngles = 16

// Summarize reduces one minute's mean and PIM accumulators to
// (vmc, orientation, still). mean carries the gravity-dominated
// per-axis average used for orientation; pim carries the band-passed
// activity intensity used for VMC.
func Summarize(mean [3]int64, pim [3]uint64) (vmc uint16, orientation uint8, still bool) {
	rawVMC := epoch.ComputeVMC(pim)
	if rawVMC > 0xFFFF {
		vmc = 0xFFFF
	} else {
		vmc = uint16(rawVMC)
	}

	x, y, z := int32(mean[0]), int32(mean[1]), int32(mean[2])
	theta := dsp.EncodeAngle(x, y, numOrientationAngles)

	xyMag := int32(dsp.ISqrt64(uint64(int64(x)*int64(x) + int64(y)*int64(y))))
	phi := dsp.EncodeAngle(xyMag, z, numOrientationAngles)

	orientation = uint8(numOrientationAngles*phi + theta)
	return vmc, orientation, false
}

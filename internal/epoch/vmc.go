package epoch

import "github.com/wristcore/engine/dsp"

// ComputeVMC reduces three per-axis PIM sums to a single real-counts
// VMC value (§4.4). Shared by the epoch engine (per-epoch PIM) and the
// minute summary (per-minute PIM accumulator) since both feed the same
// formula.
func ComputeVMC(pim [3]uint64) uint32 {
	var sumSq uint64
	for _, p := range pim {
		scaled := p / VMCPMScale
		if scaled > axisClip {
			scaled = axisClip
		}
		sumSq += scaled * scaled
	}
	rawVMC := VMCPMScale * dsp.ISqrt64(sumSq)
	return uint32(rawVMC * realVMCNumerator / realVMCDenominator)
}

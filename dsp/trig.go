package dsp

import "math"

// Angle units run in [0, TrigMaxAngle), a full turn. Ratio outputs
// (Sin/Cos) are scaled by TrigMaxRatio, i.e. TrigMaxRatio represents 1.0.
const (
	TrigMaxAngle = 4096
	TrigMaxRatio = 1 << 14

	quarterTurn = TrigMaxAngle / 4
)

// sinQuarterTable holds sin(angle) for angle in [0, quarterTurn], scaled
// by TrigMaxRatio. The remaining three quadrants are derived by
// symmetry in SinLookup, so the table only needs a quarter turn —
// the quantized-lookup equivalent of the teacher's "reuse existing ALU
// parts" philosophy applied to table memory instead of gates.
var sinQuarterTable [quarterTurn + 1]int32

func init() {
	for i := 0; i <= quarterTurn; i++ {
		rad := float64(i) / float64(TrigMaxAngle) * 2 * math.Pi
		sinQuarterTable[i] = int32(math.Round(math.Sin(rad) * TrigMaxRatio))
	}
}

// SinLookup returns TrigMaxRatio-scaled sin(angle), angle in turn units.
func SinLookup(angle int) int32 {
	angle = normalizeAngle(angle)
	quadrant := angle / quarterTurn
	pos := angle % quarterTurn

	switch quadrant {
	case 0:
		return sinQuarterTable[pos]
	case 1:
		return sinQuarterTable[quarterTurn-pos]
	case 2:
		return -sinQuarterTable[pos]
	default:
		return -sinQuarterTable[quarterTurn-pos]
	}
}

// CosLookup returns TrigMaxRatio-scaled cos(angle) via the quarter-turn
// phase shift cos(a) = sin(a + pi/2).
func CosLookup(angle int) int32 {
	return SinLookup(angle + quarterTurn)
}

// Atan2Lookup returns the angle of (y, x) in [0, TrigMaxAngle). Unlike
// Sin/Cos — evaluated many times per epoch inside the FFT's butterfly
// twiddle multiplies, where a table lookup matters — Atan2 is only
// evaluated once per minute by the orientation encoder (§4.7), so it is
// computed directly rather than through a second large lookup table.
func Atan2Lookup(y, x int32) int32 {
	rad := math.Atan2(float64(y), float64(x))
	scaled := int32(math.Round(rad / (2 * math.Pi) * TrigMaxAngle))
	return int32(normalizeAngle(int(scaled)))
}

func normalizeAngle(angle int) int {
	angle %= TrigMaxAngle
	if angle < 0 {
		angle += TrigMaxAngle
	}
	return angle
}

// EncodeAngle buckets (x, y) into one of numAngles bins by computing
// atan2(y, x), shifting negative results into [0, TrigMaxAngle), and
// rounding to the nearest bin (§4.2).
func EncodeAngle(x, y int32, numAngles int) int {
	angle := Atan2Lookup(y, x)
	binWidth := float64(TrigMaxAngle) / float64(numAngles)
	bin := int(math.Round(float64(angle)/binWidth)) % numAngles
	if bin < 0 {
		bin += numAngles
	}
	return bin
}

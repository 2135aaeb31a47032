package minute

import "testing"

func TestSummarizeAllZero(t *testing.T) {
	vmc, orientation, still := Summarize([3]int64{}, [3]uint64{})
	if vmc != 0 {
		t.Errorf("vmc = %d, want 0", vmc)
	}
	_ = orientation
	if still {
		t.Errorf("still must always be false")
	}
}

func TestSummarizeClipsToUint16Max(t *testing.T) {
	vmc, _, _ := Summarize([3]int64{}, [3]uint64{1 << 40, 1 << 40, 1 << 40})
	if vmc != 0xFFFF {
		t.Errorf("vmc = %d, want clipped to %d", vmc, 0xFFFF)
	}
}

func TestSummarizeOrientationRange(t *testing.T) {
	_, orientation, _ := Summarize([3]int64{100, -50, 900}, [3]uint64{10, 20, 30})
	if int(orientation) < 0 || int(orientation) > 255 {
		t.Errorf("orientation %d out of byte range", orientation)
	}
}

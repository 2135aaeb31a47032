package sleepstate

import "testing"

func TestHistoryScoreNotReadyUntilFull(t *testing.T) {
	var h History
	if h.Full() {
		t.Fatalf("empty history reports full")
	}
	for i := 0; i < FilterWidth-1; i++ {
		h.Push(MinuteSample{VMC: 100})
	}
	if h.Full() {
		t.Fatalf("history with %d slots reports full", FilterWidth-1)
	}
	h.Push(MinuteSample{VMC: 100})
	if !h.Full() {
		t.Fatalf("history with %d slots should report full", FilterWidth)
	}
}

func TestHistoryScoreWeighting(t *testing.T) {
	var h History
	for i := 0; i < FilterWidth; i++ {
		h.Push(MinuteSample{VMC: 1000})
	}
	// sum(weights) = 10+15+28+31+85+15+10 = 194; score = 194*1000/100 = 1940
	if got := h.Score(); got != 1940 {
		t.Fatalf("Score() = %d, want 1940", got)
	}
}

func TestNotWornPluggedInIsDefinite(t *testing.T) {
	var n NotWorn
	if !n.Update(0, 500, 10, true) {
		t.Fatalf("plugged_in minute should be not-worn")
	}
}

func TestNotWornHighVMCOverridesMaybe(t *testing.T) {
	var n NotWorn
	n.Update(0, 100, 5, false)
	if got := n.Update(60, 3000, 5, false); got {
		t.Fatalf("high VMC should override maybe-not-worn even with same orientation, got not-worn=%v", got)
	}
}

func TestNotWornRunPromotesToDefinite(t *testing.T) {
	var n NotWorn
	var status bool
	for i := 0; i < 200; i++ {
		status = n.Update(int64(i)*60, 0, 5, false)
	}
	if !status {
		t.Fatalf("a 200-minute maybe-not-worn run should cross the %d-minute threshold", notWornRunThreshold)
	}
}

func TestDetectorLowVMCProducesOneLongSleepSession(t *testing.T) {
	var d Detector
	var emitted []Session
	emit := func(s Session) { emitted = append(emitted, s) }

	const minutes = 400
	for m := 0; m < minutes; m++ {
		d.Update(int64(m)*60, 5, 0, false, false, emit)
	}
	// force close by feeding enough awake minutes
	for m := minutes; m < minutes+20; m++ {
		d.Update(int64(m)*60, 20000, 0, false, false, emit)
	}

	var finalized int
	for _, s := range emitted {
		if s.Kind == KindSleep && !s.Ongoing && !s.Delete {
			finalized++
			if s.DurationSec < sessionMinDurationM*60 {
				t.Errorf("finalized sleep session duration %ds below minimum", s.DurationSec)
			}
		}
	}
	if finalized != 1 {
		t.Fatalf("expected exactly one finalized Sleep session, got %d (events=%d)", finalized, len(emitted))
	}
}

func TestDetectorRejectsSessionWhilePluggedIn(t *testing.T) {
	var d Detector
	var emitted []Session
	emit := func(s Session) { emitted = append(emitted, s) }

	const minutes = 400
	for m := 0; m < minutes; m++ {
		d.Update(int64(m)*60, 5, 0, true, false, emit)
	}
	for _, s := range emitted {
		if s.Kind == KindSleep && !s.Ongoing && !s.Delete {
			t.Fatalf("no Sleep session should finalize while plugged in throughout")
		}
	}
}

func TestDeepSleepBuffersUntilRegistered(t *testing.T) {
	var d Deep
	d.Start()
	var emitted []Session
	emit := func(s Session) { emitted = append(emitted, s) }

	t0 := int64(0)
	for i := 0; i < 25; i++ {
		d.Continue(t0+int64(i)*60, 50, false, emit)
	}
	if len(emitted) != 0 {
		t.Fatalf("expected no emissions while ok_to_register is false, got %d", len(emitted))
	}

	d.Continue(t0+25*60, 50, true, emit)
	var sawOngoing bool
	for _, s := range emitted {
		if s.Kind == KindRestfulSleep && s.Ongoing {
			sawOngoing = true
		}
	}
	if !sawOngoing {
		t.Fatalf("expected the open deep segment emitted as ongoing once registration is allowed")
	}
}

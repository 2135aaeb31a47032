package sleepstate

// notWornVMCOverride is the VMC above which a minute is never
// considered maybe-not-worn regardless of the other signals.
const notWornVMCOverride = 2500

// notWornRunThreshold is how many consecutive maybe-not-worn minutes
// promote a run to definite not-worn status.
const notWornRunThreshold = 180

// notWornVetoOverlapMinutes is the overlap, in minutes, above which a
// not-worn candidate alone vetoes a sleep session.
const notWornVetoOverlapMinutes = 150

type notWornCandidate struct {
	start int64
	lenM  int
}

// NotWorn implements the §4.10 not-worn detector: a per-minute
// maybe/definitely classifier plus a 3-slot ring of not-worn candidate
// runs used to veto sleep sessions.
type NotWorn struct {
	havePrev        bool
	prevOrientation uint8
	prevVMC         uint16

	runLen int
	ring   [3]notWornCandidate
}

// Update classifies one minute and returns its not-worn status
// (definitely-not-worn, or a maybe-not-worn run of notWornRunThreshold
// minutes or more).
func (n *NotWorn) Update(nowUTC int64, vmc uint16, orientation uint8, pluggedIn bool) bool {
	maybe := false
	if n.havePrev {
		phi := orientation / 16
		sameOrientation := orientation == n.prevOrientation
		bothLowVMC := vmc < 4 && n.prevVMC < 4
		lyingFlat := phi == 0 || phi == 8
		maybe = sameOrientation || bothLowVMC || lyingFlat
	}
	if vmc > notWornVMCOverride {
		maybe = false
	}
	definitely := pluggedIn

	if maybe || definitely {
		if n.runLen == 0 {
			n.ring[0].start = nowUTC - 60
		}
		n.runLen++
		n.ring[0].lenM = n.runLen
	} else if n.runLen > 0 {
		n.ring[2] = n.ring[1]
		n.ring[1] = n.ring[0]
		n.ring[0] = notWornCandidate{}
		n.runLen = 0
	}

	n.prevOrientation = orientation
	n.prevVMC = vmc
	n.havePrev = true

	return definitely || n.runLen >= notWornRunThreshold
}

// DuringSession implements the §4.10 veto: a candidate overlapping
// the session by at least notWornVetoOverlapMinutes always vetoes; for
// a session being finalized (not ongoing), a candidate whose edges sit
// close to the session's own edges also vetoes.
func (n *NotWorn) DuringSession(sessionStart int64, sessionLenM int, ongoing bool) bool {
	sessionEnd := sessionStart + int64(sessionLenM)*60
	for _, c := range n.ring {
		if c.lenM == 0 {
			continue
		}
		cEnd := c.start + int64(c.lenM)*60

		overlapStart, overlapEnd := sessionStart, sessionEnd
		if c.start > overlapStart {
			overlapStart = c.start
		}
		if cEnd < overlapEnd {
			overlapEnd = cEnd
		}
		if overlapEnd > overlapStart && (overlapEnd-overlapStart)/60 >= notWornVetoOverlapMinutes {
			return true
		}

		if !ongoing {
			startTol := int64(sessionLenM/10) * 60
			endTol := int64(sessionLenM/8) * 60
			if absInt64(c.start-sessionStart) <= startTol && absInt64(cEnd-sessionEnd) <= endTol {
				return true
			}
		}
	}
	return false
}

// Reset clears all not-worn state, e.g. on a time-travel reset.
func (n *NotWorn) Reset() {
	*n = NotWorn{}
}

func absInt64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

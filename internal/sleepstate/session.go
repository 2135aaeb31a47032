package sleepstate

// Kind distinguishes the two session types this package emits; the
// engine facade maps these onto its own Activity enum (§6.1).
type Kind int

const (
	KindSleep Kind = iota
	KindRestfulSleep
)

// Session is one session-callback invocation's payload, trimmed to the
// fields Sleep/RestfulSleep actually use (§6.1 — numeric fields unused
// by these two kinds are zero by construction, so they are simply
// omitted here rather than carried as always-zero fields).
type Session struct {
	Kind        Kind
	StartUTC    int64
	DurationSec int64
	Ongoing     bool
	Delete      bool
}

// Emit delivers one session event to the caller.
type Emit func(Session)

// Package offer decides when the recurring limited-time-offer banner is
// visible. The schedule is a pure time-window computation over a single
// persisted cycle-start timestamp: each 48-hour period starts with 24 hours
// of visibility followed by 24 hours of silence, repeating until the stored
// start is superseded.
package offer

import "time"

const (
	// CyclePeriod is the full length of one banner cycle.
	CyclePeriod = 48 * time.Hour

	// ShowWindow is the visible part at the start of each cycle.
	ShowWindow = 24 * time.Hour

	// MaxCycleAge is the staleness bound: a persisted cycle start older
	// than this is treated as absent so the cycle re-seeds.
	MaxCycleAge = 30 * 24 * time.Hour
)

// phase returns the position of now inside the current cycle. The double
// modulo keeps the result in [0, CyclePeriod) even when a pathological
// future cycleStart makes the elapsed time negative.
func phase(cycleStart, now time.Time) time.Duration {
	elapsed := now.Sub(cycleStart)
	return ((elapsed % CyclePeriod) + CyclePeriod) % CyclePeriod
}

// InShowWindow reports whether the banner is visible at now. A zero
// cycleStart means no cycle has been established yet, which always shows:
// the first-run default.
func InShowWindow(cycleStart, now time.Time) bool {
	if cycleStart.IsZero() {
		return true
	}
	return phase(cycleStart, now) < ShowWindow
}

// ExpiresAt returns the end of the current visible window. ok is false when
// no cycle is established or the banner is currently hidden.
func ExpiresAt(cycleStart, now time.Time) (time.Time, bool) {
	if cycleStart.IsZero() {
		return time.Time{}, false
	}
	p := phase(cycleStart, now)
	if p >= ShowWindow {
		return time.Time{}, false
	}
	return now.Add(ShowWindow - p), true
}

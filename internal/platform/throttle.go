package platform

import "time"

// Throttle admits at most one action per Interval. The zero value admits
// every call.
type Throttle struct {
	Interval time.Duration

	deadline time.Time
}

// Due reports whether now is strictly past the deadline. When it is, the
// deadline moves to now + Interval.
func (t *Throttle) Due(now time.Time) bool {
	if !t.deadline.IsZero() && !now.After(t.deadline) {
		return false
	}
	t.deadline = now.Add(t.Interval)
	return true
}

// Deadline returns the earliest time the next call is admitted.
func (t *Throttle) Deadline() time.Time {
	return t.deadline
}

// Reset makes the next call due.
func (t *Throttle) Reset() {
	t.deadline = time.Time{}
}

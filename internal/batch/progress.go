package batch

import "time"

const timeRounding = time.Second

// etaTracker estimates remaining batch time from the average duration of the
// tracks processed so far.
type etaTracker struct {
	start     time.Time
	total     int
	processed int

	now func() time.Time
}

func newETATracker(total int) *etaTracker {
	tracker := &etaTracker{total: total, now: time.Now}
	tracker.start = tracker.now()
	return tracker
}

// Advance records one completed track and returns the estimated time left.
func (e *etaTracker) Advance() time.Duration {
	e.processed++
	elapsed := e.now().Sub(e.start)
	average := elapsed / time.Duration(e.processed)
	return average * time.Duration(e.total-e.processed)
}

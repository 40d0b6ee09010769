package master

import (
	"sync"
	"time"
)

// Timer is a one-shot, cancelable callback scheduled at now+d. It
// wraps time.AfterFunc rather than a thread park, so the deadline wait
// for peer acknowledgments never blocks a goroutine.
//
// There is no ecosystem scheduling library in play here: the reference
// architecture's own housekeeper (fs/health, cluster/lom_cache_hk.go) is
// tuned for periodic background sweeps, not a single bounded-wait
// deadline keyed to one in-flight request, so a bespoke one-shot wrapper
// around the standard library's timer is the better fit.
type Timer struct {
	mtx      sync.Mutex
	timer    *time.Timer
	canceled bool
}

// AfterFunc schedules f to run after d elapses, returning a Timer that
// can cancel it. f runs on the standard library's own timer goroutine
// pool; callbacks must be non-blocking or dispatch onward.
func AfterFunc(d time.Duration, f func()) *Timer {
	t := &Timer{}
	t.timer = time.AfterFunc(d, f)
	return t
}

// Cancel stops the timer if it has not already fired. Returns false if
// the callback has already fired or Cancel was already called.
func (t *Timer) Cancel() bool {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	if t.canceled {
		return false
	}
	t.canceled = true
	return t.timer.Stop()
}

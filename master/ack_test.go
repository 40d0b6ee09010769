package master

import (
	"sync"
	"testing"
	"time"
)

func TestAckTrackerFiresOnceAllAcksReceived(t *testing.T) {
	settlements := make(chan AckSettlement, 1)
	tracker := NewAckTracker("logs", 2, func(s AckSettlement, cause error) {
		settlements <- s
	})
	tracker.Arm(time.Second)

	tracker.OnNodeIndexCreated("logs", "peer-1")
	tracker.OnNodeIndexCreated("logs", "peer-2")

	select {
	case s := <-settlements:
		if s != SettledAcknowledged {
			t.Errorf("settlement = %v, want SettledAcknowledged", s)
		}
	case <-time.After(time.Second):
		t.Fatal("tracker never settled")
	}
}

func TestAckTrackerIgnoresOtherIndexNotifications(t *testing.T) {
	settlements := make(chan AckSettlement, 1)
	tracker := NewAckTracker("logs", 1, func(s AckSettlement, cause error) {
		settlements <- s
	})

	tracker.OnNodeIndexCreated("other-index", "peer-1")
	select {
	case <-settlements:
		t.Fatal("tracker settled on a notification for a different index")
	case <-time.After(50 * time.Millisecond):
	}

	tracker.OnNodeIndexCreated("logs", "peer-1")
	select {
	case <-settlements:
	case <-time.After(time.Second):
		t.Fatal("tracker never settled on the matching notification")
	}
}

func TestAckTrackerTimeoutSettlesExactlyOnce(t *testing.T) {
	var calls int32
	var mtx sync.Mutex
	done := make(chan struct{})

	tracker := NewAckTracker("logs", 1, func(s AckSettlement, cause error) {
		mtx.Lock()
		calls++
		mtx.Unlock()
		close(done)
	})
	tracker.Arm(10 * time.Millisecond)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timer never fired")
	}

	// A late notification after timeout settlement must not fire again.
	tracker.OnNodeIndexCreated("logs", "peer-1")
	time.Sleep(20 * time.Millisecond)

	mtx.Lock()
	defer mtx.Unlock()
	if calls != 1 {
		t.Fatalf("onSettle called %d times, want exactly 1", calls)
	}
}

func TestAckTrackerRejectionSettles(t *testing.T) {
	settlements := make(chan AckSettlement, 1)
	tracker := NewAckTracker("logs", 2, func(s AckSettlement, cause error) {
		settlements <- s
	})
	tracker.Arm(time.Second)

	tracker.OnNodeIndexCreateRejected("logs", "peer-1", nil)

	select {
	case s := <-settlements:
		if s != SettledRejected {
			t.Errorf("settlement = %v, want SettledRejected", s)
		}
	case <-time.After(time.Second):
		t.Fatal("tracker never settled on rejection")
	}

	// A subsequent ack must not re-fire the callback.
	tracker.OnNodeIndexCreated("logs", "peer-2")
	select {
	case <-settlements:
		t.Fatal("tracker settled twice")
	case <-time.After(50 * time.Millisecond):
	}
}

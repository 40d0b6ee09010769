package master

import (
	"sync"
	"time"

	"go.uber.org/atomic"
)

// AckSettlement describes how an AckTracker settled.
type AckSettlement int

const (
	SettledAcknowledged AckSettlement = iota
	SettledTimeout
	SettledRejected
)

// AckTracker is the peer acknowledgment tracker: constructed with an
// expected count of non-master peers, it counts down on every matching
// notification and fires its settlement callback exactly once — on
// reaching zero, on the timer firing first, or on a peer's explicit
// rejection, whichever happens first. Grounded on the reference
// architecture's txnBase fire/fired single-bit latch (ais/transaction.go),
// generalized from an error-carrying latch to a three-way settlement
// since this core distinguishes success, timeout, and explicit rejection.
//
// The timer itself is owned here rather than by the coordinator, per the
// design note that "the timer holds no mutable state beyond a reference
// to the tracker" — centralizing the latch and the timer in one place
// means the success path and the timeout path can never both run.
type AckTracker struct {
	indexName string
	remaining atomic.Int32
	settled   atomic.Bool
	onSettle  func(settlement AckSettlement, cause error)

	mtx   sync.Mutex
	timer *Timer
}

// NewAckTracker constructs a tracker for indexName expecting expected
// peer acknowledgments. If expected <= 0, the tracker is already
// logically settled at construction; callers should settle
// via the success path immediately rather than arming a timer.
func NewAckTracker(indexName string, expected int, onSettle func(settlement AckSettlement, cause error)) *AckTracker {
	t := &AckTracker{indexName: indexName, onSettle: onSettle}
	t.remaining.Store(int32(expected))
	return t
}

func (t *AckTracker) IndexName() string { return t.indexName }

// Arm schedules the timeout settlement after d. Must be called at most
// once. A call after the tracker has already settled is a no-op.
func (t *AckTracker) Arm(d time.Duration) {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	if t.settled.Load() {
		return
	}
	t.timer = AfterFunc(d, func() { t.fire(SettledTimeout, nil) })
}

// OnNodeIndexCreated implements NodeIndexCreatedListener.
func (t *AckTracker) OnNodeIndexCreated(indexName, nodeID string) {
	if indexName != t.indexName {
		return
	}
	if t.remaining.Dec() == 0 {
		t.fire(SettledAcknowledged, nil)
	}
}

// OnNodeIndexCreateRejected implements NodeIndexCreateRejectedListener.
func (t *AckTracker) OnNodeIndexCreateRejected(indexName, nodeID string, cause error) {
	if indexName != t.indexName {
		return
	}
	t.fire(SettledRejected, cause)
}

func (t *AckTracker) fire(settlement AckSettlement, cause error) {
	if !t.settled.CAS(false, true) {
		return
	}
	ackSettlements.WithLabelValues(settlementLabel(settlement)).Inc()
	t.mtx.Lock()
	timer := t.timer
	t.mtx.Unlock()
	if timer != nil {
		timer.Cancel()
	}
	if t.onSettle != nil {
		t.onSettle(settlement, cause)
	}
}

func (t *AckTracker) Settled() bool { return t.settled.Load() }

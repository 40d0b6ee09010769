package master

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/atomic"
)

// Response is returned to a CreateIndexListener on settlement.
type Response struct {
	Acknowledged bool
}

// CreateIndexListener is the caller-supplied callback pair for one
// create-index request. Its lifecycle is [submit, first-settled]: exactly
// one of OnResponse or OnFailure fires, exactly once. Implementations are
// invoked from the update queue's worker goroutine (for pre-flight
// failures, the final routing commit, and a rollback); a timeout or ack
// settlement only submits the follow-up task, so they must not block.
type CreateIndexListener interface {
	OnResponse(resp Response)
	OnFailure(err error)
}

// settledListener wraps a caller's CreateIndexListener with the
// exactly-once latch independent of whichever path (pre-flight
// rejection, ack tracker, or timeout) triggers it.
type settledListener struct {
	inner   CreateIndexListener
	settled atomic.Bool
}

func newSettledListener(inner CreateIndexListener) *settledListener {
	return &settledListener{inner: inner}
}

func (l *settledListener) fireResponse(resp Response) {
	if !l.settled.CAS(false, true) {
		return
	}
	l.inner.OnResponse(resp)
}

func (l *settledListener) fireFailure(err error) {
	if !l.settled.CAS(false, true) {
		return
	}
	l.inner.OnFailure(err)
}

// instrumentedListener wraps a CreateIndexListener to count its terminal
// outcome under a given operation label, without altering dispatch.
type instrumentedListener struct {
	op    string
	inner CreateIndexListener
}

func instrumentListener(op string, inner CreateIndexListener) CreateIndexListener {
	return &instrumentedListener{op: op, inner: inner}
}

func (l *instrumentedListener) OnResponse(resp Response) {
	outcome := "acknowledged"
	if !resp.Acknowledged {
		outcome = "timed_out"
	}
	l.counter(outcome).Inc()
	l.inner.OnResponse(resp)
}

func (l *instrumentedListener) OnFailure(err error) {
	l.counter("failed").Inc()
	l.inner.OnFailure(err)
}

func (l *instrumentedListener) counter(outcome string) prometheus.Counter {
	switch l.op {
	case "destroy_index":
		return destroyIndexRequests.WithLabelValues(outcome)
	default:
		return createIndexRequests.WithLabelValues(outcome)
	}
}

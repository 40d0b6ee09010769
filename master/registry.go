package master

import "sync"

// NodeIndexCreatedListener receives every peer "index created"
// notification delivered through the registry. Filtering by index
// name is the listener's own responsibility; invocation may
// be concurrent and listeners must be safe for that.
type NodeIndexCreatedListener interface {
	OnNodeIndexCreated(indexName, nodeID string)
}

// NodeIndexCreateRejectedListener receives a peer's explicit refusal of
// an index-create commit, as opposed to silence. Modeled on the
// reference architecture's ActCommit rejection path in ais/prxtxn.go,
// which distinguishes an active abort from a mere timeout.
type NodeIndexCreateRejectedListener interface {
	OnNodeIndexCreateRejected(indexName, nodeID string, cause error)
}

// ListenerRegistry is the process-wide fan-out hub peers notify through
// the transport layer. Grounded on the reference architecture's
// cluster.SmapListeners pattern: a mutex-guarded set with independent
// add/remove/iterate, no static global state — the registry is
// constructed once and injected into both the transport handler and the
// coordinator.
type ListenerRegistry struct {
	mtx       sync.RWMutex
	listeners map[NodeIndexCreatedListener]struct{}
	rejectors map[NodeIndexCreateRejectedListener]struct{}
}

func NewListenerRegistry() *ListenerRegistry {
	return &ListenerRegistry{
		listeners: make(map[NodeIndexCreatedListener]struct{}),
		rejectors: make(map[NodeIndexCreateRejectedListener]struct{}),
	}
}

func (r *ListenerRegistry) Add(l NodeIndexCreatedListener) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.listeners[l] = struct{}{}
}

func (r *ListenerRegistry) Remove(l NodeIndexCreatedListener) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	delete(r.listeners, l)
}

// AddRejectionListener registers l to receive explicit peer-commit
// rejections. A tracker that also implements
// NodeIndexCreateRejectedListener is typically registered on both hubs.
func (r *ListenerRegistry) AddRejectionListener(l NodeIndexCreateRejectedListener) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.rejectors[l] = struct{}{}
}

func (r *ListenerRegistry) RemoveRejectionListener(l NodeIndexCreateRejectedListener) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	delete(r.rejectors, l)
}

// NotifyRejected is invoked by the transport layer when a peer actively
// refuses an index-create commit rather than staying silent.
func (r *ListenerRegistry) NotifyRejected(indexName, nodeID string, cause error) {
	r.mtx.RLock()
	targets := make([]NodeIndexCreateRejectedListener, 0, len(r.rejectors))
	for l := range r.rejectors {
		targets = append(targets, l)
	}
	r.mtx.RUnlock()

	for _, l := range targets {
		l.OnNodeIndexCreateRejected(indexName, nodeID, cause)
	}
}

// Notify is invoked by the transport layer whenever a peer reports that
// it has materialized indexName locally. Every registered listener is
// called; each call runs synchronously on the caller's goroutine, so
// transport should not hold a lock while invoking this.
func (r *ListenerRegistry) Notify(indexName, nodeID string) {
	r.mtx.RLock()
	targets := make([]NodeIndexCreatedListener, 0, len(r.listeners))
	for l := range r.listeners {
		targets = append(targets, l)
	}
	r.mtx.RUnlock()

	for _, l := range targets {
		l.OnNodeIndexCreated(indexName, nodeID)
	}
}

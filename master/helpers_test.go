package master_test

import (
	"time"

	"github.com/coreindex/idxmaster/cluster"
	"github.com/coreindex/idxmaster/master"
	"github.com/coreindex/idxmaster/store"
)

// recordingListener captures exactly one settlement for inspection by the
// tests below; it relies on the buffered channels never blocking, which
// only holds if the coordinator invokes the listener exactly once.
type recordingListener struct {
	responses chan master.Response
	failures  chan error
}

func newRecordingListener() *recordingListener {
	return &recordingListener{
		responses: make(chan master.Response, 1),
		failures:  make(chan error, 1),
	}
}

func (l *recordingListener) OnResponse(resp master.Response) { l.responses <- resp }
func (l *recordingListener) OnFailure(err error)             { l.failures <- err }

func (l *recordingListener) waitResponse(timeout time.Duration) (master.Response, bool) {
	select {
	case resp := <-l.responses:
		return resp, true
	case <-time.After(timeout):
		return master.Response{}, false
	}
}

func (l *recordingListener) waitFailure(timeout time.Duration) (error, bool) {
	select {
	case err := <-l.failures:
		return err, true
	case <-time.After(timeout):
		return nil, false
	}
}

// harness wires a real Queue, ListenerRegistry, in-memory LocalIndexStore,
// and round-robin RoutingStrategy together — the same collaborators
// cmd/idxmasterd wires in production, so these specs exercise the actual
// coordination logic rather than a mocked-out stand-in.
type harness struct {
	queue       *master.Queue
	registry    *master.ListenerRegistry
	coordinator *master.Coordinator
	localStore  *store.MemLocalIndexStore
}

func newHarness(nodes cluster.Nodes, mappingRoot string) *harness {
	queue := master.NewQueue(cluster.NewState(nodes), nil)
	registry := master.NewListenerRegistry()
	localStore := store.NewMemLocalIndexStore()
	routing := store.NewRoundRobinRoutingStrategy()
	coordinator := master.NewCoordinator(queue, registry, localStore, routing, mappingRoot)
	return &harness{queue: queue, registry: registry, coordinator: coordinator, localStore: localStore}
}

func singleNode() cluster.Nodes {
	return cluster.NewNodes(cluster.NewNode("master", "local"))
}

func threeNodeCluster() (cluster.Nodes, *cluster.Node, *cluster.Node) {
	local := cluster.NewNode("master", "local")
	p1 := cluster.NewNode("peer-1", "p1")
	p2 := cluster.NewNode("peer-2", "p2")
	return cluster.NewNodes(local, p1, p2), p1, p2
}

package master

import (
	"sync"
	"testing"
)

type capturingListener struct {
	mtx   sync.Mutex
	calls []string
}

func (l *capturingListener) OnNodeIndexCreated(indexName, nodeID string) {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	l.calls = append(l.calls, indexName+"/"+nodeID)
}

func TestListenerRegistryFansOutToAllListeners(t *testing.T) {
	reg := NewListenerRegistry()
	a := &capturingListener{}
	b := &capturingListener{}
	reg.Add(a)
	reg.Add(b)

	reg.Notify("logs", "peer-1")

	for _, l := range []*capturingListener{a, b} {
		if len(l.calls) != 1 || l.calls[0] != "logs/peer-1" {
			t.Errorf("calls = %v, want [\"logs/peer-1\"]", l.calls)
		}
	}
}

func TestListenerRegistryRemove(t *testing.T) {
	reg := NewListenerRegistry()
	l := &capturingListener{}
	reg.Add(l)
	reg.Remove(l)

	reg.Notify("logs", "peer-1")

	if len(l.calls) != 0 {
		t.Errorf("removed listener was still notified: %v", l.calls)
	}
}

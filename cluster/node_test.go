package cluster

import "testing"

func TestNodesPeerCountExcludesLocal(t *testing.T) {
	local := NewNode("master", "local")
	p1 := NewNode("peer-1", "p1")
	p2 := NewNode("peer-2", "p2")
	nodes := NewNodes(local, p1, p2)

	if got := nodes.PeerCount(); got != 2 {
		t.Errorf("PeerCount() = %d, want 2", got)
	}
	if got := len(nodes.Peers()); got != 2 {
		t.Errorf("len(Peers()) = %d, want 2", got)
	}
	for _, p := range nodes.Peers() {
		if p.ID == local.ID {
			t.Errorf("Peers() included the local node %s", local.ID)
		}
	}
}

func TestNodesPeerCountSingleNode(t *testing.T) {
	nodes := NewNodes(NewNode("master", "local"))
	if got := nodes.PeerCount(); got != 0 {
		t.Errorf("PeerCount() = %d, want 0 for a single-node cluster", got)
	}
}

func TestNodeDigestDeterministic(t *testing.T) {
	a := NewNode("master", "local")
	b := NewNode("master", "local")
	if a.Digest() != b.Digest() {
		t.Error("two nodes with the same ID produced different digests")
	}
}

func TestNodeDigestDiffersByID(t *testing.T) {
	a := NewNode("master", "local")
	b := NewNode("other", "local")
	if a.Digest() == b.Digest() {
		t.Error("nodes with different IDs produced the same digest")
	}
}

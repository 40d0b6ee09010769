// Package cluster holds the authoritative ClusterState data model: the
// versioned, immutable snapshot of live nodes, index metadata, and shard
// routing the master mutates through the update queue (master.Queue).
/*
 * Copyright (c) 2018-2020, NVIDIA CORPORATION. All rights reserved.
 */
package cluster

import (
	"github.com/OneOfOne/xxhash"
)

// mlcg32 seeds the node digest hash, matching the reference
// architecture's cmn.MLCG32 constant used for the same purpose.
const mlcg32 = 0x9e3779b9

// Node is a cluster member — the master itself, or a peer. Only the
// identity and reachability this core actually consumes are modeled;
// everything else (capacity, resource stats, discovery metadata) belongs
// to collaborators out of this core's scope.
type Node struct {
	ID      string `json:"id"`
	Address string `json:"address"` // used by transport to reach the peer
	digest  uint64
}

func NewNode(id, address string) *Node {
	n := &Node{ID: id, Address: address}
	n.Digest()
	return n
}

func (n *Node) Digest() uint64 {
	if n.digest == 0 {
		n.digest = xxhash.ChecksumString64S(n.ID, mlcg32)
	}
	return n.digest
}

func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	return "n[" + n.ID + "]"
}

func (n *Node) Equals(other *Node) bool {
	if n == nil || other == nil {
		return false
	}
	return n.ID == other.ID && n.Address == other.Address
}

func (n *Node) Clone() *Node {
	clone := *n
	return &clone
}

// NodeMap is a set of Nodes keyed by ID.
type NodeMap map[string]*Node

func (m NodeMap) Add(n *Node) { m[n.ID] = n }

func (m NodeMap) Contains(id string) bool { _, ok := m[id]; return ok }

func (m NodeMap) Clone() NodeMap {
	clone := make(NodeMap, len(m))
	for id, n := range m {
		clone[id] = n
	}
	return clone
}

// Nodes is the live-membership view of the cluster: the full node set plus
// which one is local (the master itself). The expected count for the
// peer acknowledgment tracker is len(All)-1 when Local is a member of
// All.
type Nodes struct {
	All     NodeMap `json:"all"`
	LocalID string  `json:"local_id"`
}

func NewNodes(local *Node, peers ...*Node) Nodes {
	all := make(NodeMap, len(peers)+1)
	all.Add(local)
	for _, p := range peers {
		all.Add(p)
	}
	return Nodes{All: all, LocalID: local.ID}
}

func (n Nodes) Local() *Node { return n.All[n.LocalID] }

// PeerCount returns the number of nodes other than the local node — the
// expected count the ack tracker is constructed with.
func (n Nodes) PeerCount() int {
	count := len(n.All)
	if _, ok := n.All[n.LocalID]; ok {
		count--
	}
	return count
}

// Peers returns every node other than the local one.
func (n Nodes) Peers() []*Node {
	peers := make([]*Node, 0, n.PeerCount())
	for id, node := range n.All {
		if id == n.LocalID {
			continue
		}
		peers = append(peers, node)
	}
	return peers
}

func (n Nodes) Clone() Nodes {
	return Nodes{All: n.All.Clone(), LocalID: n.LocalID}
}

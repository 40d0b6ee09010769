package store

import (
	"sort"

	"github.com/coreindex/idxmaster/cluster"
)

// RoundRobinRoutingStrategy assigns every unassigned shard copy to a live
// node in round-robin order, keyed off each node's digest so placement is
// deterministic across a snapshot rather than dependent on Go map
// iteration order — the same determinism property the reference
// architecture gets from sorting targets by digest before a rebalance
// pass. It never moves an already-assigned copy; it only fills in
// PhaseUnassigned ones by assigning them to a live node.
type RoundRobinRoutingStrategy struct{}

func NewRoundRobinRoutingStrategy() *RoundRobinRoutingStrategy {
	return &RoundRobinRoutingStrategy{}
}

func (RoundRobinRoutingStrategy) Reroute(state *cluster.State) *cluster.RoutingTable {
	nodes := sortedNodes(state.Nodes)
	next := state.Routing.Clone()
	if len(nodes) == 0 {
		return next
	}

	cursor := 0
	pick := func() string {
		n := nodes[cursor%len(nodes)]
		cursor++
		return n.ID
	}

	for name := range state.Meta.Indices {
		irt, ok := next.Get(name)
		if !ok {
			continue
		}
		shards := make([]cluster.Shard, len(irt.Shards))
		copy(shards, irt.Shards)
		for i, shard := range shards {
			if shard.Primary.Phase == cluster.PhaseUnassigned {
				shard.Primary.Node = pick()
				shard.Primary.Phase = cluster.PhaseInitializing
			}
			replicas := make([]cluster.ShardCopy, len(shard.Replica))
			copy(replicas, shard.Replica)
			for j, rep := range replicas {
				if rep.Phase == cluster.PhaseUnassigned {
					rep.Node = pick()
					rep.Phase = cluster.PhaseInitializing
				}
				replicas[j] = rep
			}
			shard.Replica = replicas
			shards[i] = shard
		}
		next.Set(&cluster.IndexRoutingTable{Index: name, Shards: shards})
	}
	return next
}

func sortedNodes(nodes cluster.Nodes) []*cluster.Node {
	all := make([]*cluster.Node, 0, len(nodes.All))
	for _, n := range nodes.All {
		all = append(all, n)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Digest() < all[j].Digest() })
	return all
}

package store

import (
	"testing"

	"github.com/coreindex/idxmaster/cluster"
	"github.com/coreindex/idxmaster/cmn"
)

func TestRoundRobinRoutingStrategyAssignsAllCopies(t *testing.T) {
	local := cluster.NewNode("master", "local")
	p1 := cluster.NewNode("peer-1", "p1")
	nodes := cluster.NewNodes(local, p1)

	state := cluster.NewState(nodes)
	imd := cluster.NewIndexMetaData("logs", cmn.NewSettings(nil), cluster.NewMappings())
	state.AddIndex(imd)
	state.Routing.Set(cluster.NewEmptyIndexRoutingTable(imd, 2, 1))

	strategy := NewRoundRobinRoutingStrategy()
	result := strategy.Reroute(state)

	irt, ok := result.Get("logs")
	if !ok {
		t.Fatal("Reroute() result missing the index")
	}
	for _, shard := range irt.Shards {
		if shard.Primary.Node == "" {
			t.Errorf("shard %d primary left unassigned", shard.ID)
		}
		if shard.Primary.Phase != cluster.PhaseInitializing {
			t.Errorf("shard %d primary phase = %v, want Initializing", shard.ID, shard.Primary.Phase)
		}
		for _, rep := range shard.Replica {
			if rep.Node == "" {
				t.Errorf("shard %d replica left unassigned", shard.ID)
			}
		}
	}
}

func TestRoundRobinRoutingStrategyNeverMovesAssignedCopy(t *testing.T) {
	local := cluster.NewNode("master", "local")
	nodes := cluster.NewNodes(local)

	state := cluster.NewState(nodes)
	imd := cluster.NewIndexMetaData("logs", cmn.NewSettings(nil), cluster.NewMappings())
	state.AddIndex(imd)
	irt := cluster.NewEmptyIndexRoutingTable(imd, 1, 0)
	state.Routing.Set(irt)

	strategy := NewRoundRobinRoutingStrategy()
	once := strategy.Reroute(state)
	state.Routing = once

	twice := strategy.Reroute(state)
	onceIrt, _ := once.Get("logs")
	twiceIrt, _ := twice.Get("logs")

	if onceIrt.Shards[0].Primary.Node != twiceIrt.Shards[0].Primary.Node {
		t.Error("a second Reroute() pass moved an already-assigned primary")
	}
}

package cluster

// ShardRole distinguishes a primary shard copy from a replica (GLOSSARY).
type ShardRole int

const (
	Primary ShardRole = iota
	Replica
)

func (r ShardRole) String() string {
	if r == Primary {
		return "primary"
	}
	return "replica"
}

// ShardPhase is a shard copy's lifecycle phase.
type ShardPhase int

const (
	PhaseUnassigned ShardPhase = iota
	PhaseInitializing
	PhaseStarted
)

func (p ShardPhase) String() string {
	switch p {
	case PhaseInitializing:
		return "INITIALIZING"
	case PhaseStarted:
		return "STARTED"
	default:
		return "UNASSIGNED"
	}
}

// ShardCopy is a single primary or replica placement.
type ShardCopy struct {
	Role  ShardRole  `json:"role"`
	Node  string     `json:"node"` // node ID hosting this copy, "" if unassigned
	Phase ShardPhase `json:"phase"`
}

// Shard is one partition of an index: one primary copy plus zero or more
// replica copies (GLOSSARY).
type Shard struct {
	ID      int         `json:"id"`
	Primary ShardCopy   `json:"primary"`
	Replica []ShardCopy `json:"replicas"`
}

// IndexRoutingTable is the per-index portion of RoutingTable: where every
// shard of the index currently lives.
type IndexRoutingTable struct {
	Index  string  `json:"index"`
	Shards []Shard `json:"shards"`
}

// NewEmptyIndexRoutingTable builds the unrouted placeholder the
// coordinator's second task starts from: one Shard entry per
// primary the committed IndexMetaData calls for, every copy unassigned.
func NewEmptyIndexRoutingTable(imd *IndexMetaData, numShards, numReplicas int64) *IndexRoutingTable {
	shards := make([]Shard, numShards)
	for i := range shards {
		replicas := make([]ShardCopy, numReplicas)
		for j := range replicas {
			replicas[j] = ShardCopy{Role: Replica, Phase: PhaseUnassigned}
		}
		shards[i] = Shard{
			ID:      i,
			Primary: ShardCopy{Role: Primary, Phase: PhaseUnassigned},
			Replica: replicas,
		}
	}
	return &IndexRoutingTable{Index: imd.Name, Shards: shards}
}

// RoutingTable is the shard-placement portion of ClusterState, keyed by
// index name.
type RoutingTable struct {
	Version int64                         `json:"version"`
	Indices map[string]*IndexRoutingTable `json:"indices"`
}

func NewRoutingTable() *RoutingTable {
	return &RoutingTable{Indices: make(map[string]*IndexRoutingTable)}
}

func (rt *RoutingTable) Get(name string) (*IndexRoutingTable, bool) {
	irt, ok := rt.Indices[name]
	return irt, ok
}

func (rt *RoutingTable) Contains(name string) bool {
	_, ok := rt.Indices[name]
	return ok
}

func (rt *RoutingTable) set(irt *IndexRoutingTable) { rt.Indices[irt.Index] = irt }

// Set installs irt for its index. Exported for use by store.RoutingStrategy
// implementations building the next committed RoutingTable.
func (rt *RoutingTable) Set(irt *IndexRoutingTable) { rt.set(irt) }

func (rt *RoutingTable) del(name string) { delete(rt.Indices, name) }

// clone copies every existing index's routing into a new table — the
// first step of the coordinator's post-acknowledgment routing commit:
// rebuild the routing table by copying every existing index's routing.
// Clone is the exported form of clone, for store.RoutingStrategy
// implementations that need to build their result from the current table.
func (rt *RoutingTable) Clone() *RoutingTable { return rt.clone() }

func (rt *RoutingTable) clone() *RoutingTable {
	clone := &RoutingTable{
		Version: rt.Version,
		Indices: make(map[string]*IndexRoutingTable, len(rt.Indices)+1),
	}
	for name, irt := range rt.Indices {
		clone.Indices[name] = irt
	}
	return clone
}

func (rt *RoutingTable) inc() { rt.Version++ }

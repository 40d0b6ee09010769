package cluster

// State is a versioned, immutable cluster-state snapshot: Nodes, MetaData,
// and RoutingTable together. Every mutation inside the update
// queue produces a new State; callers holding a prior State never observe
// a partially-mutated one.
//
// Invariant: a snapshot may briefly contain metadata for an
// index whose routing is absent — "metadata-committed, unrouted" — between
// the coordinator's first and second task. RoutingTable.Contains(name)
// reports that state accurately.
type State struct {
	Version int64
	Nodes   Nodes
	Meta    *MetaData
	Routing *RoutingTable
}

func NewState(nodes Nodes) *State {
	return &State{
		Nodes:   nodes,
		Meta:    NewMetaData(),
		Routing: NewRoutingTable(),
	}
}

// Clone produces an independent snapshot a task may mutate in place before
// returning it as the new state. Nodes are cloned defensively; Meta and
// Routing use their own shallow-clone that shares unchanged *IndexMetaData
// / *IndexRoutingTable entries.
func (s *State) Clone() *State {
	return &State{
		Version: s.Version,
		Nodes:   s.Nodes.Clone(),
		Meta:    s.Meta.clone(),
		Routing: s.Routing.clone(),
	}
}

// AddIndex inserts imd into a cloned Meta, bumping MetaData.Version. It is
// the mutation the coordinator's metadata-commit task performs. The
// caller is expected to operate on a State already obtained
// via Clone.
func (s *State) AddIndex(imd *IndexMetaData) bool {
	ok := s.Meta.add(imd)
	if ok {
		s.Meta.inc()
	}
	return ok
}

// RemoveIndex removes name from Meta and, if present, from Routing —
// DestroyIndex's single queue task.
func (s *State) RemoveIndex(name string) bool {
	ok := s.Meta.del(name)
	if ok {
		s.Meta.inc()
	}
	if s.Routing.Contains(name) {
		s.Routing.del(name)
		s.Routing.inc()
	}
	return ok
}

// SetRouting installs irt for its index, bumping RoutingTable.Version —
// the coordinator's routing-commit task.
func (s *State) SetRouting(irt *IndexRoutingTable) {
	s.Routing.set(irt)
	s.Routing.inc()
}

// Equal reports whether two states carry the same metadata version and
// routing version — sufficient for the "unchanged" check a rejected
// request relies on: it leaves the state value-equal to what it was
// before submission.
func (s *State) Equal(other *State) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.Meta.Version == other.Meta.Version && s.Routing.Version == other.Routing.Version
}

// Package store defines the external collaborators the master core
// delegates to: local index creation/deletion, mapping-type registration,
// and shard-placement strategy. The master never touches a filesystem or
// search engine directly — it drives these interfaces and commits the
// cluster state once they and the peers agree.
package store

import "github.com/coreindex/idxmaster/cluster"

// MapperService accumulates (type, canonical_source) pairs for a single
// index as the coordinator registers the assembled mappings, then exposes
// them back for inclusion in the committed IndexMetaData.
type MapperService interface {
	// Add registers typ with its canonical source. A later Add for the
	// same typ overrides the earlier one.
	Add(typ, source string) error
	// Mappings returns every (type, source) pair registered so far.
	Mappings() cluster.Mappings
}

// IndexService is the local, per-node handle to an index's on-node
// resources — created during the coordinator's local-apply step before
// metadata is ever committed cluster-wide.
type IndexService interface {
	MapperService() MapperService
}

// LocalIndexStore creates and destroys the local, per-node resources an
// index needs, independent of cluster metadata. Grounded on the reference
// architecture's local bucket/bucket-metadata split: cluster metadata
// commit and local resource creation are deliberately separate steps so a
// later rejection can undo the local side without ever having published
// metadata.
type LocalIndexStore interface {
	// Create allocates local resources for name on behalf of localNodeID.
	// Called once per index, before any cluster-state mutation. Returns
	// the IndexService the coordinator then populates with mappings.
	Create(name string, settings map[string]string, localNodeID string) (IndexService, error)
	// Delete releases local resources for name — used both by DestroyIndex
	// and by CreateIndex rollback when the coordinator is rejected after
	// already having created them locally.
	Delete(name string) error
	// IndexServiceSafe returns the existing IndexService for name, or
	// false if none exists locally.
	IndexServiceSafe(name string) (IndexService, bool)
}

// RoutingStrategy computes the next committed RoutingTable from the
// current cluster state: for every index lacking full shard assignment,
// assign unassigned shard copies to live nodes. Implementations are free to use
// any placement algorithm; the core only requires it be pure relative to
// its input snapshot.
type RoutingStrategy interface {
	Reroute(state *cluster.State) *cluster.RoutingTable
}

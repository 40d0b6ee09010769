package master

import (
	"strconv"
	"time"

	"github.com/golang/glog"

	"github.com/coreindex/idxmaster/cluster"
	"github.com/coreindex/idxmaster/cmn"
	"github.com/coreindex/idxmaster/cmn/debug"
	"github.com/coreindex/idxmaster/store"
)

// Coordinator is the create-index coordinator: it owns the single
// entry point client requests go through, and orchestrates validation,
// mapping assembly, local materialization, metadata commit, peer wait,
// and routing commit across the update queue, the ack tracker, and the
// listener registry. Grounded on the reference architecture's
// p.createBucket / p.destroyBucket in ais/prxtxn.go, reshaped from a
// synchronous bcast-then-wait call into queue tasks plus callbacks so the
// entry point never blocks.
type Coordinator struct {
	queue       *Queue
	registry    *ListenerRegistry
	localStore  store.LocalIndexStore
	routing     store.RoutingStrategy
	mappingRoot string
}

func NewCoordinator(queue *Queue, registry *ListenerRegistry, localStore store.LocalIndexStore, routing store.RoutingStrategy, mappingRoot string) *Coordinator {
	return &Coordinator{
		queue:       queue,
		registry:    registry,
		localStore:  localStore,
		routing:     routing,
		mappingRoot: mappingRoot,
	}
}

// CreateIndex is the non-blocking entry point: it submits one
// task to the queue and returns immediately. userListener is notified
// asynchronously, exactly once, with either a Response or an error.
func (c *Coordinator) CreateIndex(req *CreateIndexRequest, userListener CreateIndexListener) {
	listener := newSettledListener(instrumentListener("create_index", userListener))
	c.queue.Submit(Task{
		ID:          req.ID,
		Description: "create-index:" + req.Index,
		Execute: func(state *cluster.State) *cluster.State {
			return c.createIndexTask(state, req, listener)
		},
	})
}

func (c *Coordinator) createIndexTask(state *cluster.State, req *CreateIndexRequest, listener *settledListener) *cluster.State {
	name := req.Index

	// 1. Pre-flight validation, fixed order, first failure wins.
	if state.Meta.Contains(name) || state.Routing.Contains(name) {
		listener.fireFailure(cmn.NewErrIndexAlreadyExists(name))
		return state
	}
	if err := ValidateName(name); err != nil {
		listener.fireFailure(err)
		return state
	}
	if state.Meta.HasAlias(name) {
		listener.fireFailure(cmn.NewErrInvalidIndexName(name, cmn.NameCollidesWithAlias))
		return state
	}

	// 2. Mapping assembly: filesystem layers, then the request's own
	// mappings overlaid last (highest precedence).
	assembled := LoadMappings(c.mappingRoot, name).Overlay(req.Mappings)

	// 3. Settings resolution: cluster defaults fill in anything the
	// request left unset.
	cfg := cmn.GCO.Get()
	settings := resolveSettings(req.Settings, cfg)

	numShards, err := settings.NumberOfShards(cfg)
	if err != nil {
		listener.fireFailure(err)
		return state
	}
	numReplicas, err := settings.NumberOfReplicas(cfg)
	if err != nil {
		listener.fireFailure(err)
		return state
	}

	// 4. Local materialization.
	svc, err := c.localStore.Create(name, settings, state.Nodes.LocalID)
	if err != nil {
		listener.fireFailure(err)
		return state
	}
	mapper := svc.MapperService()
	for typ, source := range assembled {
		if addErr := mapper.Add(typ, source); addErr != nil {
			if delErr := c.localStore.Delete(name); delErr != nil {
				glog.Errorf("create-index %q: failed to clean up local index after mapping error: %v", name, delErr)
			}
			listener.fireFailure(cmn.NewErrMapperParsing(typ, addErr))
			return state
		}
	}

	// 5. Canonicalize: the mapper service may have rewritten sources.
	canonical := mapper.Mappings()

	// 6. Build the new IndexMetaData and commit it into a cloned state.
	imd := cluster.NewIndexMetaData(name, settings, canonical)
	next := state.Clone()
	if !next.AddIndex(imd) {
		debug.Assertf(false, "index %q passed pre-flight but could not be added", name)
		listener.fireFailure(cmn.NewErrIndexAlreadyExists(name))
		return state
	}

	// 7. Arm the peer wait for exactly the caller's requested timeout — the
	// deadline is not extended for any reason.
	c.armPeerWait(next, req.Timeout, req.ID, imd, numShards, numReplicas, listener)

	// 8. Routing table is deliberately left untouched here; the routing
	// commit is a second task triggered by the tracker's settlement.
	return next
}

func (c *Coordinator) armPeerWait(next *cluster.State, deadline time.Duration, id string, imd *cluster.IndexMetaData, numShards, numReplicas int64, listener *settledListener) {
	name := imd.Name
	expected := next.Nodes.PeerCount()

	settle := func(settlement AckSettlement, cause error) {
		switch settlement {
		case SettledRejected:
			c.rollbackCreateIndex(id, name, cause, listener)
		default:
			c.commitRouting(id, name, numShards, numReplicas, settlement == SettledAcknowledged, listener)
		}
	}

	if expected == 0 {
		settle(SettledAcknowledged, nil)
		return
	}

	var tracker *AckTracker
	tracker = NewAckTracker(name, expected, func(settlement AckSettlement, cause error) {
		c.registry.Remove(tracker)
		c.registry.RemoveRejectionListener(tracker)
		settle(settlement, cause)
	})
	c.registry.Add(tracker)
	c.registry.AddRejectionListener(tracker)
	tracker.Arm(deadline)
}

// commitRouting is the second, post-acknowledgment task: it
// rebuilds the routing table, hands the snapshot to the external routing
// strategy, commits the result, and — once that commit is locally
// observable — notifies the user listener with the final Response.
func (c *Coordinator) commitRouting(id, name string, numShards, numReplicas int64, acknowledged bool, listener *settledListener) {
	c.queue.Submit(Task{
		ID:          id,
		Description: "route-index:" + name,
		Execute: func(state *cluster.State) *cluster.State {
			imd, ok := state.Meta.Get(name)
			if !ok {
				debug.Assertf(false, "routing commit for %q with no committed metadata", name)
				return state
			}
			next := state.Clone()
			next.Routing.Set(cluster.NewEmptyIndexRoutingTable(imd, numShards, numReplicas))
			rerouted := c.routing.Reroute(next)
			rerouted.Version = state.Routing.Version + 1
			next.Routing = rerouted
			return next
		},
		OnCommitted: func(state *cluster.State) {
			listener.fireResponse(Response{Acknowledged: acknowledged})
		},
	})
}

// rollbackCreateIndex is the supplemented compensating task: if a peer
// explicitly rejects the commit, the just-added IndexMetaData is removed
// rather than left half-materialized cluster-wide.
func (c *Coordinator) rollbackCreateIndex(id, name string, cause error, listener *settledListener) {
	c.queue.Submit(Task{
		ID:          id,
		Description: "rollback-create-index:" + name,
		Execute: func(state *cluster.State) *cluster.State {
			next := state.Clone()
			next.RemoveIndex(name)
			return next
		},
		OnCommitted: func(state *cluster.State) {
			listener.fireFailure(cmn.NewErrIndexRejected(name, cause))
		},
	})
}

// DestroyIndex is the symmetric teardown operation: a
// single queue task removes the index's metadata and routing entry. No
// peer-ack wait is involved; deletion is considered committed as soon as
// the local state change is observable.
func (c *Coordinator) DestroyIndex(name string, userListener CreateIndexListener) {
	listener := newSettledListener(instrumentListener("destroy_index", userListener))
	c.queue.Submit(Task{
		ID:          cmn.GenUUID(),
		Description: "destroy-index:" + name,
		Execute: func(state *cluster.State) *cluster.State {
			if !state.Meta.Contains(name) {
				listener.fireFailure(cmn.NewErrIndexDoesNotExist(name))
				return state
			}
			next := state.Clone()
			if err := c.localStore.Delete(name); err != nil {
				listener.fireFailure(err)
				return state
			}
			next.RemoveIndex(name)
			return next
		},
		OnCommitted: func(state *cluster.State) {
			listener.fireResponse(Response{Acknowledged: true})
		},
	})
}

// resolveSettings fills in the two recognized keys with cluster defaults
// when the request leaves them unset, leaving every
// other key passed through unchanged.
func resolveSettings(requested cmn.Settings, cfg *cmn.ClusterConfig) cmn.Settings {
	defaults := cmn.Settings{}
	if _, ok := requested[cmn.SettingNumberOfShards]; !ok {
		defaults[cmn.SettingNumberOfShards] = strconv.FormatInt(cfg.NumberOfShards, 10)
	}
	if _, ok := requested[cmn.SettingNumberOfReplicas]; !ok {
		defaults[cmn.SettingNumberOfReplicas] = strconv.FormatInt(cfg.NumberOfReplicas, 10)
	}
	return defaults.Overlay(requested)
}

package cmn

import (
	"sync"
	"time"

	"go.uber.org/atomic"
)

// Recognized settings keys consumed directly by the core; all other
// dotted keys pass through unchanged into IndexMetaData.Settings.
const (
	SettingNumberOfShards   = "index.number_of_shards"
	SettingNumberOfReplicas = "index.number_of_replicas"
)

const (
	DefaultNumberOfShards   = 5
	DefaultNumberOfReplicas = 1
	DefaultCreateTimeout    = 5 * time.Second
)

// ClusterConfig holds the cluster-wide defaults the coordinator consults
// when a request omits a recognized setting, plus the mapping filesystem
// root and the network timeout. Modeled on the reference architecture's
// ClusterConfig, trimmed to what this core actually consumes.
type ClusterConfig struct {
	NumberOfShards   int64
	NumberOfReplicas int64
	MappingConfigDir string        // root of <root>/mappings/...
	NetworkTimeout   time.Duration // per-peer cluster-state broadcast timeout
}

func defaultClusterConfig() *ClusterConfig {
	return &ClusterConfig{
		NumberOfShards:   DefaultNumberOfShards,
		NumberOfReplicas: DefaultNumberOfReplicas,
		MappingConfigDir: "",
		NetworkTimeout:   2 * time.Second,
	}
}

// globalConfigOwner is GCO: the single place the rest of the module reads
// and updates cluster configuration. Modeled directly on the reference
// architecture's globalConfigOwner — an atomically-swapped pointer for
// lock-free reads, with a mutex-guarded begin/commit cycle for writers so
// concurrent config updates cannot interleave.
type globalConfigOwner struct {
	mtx sync.Mutex
	c   atomic.Pointer[ClusterConfig]
}

// GCO is the process-wide config owner, populated at startup.
var GCO = newGlobalConfigOwner()

func newGlobalConfigOwner() *globalConfigOwner {
	gco := &globalConfigOwner{}
	gco.c.Store(defaultClusterConfig())
	return gco
}

func (gco *globalConfigOwner) Get() *ClusterConfig {
	return gco.c.Load()
}

func (gco *globalConfigOwner) clone() *ClusterConfig {
	clone := *gco.Get()
	return &clone
}

// BeginUpdate locks the config for a read-modify-write cycle and returns a
// private clone to mutate. Must be followed by CommitUpdate or
// DiscardUpdate.
func (gco *globalConfigOwner) BeginUpdate() *ClusterConfig {
	gco.mtx.Lock()
	return gco.clone()
}

func (gco *globalConfigOwner) CommitUpdate(config *ClusterConfig) {
	gco.c.Store(config)
	gco.mtx.Unlock()
}

func (gco *globalConfigOwner) DiscardUpdate() {
	gco.mtx.Unlock()
}

package cluster

import "github.com/coreindex/idxmaster/cmn/cos"

// MetaData is the indices-and-aliases portion of ClusterState — the
// analogue of the reference architecture's bucketMD, versioned and
// mutated only inside the update queue's single-writer task execution.
type MetaData struct {
	Version int64                     `json:"version"`
	Indices map[string]*IndexMetaData `json:"indices"`
	Aliases cos.StringSet             `json:"aliases"`
}

func NewMetaData() *MetaData {
	return &MetaData{Indices: make(map[string]*IndexMetaData), Aliases: cos.NewStringSet()}
}

// Get returns the named index's metadata and whether it is present.
func (md *MetaData) Get(name string) (*IndexMetaData, bool) {
	imd, ok := md.Indices[name]
	return imd, ok
}

// Contains reports index presence without allocating a return value.
func (md *MetaData) Contains(name string) bool {
	_, ok := md.Indices[name]
	return ok
}

// HasAlias reports whether name collides with a registered alias —
// aliases are assumed already-canonical (lowercase): the same validator
// is applied at alias-creation time elsewhere, so this core compares
// directly rather than re-canonicalizing.
func (md *MetaData) HasAlias(name string) bool {
	return md.Aliases.Contains(name)
}

// add inserts imd under its own name. Returns false if the name is
// already present — callers (coordinator pre-flight) are expected to have
// already checked existence and must not rely on this for validation.
func (md *MetaData) add(imd *IndexMetaData) bool {
	if _, present := md.Indices[imd.Name]; present {
		return false
	}
	md.Indices[imd.Name] = imd
	return true
}

// del removes name from the indices map. Returns false if absent.
func (md *MetaData) del(name string) bool {
	if _, present := md.Indices[name]; !present {
		return false
	}
	delete(md.Indices, name)
	return true
}

// clone performs a shallow copy of the indices/alias maps — entries
// themselves (*IndexMetaData) are treated as immutable and shared between
// versions unless a task explicitly replaces one.
func (md *MetaData) clone() *MetaData {
	clone := &MetaData{
		Version: md.Version,
		Indices: make(map[string]*IndexMetaData, len(md.Indices)+1),
		Aliases: cos.NewStringSet(),
	}
	for name, imd := range md.Indices {
		clone.Indices[name] = imd
	}
	for alias := range md.Aliases {
		clone.Aliases.Add(alias)
	}
	return clone
}

func (md *MetaData) inc() { md.Version++ }

package cluster

import "github.com/coreindex/idxmaster/cmn"

// Mappings maps a type name to its opaque textual source document,
// interpreted by the external mapping parser (store.MapperService) —
// this core never inspects its contents.
type Mappings map[string]string // type -> source

func NewMappings() Mappings { return make(Mappings) }

// Overlay returns a copy of m with override's entries replacing m's —
// used by the coordinator to apply the request's own mappings over the
// filesystem layers the mapping loader produced.
func (m Mappings) Overlay(override Mappings) Mappings {
	out := make(Mappings, len(m)+len(override))
	for t, s := range m {
		out[t] = s
	}
	for t, s := range override {
		out[t] = s
	}
	return out
}

func (m Mappings) Clone() Mappings {
	clone := make(Mappings, len(m))
	for t, s := range m {
		clone[t] = s
	}
	return clone
}

// IndexMetaData is (name, settings, mappings), immutable once
// built — callers that need a modified copy must construct a new value.
type IndexMetaData struct {
	Name     string       `json:"name"`
	Settings cmn.Settings `json:"settings"`
	Mappings Mappings     `json:"mappings"`
}

func NewIndexMetaData(name string, settings cmn.Settings, mappings Mappings) *IndexMetaData {
	return &IndexMetaData{Name: name, Settings: settings, Mappings: mappings}
}

// NumberOfShards and NumberOfReplicas are derived from settings,
// resolving cluster defaults for anything the request left unset.
func (md *IndexMetaData) NumberOfShards(cfg *cmn.ClusterConfig) (int64, error) {
	return md.Settings.NumberOfShards(cfg)
}

func (md *IndexMetaData) NumberOfReplicas(cfg *cmn.ClusterConfig) (int64, error) {
	return md.Settings.NumberOfReplicas(cfg)
}

func (md *IndexMetaData) Clone() *IndexMetaData {
	return &IndexMetaData{
		Name:     md.Name,
		Settings: md.Settings.Overlay(nil),
		Mappings: md.Mappings.Clone(),
	}
}

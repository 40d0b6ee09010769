package master

import (
	"time"

	"github.com/coreindex/idxmaster/cluster"
	"github.com/coreindex/idxmaster/cmn"
)

// CreateIndexRequest is the fluent, language-neutral request builder:
// (cause, index, settings, mappings, timeout), timeout defaulting to 5s.
// ID correlates this request with the queue task(s) and log lines it
// produces, end to end.
type CreateIndexRequest struct {
	ID       string
	Cause    string
	Index    string
	Settings cmn.Settings
	Mappings cluster.Mappings
	Timeout  time.Duration
}

func NewCreateIndexRequest(index string) *CreateIndexRequest {
	return &CreateIndexRequest{
		ID:       cmn.GenUUID(),
		Index:    index,
		Settings: cmn.Settings{},
		Mappings: cluster.NewMappings(),
		Timeout:  cmn.DefaultCreateTimeout,
	}
}

func (r *CreateIndexRequest) WithCause(cause string) *CreateIndexRequest {
	r.Cause = cause
	return r
}

func (r *CreateIndexRequest) WithSettings(settings cmn.Settings) *CreateIndexRequest {
	r.Settings = settings
	return r
}

func (r *CreateIndexRequest) WithMappings(mappings map[string]string) *CreateIndexRequest {
	r.Mappings = cluster.Mappings(mappings)
	return r
}

func (r *CreateIndexRequest) WithTimeout(timeout time.Duration) *CreateIndexRequest {
	r.Timeout = timeout
	return r
}

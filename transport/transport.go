// Package transport is the minimal HTTP surface this core consumes and
// exposes: a client submission endpoint for CreateIndexRequest, and a
// peer-to-peer notification endpoint that feeds the listener registry.
// The wire protocol itself — request routing, retries, TLS — is
// explicitly out of scope; this package only wires the two payload
// shapes the core's contract requires onto net/http, the way the
// reference architecture's own proxy/target handlers do (no router
// library appears anywhere in its dependency set either).
package transport

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/golang/glog"

	"github.com/coreindex/idxmaster/cluster"
	"github.com/coreindex/idxmaster/master"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// CreateIndexWire is the over-the-wire shape of a CreateIndexRequest.
type CreateIndexWire struct {
	Cause    string            `json:"cause"`
	Index    string            `json:"index"`
	Settings map[string]string `json:"settings"`
	Mappings map[string]string `json:"mappings"`
	Timeout  string            `json:"timeout"` // duration string, e.g. "5s"
}

// ResponseWire is the over-the-wire shape of master.Response.
type ResponseWire struct {
	Acknowledged bool   `json:"acknowledged"`
	Error        string `json:"error,omitempty"`
}

// NodeNotifiedWire is the peer-to-peer "index created" / "index rejected"
// notification payload.
type NodeNotifiedWire struct {
	Index     string `json:"index"`
	NodeID    string `json:"node_id"`
	Rejected  bool   `json:"rejected,omitempty"`
	RejectMsg string `json:"reject_msg,omitempty"`
}

// Server exposes the master's two inbound surfaces over HTTP.
type Server struct {
	coordinator *master.Coordinator
	registry    *master.ListenerRegistry
}

func NewServer(coordinator *master.Coordinator, registry *master.ListenerRegistry) *Server {
	return &Server{coordinator: coordinator, registry: registry}
}

func (s *Server) RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("/v1/indices", s.handleCreateIndex)
	mux.HandleFunc("/v1/indices/", s.handleDestroyIndex)
	mux.HandleFunc("/v1/notify/index-created", s.handleNodeNotified)
}

// handleCreateIndex decodes a CreateIndexWire, submits it to the
// coordinator, and writes the Response once it settles. The HTTP
// response therefore blocks for the lifetime of the request even though
// the coordinator's own entry point does not — that tradeoff belongs to
// this transport, not to the core.
func (s *Server) handleCreateIndex(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var wire CreateIndexWire
	if err := json.NewDecoder(r.Body).Decode(&wire); err != nil {
		writeJSON(w, http.StatusBadRequest, ResponseWire{Error: errors.Wrap(err, "decode request").Error()})
		return
	}

	timeout, err := time.ParseDuration(wire.Timeout)
	if err != nil {
		timeout = 5 * time.Second
	}
	req := master.NewCreateIndexRequest(wire.Index).
		WithCause(wire.Cause).
		WithSettings(wire.Settings).
		WithMappings(wire.Mappings).
		WithTimeout(timeout)

	done := make(chan ResponseWire, 1)
	s.coordinator.CreateIndex(req, &httpListener{done: done})

	ctx, cancel := context.WithTimeout(r.Context(), timeout+5*time.Second)
	defer cancel()
	select {
	case resp := <-done:
		writeJSON(w, http.StatusOK, resp)
	case <-ctx.Done():
		writeJSON(w, http.StatusGatewayTimeout, ResponseWire{Error: "no settlement observed"})
	}
}

// handleDestroyIndex handles POST /v1/indices/<name>/destroy.
func (s *Server) handleDestroyIndex(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost || !strings.HasSuffix(r.URL.Path, "/destroy") {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	name := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/v1/indices/"), "/destroy")
	if name == "" {
		writeJSON(w, http.StatusBadRequest, ResponseWire{Error: "missing index name"})
		return
	}

	done := make(chan ResponseWire, 1)
	s.coordinator.DestroyIndex(name, &httpListener{done: done})

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	select {
	case resp := <-done:
		writeJSON(w, http.StatusOK, resp)
	case <-ctx.Done():
		writeJSON(w, http.StatusGatewayTimeout, ResponseWire{Error: "no settlement observed"})
	}
}

// handleNodeNotified is the peer-facing endpoint: a peer POSTs here once
// it has materialized (or refused) an index locally, and the registry
// fans the notification out to every registered listener.
func (s *Server) handleNodeNotified(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var wire NodeNotifiedWire
	if err := json.NewDecoder(r.Body).Decode(&wire); err != nil {
		http.Error(w, errors.Wrap(err, "decode notification").Error(), http.StatusBadRequest)
		return
	}
	if wire.Rejected {
		s.registry.NotifyRejected(wire.Index, wire.NodeID, errors.New(wire.RejectMsg))
	} else {
		s.registry.Notify(wire.Index, wire.NodeID)
	}
	w.WriteHeader(http.StatusNoContent)
}

type httpListener struct {
	done chan ResponseWire
}

func (l *httpListener) OnResponse(resp master.Response) {
	l.done <- ResponseWire{Acknowledged: resp.Acknowledged}
}

func (l *httpListener) OnFailure(err error) {
	l.done <- ResponseWire{Error: err.Error()}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		glog.Errorf("transport: failed to encode response: %v", err)
	}
}

// Broadcaster publishes cluster-state transitions to peers — the
// publish side of master.PublishFunc — by POSTing the new MetaData
// version to every peer's sync endpoint. Grounded on the reference
// architecture's metasync (c.bcast(cmn.ActCommit, ...)): best-effort,
// fire-and-forget per peer, errors logged and not retried by this core;
// retry policy belongs to the transport layer, not the core.
type Broadcaster struct {
	client *http.Client
}

func NewBroadcaster(timeout time.Duration) *Broadcaster {
	return &Broadcaster{client: &http.Client{Timeout: timeout}}
}

func (b *Broadcaster) Publish(prev, next *cluster.State) {
	for _, peer := range next.Nodes.Peers() {
		go b.post(peer, next)
	}
}

func (b *Broadcaster) post(peer *cluster.Node, state *cluster.State) {
	body, err := json.Marshal(state.Meta)
	if err != nil {
		glog.Errorf("broadcast to %s: marshal metadata: %v", peer, err)
		return
	}
	resp, err := b.client.Post(peer.Address+"/v1/sync/metadata", "application/json", bytes.NewReader(body))
	if err != nil {
		glog.Warningf("broadcast to %s: %v", peer, err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		glog.Warningf("broadcast to %s: unexpected status %d", peer, resp.StatusCode)
	}
}

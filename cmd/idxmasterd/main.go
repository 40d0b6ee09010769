// Package main is the index-master daemon executable: it wires the
// cluster-state queue, the create-index coordinator, and the HTTP
// transport together and serves client and peer traffic.
/*
 * Copyright (c) 2018-2020, NVIDIA CORPORATION. All rights reserved.
 */
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"runtime/pprof"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/golang/glog"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/coreindex/idxmaster/cluster"
	"github.com/coreindex/idxmaster/cmn"
	"github.com/coreindex/idxmaster/master"
	"github.com/coreindex/idxmaster/store"
	"github.com/coreindex/idxmaster/transport"
)

var (
	listenAddr  = flag.String("listen", ":51080", "address to serve client and peer traffic on")
	nodeID      = flag.String("node-id", "", "this node's cluster identifier (required)")
	nodeAddr    = flag.String("node-address", "", "this node's address as peers should reach it")
	peerList    = flag.String("peers", "", "comma-separated id=address pairs for the rest of the cluster")
	mappingRoot = flag.String("mapping-root", "", "root directory for <root>/mappings/_default and <root>/mappings/<index>")
	numShards   = flag.Int64("default-number-of-shards", cmn.DefaultNumberOfShards, "cluster default for index.number_of_shards")
	numReplicas = flag.Int64("default-number-of-replicas", cmn.DefaultNumberOfReplicas, "cluster default for index.number_of_replicas")
	netTimeout  = flag.Duration("network-timeout", 2*time.Second, "per-peer broadcast timeout")

	cpuProfile = flag.String("cpuprofile", "", "write cpu profile to `file`")
	memProfile = flag.String("memprofile", "", "write memory profile to `file`")
)

func main() {
	os.Exit(run())
}

func run() int {
	flag.Parse()
	defer glog.Flush()

	if *nodeID == "" {
		glog.Errorf("idxmasterd: -node-id is required")
		return 1
	}

	if s := *cpuProfile; s != "" {
		*cpuProfile = s + "." + strconv.Itoa(syscall.Getpid())
		f, err := os.Create(*cpuProfile)
		if err != nil {
			glog.Fatalf("idxmasterd: couldn't create CPU profile: %v", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			glog.Fatalf("idxmasterd: couldn't start CPU profile: %v", err)
		}
		defer pprof.StopCPUProfile()
	}

	exitCode := serve()

	if s := *memProfile; s != "" {
		*memProfile = s + "." + strconv.Itoa(syscall.Getpid())
		f, err := os.Create(*memProfile)
		if err != nil {
			glog.Fatalf("idxmasterd: couldn't create memory profile: %v", err)
		}
		defer f.Close()
		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			glog.Fatalf("idxmasterd: couldn't write memory profile: %v", err)
		}
	}
	return exitCode
}

func serve() int {
	applyConfig()

	local := cluster.NewNode(*nodeID, *nodeAddr)
	peers, err := parsePeers(*peerList)
	if err != nil {
		glog.Errorf("idxmasterd: %v", err)
		return 1
	}
	nodes := cluster.NewNodes(local, peers...)
	initial := cluster.NewState(nodes)

	broadcaster := transport.NewBroadcaster(*netTimeout)
	queue := master.NewQueue(initial, broadcaster.Publish)
	defer queue.Stop()

	registry := master.NewListenerRegistry()
	localStore := store.NewMemLocalIndexStore()
	routing := store.NewRoundRobinRoutingStrategy()
	coordinator := master.NewCoordinator(queue, registry, localStore, routing, *mappingRoot)

	server := transport.NewServer(coordinator, registry)
	mux := http.NewServeMux()
	server.RegisterHandlers(mux)
	mux.Handle("/metrics", promhttp.Handler())

	glog.Infof("idxmasterd: node %s serving on %s (%d peers)", *nodeID, *listenAddr, len(peers))
	if err := http.ListenAndServe(*listenAddr, mux); err != nil {
		glog.Errorf("idxmasterd: %v", err)
		return 1
	}
	return 0
}

func applyConfig() {
	cfg := cmn.GCO.BeginUpdate()
	cfg.NumberOfShards = *numShards
	cfg.NumberOfReplicas = *numReplicas
	cfg.MappingConfigDir = *mappingRoot
	cfg.NetworkTimeout = *netTimeout
	cmn.GCO.CommitUpdate(cfg)
}

// parsePeers parses "id1=addr1,id2=addr2" into cluster.Node values.
func parsePeers(raw string) ([]*cluster.Node, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	nodes := make([]*cluster.Node, 0, len(parts))
	for _, p := range parts {
		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 || kv[0] == "" || kv[1] == "" {
			return nil, fmt.Errorf("invalid -peers entry %q, expected id=address", p)
		}
		nodes = append(nodes, cluster.NewNode(kv[0], kv[1]))
	}
	return nodes, nil
}

package master

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics are the daemon-wide counters/gauges this package exports under
// /metrics. They are package-level so every Queue and Coordinator
// constructed in a process — including the several a test suite builds
// per run — shares one registration rather than panicking on a
// duplicate-collector collision.
var (
	tasksProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "idxmaster",
		Subsystem: "queue",
		Name:      "tasks_total",
		Help:      "Cluster-state update tasks processed by the queue worker, by outcome.",
	}, []string{"outcome"})

	queueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "idxmaster",
		Subsystem: "queue",
		Name:      "depth",
		Help:      "Number of tasks currently buffered in the update queue's channel.",
	})

	createIndexRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "idxmaster",
		Subsystem: "coordinator",
		Name:      "create_index_total",
		Help:      "CreateIndex requests submitted, by terminal outcome.",
	}, []string{"outcome"})

	destroyIndexRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "idxmaster",
		Subsystem: "coordinator",
		Name:      "destroy_index_total",
		Help:      "DestroyIndex requests submitted, by terminal outcome.",
	}, []string{"outcome"})

	ackSettlements = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "idxmaster",
		Subsystem: "ack",
		Name:      "settlements_total",
		Help:      "Peer acknowledgment tracker settlements, by kind.",
	}, []string{"settlement"})
)

func settlementLabel(s AckSettlement) string {
	switch s {
	case SettledAcknowledged:
		return "acknowledged"
	case SettledTimeout:
		return "timeout"
	case SettledRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

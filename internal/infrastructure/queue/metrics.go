package queue

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Audit trail metrics, registered with the default Prometheus registry next to
// the HTTP metrics.

// eventsWrittenTotal counts audit entries persisted to Mongo.
// Label:
//   - type: the audit event type (e.g. "login_failed")
var eventsWrittenTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "audit_events_written_total",
		Help:      "Total number of audit events written, by type.",
	},
	[]string{"type"},
)

// eventsDroppedTotal counts audit events that never reached the store.
// Label:
//   - reason: "queue_full", "stopped" or "write_failed"
var eventsDroppedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "audit_events_dropped_total",
		Help:      "Total number of audit events dropped before persistence.",
	},
	[]string{"reason"},
)

// queueDepth tracks the number of events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var queueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: "storefront",
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// writeDuration measures how long a single audit insert takes.
var writeDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: "storefront",
		Name:      "audit_write_duration_seconds",
		Help:      "Duration of a single audit event insert.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
)

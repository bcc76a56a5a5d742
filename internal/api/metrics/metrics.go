// Package metrics defines and registers all custom Prometheus metrics for the
// storefront API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default Prometheus registry on package init via
// promauto and are exposed on /metrics next to the echoprometheus request
// metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts.
// Labels:
//   - variant: "user" or "admin"
//   - result: "success", "invalid", "locked", "missing_fields" or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by account variant and result.",
	},
	[]string{"variant", "result"},
)

// RegistrationsTotal counts storefront sign-ups.
// Label:
//   - result: "created", "duplicate", "invalid" or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration requests, by result.",
	},
	[]string{"result"},
)

// TokenRejectionsTotal counts requests turned away by an authorization gate.
// Labels:
//   - gate: "bearer" or "admin"
//   - reason: "missing", "expired", "signature", "malformed", "unverifiable",
//     "invalid" or "role"
var TokenRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_rejections_total",
		Help:      "Total number of requests rejected by an authorization gate.",
	},
	[]string{"gate", "reason"},
)

// ── Order metrics ─────────────────────────────────────────────────────────────

// OrdersCreatedTotal counts pending orders opened at checkout.
var OrdersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of orders created.",
	},
)

// OrdersCapturedTotal counts capture requests.
// Label:
//   - status: the reported payment status ("paid" or "failed"), or "rejected"
var OrdersCapturedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_captured_total",
		Help:      "Total number of order captures, by resulting payment status.",
	},
	[]string{"status"},
)

// Package metrics defines and registers all custom Prometheus metrics for
// the ResolveNow complaint API. It is the single source of truth for metric
// names, labels, and help strings. Metrics register with the default
// registry at import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "resolvenow"

// ── Complaint metrics ────────────────────────────────────────────────────────

// ComplaintsCreatedTotal counts newly filed complaints.
// Label:
//   - priority: "low", "medium", "high", or "urgent"
var ComplaintsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "complaints_created_total",
		Help:      "Total number of complaints created, by priority.",
	},
	[]string{"priority"},
)

// ComplaintsAssignedTotal counts assignment operations (including re-assignments).
var ComplaintsAssignedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "complaints_assigned_total",
		Help:      "Total number of complaint assignments performed.",
	},
)

// StatusTransitionsTotal counts status overwrites.
// Label:
//   - status: the new lifecycle status applied
var StatusTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_transitions_total",
		Help:      "Total number of complaint status updates, by new status.",
	},
	[]string{"status"},
)

// MessagesSentTotal counts chat messages appended to complaint threads.
// Label:
//   - sender_type: "customer", "agent", or "admin"
var MessagesSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_sent_total",
		Help:      "Total number of chat messages sent, by sender type.",
	},
	[]string{"sender_type"},
)

// ── Event pipeline metrics ───────────────────────────────────────────────────

// EventsProcessedTotal counts lifecycle events written to the audit trail.
// Label:
//   - type: "created", "assigned", or "status_changed"
var EventsProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_processed_total",
		Help:      "Total number of lifecycle events successfully recorded.",
	},
	[]string{"type"},
)

// EventsErrorsTotal counts lifecycle events that failed processing.
// Label:
//   - reason: short description of the failure (e.g. "audit_write_failed")
var EventsErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_errors_total",
		Help:      "Total number of lifecycle events that failed processing.",
	},
	[]string{"reason"},
)

// EventsQueueDepth tracks the number of events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var EventsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "events_queue_depth",
		Help:      "Current number of events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

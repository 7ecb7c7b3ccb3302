// Package metrics defines and registers all custom Prometheus metrics for the
// timecard API. It is the single source of truth for metric names, labels,
// and help strings. Metrics are registered with the default registry at
// package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "timecard"

// ── Lifecycle metrics ─────────────────────────────────────────────────────────

// EntriesCreatedTotal counts draft entries persisted by AddEntry.
var EntriesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entries_created_total",
		Help:      "Total number of time entries created as drafts.",
	},
)

// TransitionsTotal counts successful status transitions.
// Label:
//   - status: the status the entry transitioned into ("submitted", "approved", "rejected")
var TransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transitions_total",
		Help:      "Total number of successful entry status transitions, by target status.",
	},
	[]string{"status"},
)

// TransitionConflictsTotal counts conditional updates that affected zero rows
// because another actor resolved the entry first.
var TransitionConflictsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transition_conflicts_total",
		Help:      "Total number of status transitions lost to a concurrent actor.",
	},
)

// BulkApproveSkippedTotal counts ids skipped by the partial-success policy.
var BulkApproveSkippedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bulk_approve_skipped_total",
		Help:      "Total number of bulk-approve ids skipped because they were no longer submitted.",
	},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// EventsPublishedTotal counts lifecycle event publish attempts.
// Label:
//   - result: "ok" or "error"
var EventsPublishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_published_total",
		Help:      "Total number of lifecycle event publish attempts, by result.",
	},
	[]string{"result"},
)

// NotifyQueueDepth tracks the number of events waiting in each publisher
// worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var NotifyQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notify_queue_depth",
		Help:      "Current number of lifecycle events pending in each publisher worker channel.",
	},
	[]string{"worker_id"},
)

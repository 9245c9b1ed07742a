// Package metrics defines and registers all custom Prometheus metrics for the
// BookSphere API. It is the single source of truth for metric names, labels,
// and help strings.
//
// All metrics use promauto and register themselves with the default registry
// on package import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "booksphere"

// ── Circulation metrics ───────────────────────────────────────────────────────

// LoansIssued counts books borrowed.
var LoansIssued = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "loans_issued_total",
		Help:      "Total number of books borrowed.",
	},
)

// LoansReturned counts books returned, late or not.
var LoansReturned = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "loans_returned_total",
		Help:      "Total number of books returned.",
	},
)

// FinesIssued counts fines created.
// Label:
//   - kind: "overdue" or "damage"
var FinesIssued = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fines_issued_total",
		Help:      "Total number of fines issued, by kind.",
	},
	[]string{"kind"},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsDelivered counts notifications stored for users.
// Label:
//   - type: notification type (e.g. "BOOK_DUE_SOON")
var NotificationsDelivered = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_delivered_total",
		Help:      "Total number of notifications delivered, by type.",
	},
	[]string{"type"},
)

// NotificationsDropped counts notifications discarded because a worker
// channel was full.
var NotificationsDropped = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_dropped_total",
		Help:      "Total number of notifications dropped due to a full worker queue.",
	},
)

// NotificationsQueueDepth tracks the current number of notifications waiting
// in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var NotificationsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notifications_queue_depth",
		Help:      "Current number of notifications pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Overdue scanner metrics ───────────────────────────────────────────────────

// OverdueScans counts completed scan cycles.
var OverdueScans = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "overdue_scans_total",
		Help:      "Total number of completed overdue scan cycles.",
	},
)

// OverdueScanDuration measures how long a full scan cycle takes.
var OverdueScanDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "overdue_scan_duration_seconds",
		Help:      "Duration of a full overdue scan cycle.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
)

// NoticeDedup counts per-day notice deduplication checks.
// Label:
//   - result: "hit" (already sent today, skipped) or "miss" (sent)
var NoticeDedup = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notice_dedup_total",
		Help:      "Total number of notice deduplication checks, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

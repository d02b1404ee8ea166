// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ledger"

// JournalWrites counts committed journal engine mutations by operation
// (create, update, reverse, cancel).
var JournalWrites = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "journal",
	Name:      "writes_total",
	Help:      "Committed journal entry writes by operation.",
}, []string{"operation"})

// JournalRejections counts journal writes rejected by validation, by reason.
var JournalRejections = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "journal",
	Name:      "rejections_total",
	Help:      "Journal entry writes rejected by an invariant check.",
}, []string{"reason"})

// DocumentPostings counts documents that produced a journal entry, by document type.
var DocumentPostings = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "posting",
	Name:      "documents_total",
	Help:      "Documents posted to the ledger by type.",
}, []string{"document_type"})

// PeriodLocks counts fiscal periods that transitioned to locked.
var PeriodLocks = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "periods",
	Name:      "locks_total",
	Help:      "Fiscal periods locked.",
})

// StoreChanges counts committed writes reported by the store, by collection.
var StoreChanges = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "store",
	Name:      "changes_total",
	Help:      "Committed store writes by collection.",
}, []string{"collection"})

// HTTPRequestDuration observes API latency by route, method and status.
var HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: namespace,
	Subsystem: "http",
	Name:      "request_duration_seconds",
	Help:      "HTTP request latency.",
	Buckets:   prometheus.DefBuckets,
}, []string{"route", "method", "status"})

// ObserveStoreChange is a store change observer that feeds StoreChanges.
func ObserveStoreChange(_ context.Context, collection string) {
	StoreChanges.WithLabelValues(collection).Inc()
}

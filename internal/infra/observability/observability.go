// Package observability holds the portal's Prometheus collectors.
//
// Collectors are package-level promauto vars: registered once at init,
// importable from any layer without plumbing a registry around.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Accounting Metrics ─────────────────────────────────────────────────────

// QueryTotal counts read requests against the accounting record.
var QueryTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "portal_account_queries_total",
	Help: "Total accounting record reads served",
})

// UpdatesTotal counts update operations by action and outcome.
var UpdatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "portal_account_updates_total",
	Help: "Total accounting updates by action and outcome",
}, []string{"action", "outcome"})

// CoinsGranted counts coins credited through either update path.
var CoinsGranted = promauto.NewCounter(prometheus.CounterOpts{
	Name: "portal_coins_granted_total",
	Help: "Total coins granted",
})

// StudySecondsRecorded counts study seconds accepted from clients.
var StudySecondsRecorded = promauto.NewCounter(prometheus.CounterOpts{
	Name: "portal_study_seconds_recorded_total",
	Help: "Total study seconds recorded",
})

// ─── Storage Metrics ────────────────────────────────────────────────────────

// StoreRepairs counts silent zero-record substitutions by reason, so data
// loss from a corrupt file is visible to operators.
var StoreRepairs = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "portal_store_repairs_total",
	Help: "Accounting store loads repaired to a zero record, by reason",
}, []string{"reason"})

// StoreWriteFailures counts failed persistence attempts.
var StoreWriteFailures = promauto.NewCounter(prometheus.CounterOpts{
	Name: "portal_store_write_failures_total",
	Help: "Accounting store write failures",
})

// LedgerWriteFailures counts session ledger rows that could not be written.
// Ledger failures never fail the accounting update itself.
var LedgerWriteFailures = promauto.NewCounter(prometheus.CounterOpts{
	Name: "portal_ledger_write_failures_total",
	Help: "Study-session ledger write failures",
})

// Package metrics defines and registers all custom Prometheus metrics for the
// WorkLedger timesheet API. It is the single source of truth for metric names,
// labels, and help strings.
//
// The promauto constructors register everything with the default registry at
// package init; the /metrics endpoint exposes it.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "workledger"

// EntriesCreatedTotal counts newly created work entries.
// Label:
//   - program_type: CLIENT, INTERNAL, or SELF_LEARNING
var EntriesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entries_created_total",
		Help:      "Total number of work entries created, by program type.",
	},
	[]string{"program_type"},
)

// EntriesSubmittedTotal counts DRAFT → SUBMITTED transitions.
var EntriesSubmittedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entries_submitted_total",
		Help:      "Total number of work entries submitted.",
	},
)

// EntriesLockedTotal counts SUBMITTED → LOCKED transitions.
var EntriesLockedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entries_locked_total",
		Help:      "Total number of work entries locked.",
	},
)

// EntriesDeletedTotal counts deleted work entries.
var EntriesDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entries_deleted_total",
		Help:      "Total number of work entries deleted.",
	},
)

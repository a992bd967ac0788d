// Package metrics defines and registers all custom Prometheus metrics for
// the agencydesk CRM API. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics register with the default Prometheus registry at init time; the
// router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "agencydesk"

// AccessVerdictsTotal counts access policy decisions.
// Labels:
//   - verdict: render, redirect_to_auth, redirect_to_home, show_loading
var AccessVerdictsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_verdicts_total",
		Help:      "Total number of access policy decisions, by verdict.",
	},
	[]string{"verdict"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok" or "failed"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ActiveSessions tracks the number of resolved sessions held in memory.
var ActiveSessions = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_sessions",
		Help:      "Number of sessions currently held by the session manager.",
	},
)

// TaskMovesTotal counts committed board transitions.
// Labels:
//   - from: the status the task left
//   - to: the status the task entered
var TaskMovesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "task_moves_total",
		Help:      "Total number of committed task board transitions.",
	},
	[]string{"from", "to"},
)

// TaskDropsIgnoredTotal counts drops that committed nothing.
// Label:
//   - reason: "invalid_target" or "same_column"
var TaskDropsIgnoredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "task_drops_ignored_total",
		Help:      "Total number of board drops ignored without a write.",
	},
	[]string{"reason"},
)

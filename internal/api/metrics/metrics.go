// Package metrics defines and registers all custom Prometheus metrics for the
// lansia-health API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at package init via
// promauto; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "lansia"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "failure", or "rate_limited"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AuthRejectionsTotal counts requests rejected by the auth gate.
// Label:
//   - reason: "missing_token", "invalid_token", or "user_inactive"
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected by the bearer-token gate.",
	},
	[]string{"reason"},
)

// ── QR metrics ────────────────────────────────────────────────────────────────

// QRDecodesTotal counts scanned payload classifications.
// Label:
//   - format: "structured", "legacy", or "invalid"
var QRDecodesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "qr_decodes_total",
		Help:      "Total number of scanned QR payloads, by decoded format.",
	},
	[]string{"format"},
)

// ── Record metrics ────────────────────────────────────────────────────────────

// ProfilesCreatedTotal counts newly enrolled profiles.
var ProfilesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "profiles_created_total",
		Help:      "Total number of elder profiles enrolled.",
	},
)

// CheckupsCreatedTotal counts recorded checkups.
var CheckupsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkups_created_total",
		Help:      "Total number of checkups recorded.",
	},
)

// Package metrics defines and registers all custom Prometheus metrics for the
// accounts API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default registry at init time via promauto;
// the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "accounts"

// ── Auth action metrics ───────────────────────────────────────────────────────

// RegistrationsTotal counts completed registrations.
// Label:
//   - result: "success" (failures are visible through LoginAttemptsTotal-style
//     handler counters and the error log)
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of user registrations.",
	},
	[]string{"result"},
)

// LoginAttemptsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "unknown_email", or "wrong_password"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, labelled by outcome.",
	},
	[]string{"result"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionsIssuedTotal counts sessions minted after successful credential
// verification.
var SessionsIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_issued_total",
		Help:      "Total number of sessions issued.",
	},
)

// SessionsRevokedTotal counts sessions removed through logout.
var SessionsRevokedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_revoked_total",
		Help:      "Total number of sessions revoked.",
	},
)

// ── Route gate metrics ────────────────────────────────────────────────────────

// GateRedirectsTotal counts redirects issued by the route gate.
// Label:
//   - reason: "unauthenticated" (protected route without a session) or
//     "already_authenticated" (auth-only route with a session)
var GateRedirectsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_redirects_total",
		Help:      "Total number of redirects issued by the route gate.",
	},
	[]string{"reason"},
)

// ── Audit trail metrics ───────────────────────────────────────────────────────

// AuthEventsRecordedTotal counts auth events persisted to the audit trail.
// Label:
//   - kind: "user_registered", "login_succeeded", or "login_failed"
var AuthEventsRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_events_recorded_total",
		Help:      "Total number of auth events written to the audit trail.",
	},
	[]string{"kind"},
)

// AuthEventsDedupTotal counts deduplication decisions in the audit pipeline.
// Label:
//   - result: "hit" (duplicate, skipped) or "miss" (new event, recorded)
var AuthEventsDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_events_dedup_total",
		Help:      "Total number of audit dedup checks, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

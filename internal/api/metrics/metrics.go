// Package metrics defines and registers all custom Prometheus metrics for
// the auth system. It is the single source of truth for metric names,
// labels, and help strings.
//
// Collectors register with the default registry at import time via promauto;
// the /metrics route exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "auth"

// RegistrationsTotal counts registration attempts by outcome.
// Labels:
//   - result: "success", "validation_error", "challenge_failed",
//     "duplicate_username", or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts by outcome.
// Labels:
//   - result: "success", "invalid_credentials", "challenge_failed", or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SessionsIssuedTotal counts sessions successfully issued.
// Label:
//   - origin: "register" or "login"
var SessionsIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_issued_total",
		Help:      "Total number of sessions issued, by originating operation.",
	},
	[]string{"origin"},
)

// HashingDuration measures the time a single credential derivation takes.
// The KDF cost is deliberate; this histogram tells us what it costs in
// practice under load.
var HashingDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "hashing_duration_seconds",
		Help:      "Duration of credential hash derivations.",
		Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5},
	},
)

// ChallengesIssuedTotal counts challenges handed out to clients.
var ChallengesIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "challenges_issued_total",
		Help:      "Total number of verification challenges issued.",
	},
)

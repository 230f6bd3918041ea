// Package metrics defines all custom Prometheus metrics for the accounts
// API. It is the single source of truth for metric names, labels, and help
// strings; metrics register themselves with the default registry via
// promauto at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "accounts"

// RegistrationsTotal counts successfully persisted registrations.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of users successfully registered.",
	},
)

// RegistrationsRejectedTotal counts registrations rejected before insert.
// Label:
//   - reason: "duplicate_email" or "profane_name"
var RegistrationsRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_rejected_total",
		Help:      "Total number of registrations rejected, by reason.",
	},
	[]string{"reason"},
)

// LoginsTotal counts logins that resulted in a token pair being issued.
var LoginsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of successful logins.",
	},
)

// TokenRefreshesTotal counts refresh attempts.
// Label:
//   - result: "ok" (new pair minted) or "rejected" (bad signature or expired)
var TokenRefreshesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refreshes_total",
		Help:      "Total number of refresh token exchanges, by result.",
	},
	[]string{"result"},
)

// LeaderboardCacheTotal counts leaderboard cache lookups.
// Label:
//   - result: "hit" or "miss"
var LeaderboardCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "leaderboard_cache_total",
		Help:      "Total number of leaderboard cache lookups, by result.",
	},
	[]string{"result"},
)

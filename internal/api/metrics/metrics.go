// Package metrics defines and registers all custom Prometheus metrics for
// the membership API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "membership"

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok", "bad_password", "unavailable"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "ok", "duplicate", "invalid"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// SessionsRevokedTotal counts sessions revoked through logout.
var SessionsRevokedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_revoked_total",
		Help:      "Total number of sessions revoked by logout.",
	},
)

// UploadsTotal counts image uploads.
// Label:
//   - result: "ok" or "error"
var UploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Total number of image uploads, by result.",
	},
	[]string{"result"},
)

// MemberListDuration measures how long the admin member listing takes,
// covering both the count and the page fetch.
var MemberListDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "member_list_duration_seconds",
		Help:      "Duration of the admin member listing query.",
		Buckets:   prometheus.DefBuckets,
	},
)

// Package metrics defines and registers all custom Prometheus metrics for the
// StaySmart hospitality API. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics register with the default Prometheus registry at import time via
// promauto; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hospitality"

// ── Booking metrics ───────────────────────────────────────────────────────────

// BookingsCreatedTotal counts confirmed bookings.
// Label:
//   - channel: "api" or "chat"
var BookingsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_created_total",
		Help:      "Total number of bookings confirmed, by channel.",
	},
	[]string{"channel"},
)

// BookingsRejectedTotal counts booking requests that did not allocate.
// Label:
//   - reason: "no_availability" or "invalid_input"
var BookingsRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_rejected_total",
		Help:      "Total number of booking requests rejected, by reason.",
	},
	[]string{"reason"},
)

// BookingsCancelledTotal counts cancellations that re-released capacity.
var BookingsCancelledTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_cancelled_total",
		Help:      "Total number of bookings cancelled.",
	},
)

// ── Property lifecycle metrics ────────────────────────────────────────────────

// PropertiesRegisteredTotal counts new property registrations (pending state).
var PropertiesRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "properties_registered_total",
		Help:      "Total number of property registrations accepted.",
	},
)

// PropertiesApprovedTotal counts pending -> approved transitions.
var PropertiesApprovedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "properties_approved_total",
		Help:      "Total number of property approvals.",
	},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts authentication attempts.
// Label:
//   - result: "success", "invalid", "pending", "throttled"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of authentication attempts, by result.",
	},
	[]string{"result"},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsTotal counts approval-notice deliveries.
// Label:
//   - result: "sent" or "error"
var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of approval notifications, by delivery result.",
	},
	[]string{"result"},
)

// NotificationQueueDepth tracks pending notices per dispatcher worker.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var NotificationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_queue_depth",
		Help:      "Current number of notices pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Search metrics ────────────────────────────────────────────────────────────

// SearchRequestsTotal counts property searches.
// Label:
//   - cache: "hit" or "miss"
var SearchRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "search_requests_total",
		Help:      "Total number of property searches, by cache outcome.",
	},
	[]string{"cache"},
)

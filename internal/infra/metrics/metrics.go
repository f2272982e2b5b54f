// Package metrics exposes Prometheus collectors for the reminder pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DispatchRunsCompleted counts pipeline runs that finished, including
	// runs that found nothing to send.
	DispatchRunsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reminder_dispatch_runs_completed_total",
		Help: "Total number of completed reminder dispatch runs",
	})

	// DispatchRunsFailed counts runs aborted by a data-access or transport error.
	DispatchRunsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reminder_dispatch_runs_failed_total",
		Help: "Total number of reminder dispatch runs aborted by an error",
	})

	// RemindersSent counts messages accepted by the push transport.
	RemindersSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reminder_notifications_sent_total",
		Help: "Total number of reminder notifications accepted by the push transport",
	})

	// RemindersFailed counts per-message delivery failures reported by the transport.
	RemindersFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reminder_notifications_failed_total",
		Help: "Total number of reminder notifications the push transport failed to deliver",
	})

	// DispatchDuration observes end-to-end run duration.
	DispatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name: "reminder_dispatch_duration_seconds",
		Help: "Duration of reminder dispatch runs in seconds",
	})
)

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Pull outcomes, labelled by storage API version and error kind ("none" on success)
	PullsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ttn_gateway_pulls_total",
			Help: "Total number of storage pulls served by the gateway",
		},
		[]string{"api_version", "outcome"},
	)

	PullDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ttn_gateway_pull_duration_seconds",
			Help:    "Duration of storage pulls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"api_version"},
	)

	PullRecordsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ttn_gateway_pull_records_total",
			Help: "Total number of V3 uplink records returned",
		},
	)

	NotificationErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ttn_gateway_notification_errors_total",
			Help: "Total number of completion notifications that failed to publish",
		},
	)
)

// ObservePull records one finished pull.
func ObservePull(version, outcome string, took time.Duration, records int) {
	PullsTotal.WithLabelValues(version, outcome).Inc()
	PullDuration.WithLabelValues(version).Observe(took.Seconds())
	if records > 0 {
		PullRecordsTotal.Add(float64(records))
	}
}

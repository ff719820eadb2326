package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DashboardMetrics holds the prometheus instruments for the server.
type DashboardMetrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	ReportsSubmittedTotal *prometheus.CounterVec
	YelpSyncTotal         *prometheus.CounterVec
	AlertsGeneratedTotal  *prometheus.CounterVec
}

// New registers and returns the dashboard metric set.
func New() *DashboardMetrics {
	return &DashboardMetrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total HTTP requests served, by route and status",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds, by route",
				Buckets: prometheus.ExponentialBuckets(0.005, 2, 10),
			},
			[]string{"method", "route"},
		),
		ReportsSubmittedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "daily_reports_submitted_total",
				Help: "Daily report submissions, by shift and created/updated outcome",
			},
			[]string{"shift", "outcome"},
		),
		YelpSyncTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "yelp_sync_total",
				Help: "Review sync attempts, by outcome (matched/no_match/skipped/error)",
			},
			[]string{"outcome"},
		),
		AlertsGeneratedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dashboard_alerts_generated_total",
				Help: "Alerts emitted to owner dashboards, by alert type",
			},
			[]string{"type"},
		),
	}
}

// RecordReportSubmitted counts one report submission.
func (m *DashboardMetrics) RecordReportSubmitted(shift string, created bool) {
	outcome := "updated"
	if created {
		outcome = "created"
	}
	m.ReportsSubmittedTotal.WithLabelValues(shift, outcome).Inc()
}

// RecordYelpSync counts one review sync attempt.
func (m *DashboardMetrics) RecordYelpSync(outcome string) {
	m.YelpSyncTotal.WithLabelValues(outcome).Inc()
}

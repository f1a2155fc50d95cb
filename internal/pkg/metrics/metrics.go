package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// HTTP request metrics
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studentregistry_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "studentregistry_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	// Bulk import rows by outcome
	ImportRowsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studentregistry_import_rows_total",
			Help: "Total number of CSV rows processed by bulk import",
		},
		[]string{"outcome"},
	)

	StudentsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "studentregistry_students",
			Help: "Number of student records at the last stats computation",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		ImportRowsTotal,
		StudentsTotal,
	)
}

// RecordRequest records one served request
func RecordRequest(route, method, status string, duration time.Duration) {
	RequestsTotal.WithLabelValues(route, method, status).Inc()
	RequestDuration.WithLabelValues(route, method).Observe(duration.Seconds())
}

// RecordImportRow counts one bulk import row outcome
func RecordImportRow(outcome string) {
	ImportRowsTotal.WithLabelValues(outcome).Inc()
}

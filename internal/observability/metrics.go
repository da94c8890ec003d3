package observability

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registerOnce        sync.Once
	adminRequestsTotal  *prometheus.CounterVec
	adminLatencySeconds *prometheus.HistogramVec
	rawQueriesTotal     *prometheus.CounterVec
	backupTablesTotal   *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors for the admin surface.
func RegisterMetrics() {
	registerOnce.Do(func() {
		adminRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "uroki_admin_requests_total",
			Help: "Total number of admin API requests served.",
		}, []string{"method", "route", "status"})

		adminLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "uroki_admin_latency_seconds",
			Help:    "Latency distribution for admin API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		rawQueriesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "uroki_admin_raw_queries_total",
			Help: "Raw SQL executions through the database console.",
		}, []string{"outcome"})

		backupTablesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "uroki_admin_backup_tables_total",
			Help: "Tables processed by backup exports.",
		}, []string{"outcome"})

		prometheus.MustRegister(adminRequestsTotal, adminLatencySeconds, rawQueriesTotal, backupTablesTotal)
	})
}

// AdminRequests exposes the counter for admin requests.
func AdminRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return adminRequestsTotal
}

// AdminLatency exposes the latency histogram for admin requests.
func AdminLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return adminLatencySeconds
}

// RawQueries exposes the counter for database console query executions.
func RawQueries() *prometheus.CounterVec {
	RegisterMetrics()
	return rawQueriesTotal
}

// BackupTables exposes the counter for backup table outcomes.
func BackupTables() *prometheus.CounterVec {
	RegisterMetrics()
	return backupTablesTotal
}

// ScrapeHandler serves the Prometheus scrape endpoint through Fiber.
func ScrapeHandler() fiber.Handler {
	RegisterMetrics()
	return adaptor.HTTPHandler(promhttp.Handler())
}

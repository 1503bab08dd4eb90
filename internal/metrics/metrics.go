package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	RequestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_requests_latency_seconds",
			Help:    "Latency of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// Budgets and expenses
	RecordsWritten = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "records_written_total",
			Help: "Successful budget/expense mutations",
		},
		[]string{"entity", "action"}, // budget|expense, created|updated|deleted
	)
	RecordsFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "records_failed_total",
			Help: "Budget/expense mutations rejected by validation or storage",
		},
		[]string{"entity"},
	)

	// Reports
	ReportsGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reports_generated_total",
			Help: "Reports served",
		},
		[]string{"kind"}, // monthly|weekly
	)

	initOnce sync.Once
)

// /metrics endpoint'i için handler
var Handler = promhttp.Handler

// Init registers the collectors with the default registry. Safe to call more
// than once.
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestsTotal)
		prometheus.MustRegister(RequestLatency)
		prometheus.MustRegister(RecordsWritten)
		prometheus.MustRegister(RecordsFailed)
		prometheus.MustRegister(ReportsGenerated)
	})
}

package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "timectl",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"service", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "timectl",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path", "status"},
	)
	entriesSubmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "timectl",
			Subsystem: "timesheet",
			Name:      "entries_submitted_total",
			Help:      "Accepted timesheet submissions.",
		},
		[]string{"service", "project"},
	)
	submissionFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "timectl",
			Subsystem: "timesheet",
			Name:      "submission_failures_total",
			Help:      "Rejected timesheet submissions by validation reason.",
		},
		[]string{"service", "reason"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, entriesSubmitted, submissionFailures)
	})
}

func RecordHTTPRequest(service, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(service, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(service, method, path, statusLabel).Observe(duration.Seconds())
}

func RecordSubmission(service, project string) {
	RegisterMetrics()
	entriesSubmitted.WithLabelValues(service, project).Inc()
}

func RecordSubmissionFailure(service, reason string) {
	RegisterMetrics()
	submissionFailures.WithLabelValues(service, reason).Inc()
}

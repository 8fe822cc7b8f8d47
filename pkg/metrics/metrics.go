package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "crm"

var (
	DocumentsGenerated = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: namespace, Subsystem: "documents", Name: "generated_total", Help: "Number of documents streamed and persisted."},
	)
	DocumentFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Subsystem: "documents", Name: "failures_total", Help: "Number of document requests that failed, by failure kind."},
		[]string{"kind"},
	)
	DocumentSize = prometheus.NewHistogram(
		prometheus.HistogramOpts{Namespace: namespace, Subsystem: "documents", Name: "size_bytes", Help: "Size of streamed PDF files.", Buckets: prometheus.ExponentialBuckets(1024, 2, 10)},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(DocumentsGenerated, DocumentFailures, DocumentSize)
	reg.MustRegister(RateLimitAllowed, RateLimitRejected)
}

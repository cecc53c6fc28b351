package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Collector struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	InFlightGauge   prometheus.Gauge

	ReportUploadsTotal  *prometheus.CounterVec
	AnalysesTotal       *prometheus.CounterVec
	AnalysisDuration    prometheus.Histogram
	AnalysisCacheHits   prometheus.Counter
	AnalysisCacheMisses prometheus.Counter
	VitalsRecordedTotal prometheus.Counter
}

// NewCollector registers every metric on reg. Pass prometheus.DefaultRegisterer
// in production and a fresh prometheus.NewRegistry() in tests.
func NewCollector(serviceName string, reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, path, and status code.",
		}, []string{"method", "path", "status"}),

		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: serviceName,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency distribution.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10, 30},
		}, []string{"method", "path", "status"}),

		InFlightGauge: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: serviceName,
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),

		ReportUploadsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "reports",
			Name:      "uploads_total",
			Help:      "Report uploads by final upload state.",
		}, []string{"state"}),

		AnalysesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "analysis",
			Name:      "requests_total",
			Help:      "Report analyses by outcome.",
		}, []string{"outcome"}),

		AnalysisDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: serviceName,
			Subsystem: "analysis",
			Name:      "duration_seconds",
			Help:      "Latency of calls to the AI gateway.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
		}),

		AnalysisCacheHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "analysis",
			Name:      "cache_hits_total",
			Help:      "Analyses answered from the result cache.",
		}),

		AnalysisCacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "analysis",
			Name:      "cache_misses_total",
			Help:      "Analyses that had to call the AI gateway.",
		}),

		VitalsRecordedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "vitals",
			Name:      "recorded_total",
			Help:      "Total vitals entries recorded.",
		}),
	}
}

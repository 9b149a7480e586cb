package metrics

import "github.com/prometheus/client_golang/prometheus"

// Extraction pipeline Prometheus metrics.
var (
	ExtractionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "factorvec",
			Name:      "extractions_total",
			Help:      "Total number of extraction passes",
		},
		[]string{"outcome"}, // "ok" / "fallback_empty" / "fallback_no_signals" / "fallback_panic"
	)

	ExtractionDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "factorvec",
			Name:      "extraction_duration_seconds",
			Help:      "Extraction pass duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)

	FactorsExtracted = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "factorvec",
			Name:      "factors_extracted",
			Help:      "Number of factors extracted per pass",
			Buckets:   []float64{1, 2, 4, 6, 8, 10, 15, 20, 25},
		},
	)

	VectorCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "factorvec",
			Name:      "vector_cache_total",
			Help:      "Feature-vector cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	CondenserRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "factorvec",
			Name:      "condenser_requests_total",
			Help:      "Total number of report condenser requests",
		},
		[]string{"model", "status"},
	)

	CondenserRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "factorvec",
			Name:      "condenser_request_duration_seconds",
			Help:      "Report condenser request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"model"},
	)
)

var extractionMetricsRegistered bool

// RegisterExtractionMetrics registers extraction metrics. Must be called once from main.
func RegisterExtractionMetrics() {
	if extractionMetricsRegistered {
		return
	}
	prometheus.MustRegister(ExtractionsTotal)
	prometheus.MustRegister(ExtractionDuration)
	prometheus.MustRegister(FactorsExtracted)
	prometheus.MustRegister(VectorCacheTotal)
	prometheus.MustRegister(CondenserRequestsTotal)
	prometheus.MustRegister(CondenserRequestDuration)
	extractionMetricsRegistered = true
}

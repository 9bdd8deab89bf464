package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	InferenceRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agrisight_inference_requests_total",
			Help: "Inference gateway calls by provider, model and outcome",
		},
		[]string{"provider", "model", "outcome"},
	)

	InferenceDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "agrisight_inference_duration_seconds",
			Help:    "Inference gateway call latency",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10), // 100ms to ~1min
		},
		[]string{"provider", "model"},
	)

	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agrisight_analyses_total",
			Help: "Analysis operations by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	RiskLevelsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agrisight_risk_levels_total",
			Help: "Crop insight results per risk band",
		},
		[]string{"level"},
	)
)

func ObserveInference(provider, model, outcome string, d time.Duration) {
	InferenceRequestsTotal.WithLabelValues(provider, model, outcome).Inc()
	InferenceDuration.WithLabelValues(provider, model).Observe(d.Seconds())
}

func ObserveAnalysis(operation, outcome string) {
	AnalysesTotal.WithLabelValues(operation, outcome).Inc()
}

func ObserveRiskLevel(level string) {
	RiskLevelsTotal.WithLabelValues(level).Inc()
}

package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the Recommend HTTP handler, including catalog and profile loads.
	RecommendLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "menu_recommend_latency_seconds",
		Help:    "Latency of the dish recommendation handler",
		Buckets: prometheus.DefBuckets,
	})

	RecommendRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "menu_recommend_requests_total",
		Help: "Total number of dish recommendation requests by endpoint and outcome",
	}, []string{"endpoint", "outcome"})
)

func Init() {
	prometheus.MustRegister(
		RecommendLatency,
		RecommendRequests,
	)
}

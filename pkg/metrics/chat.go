package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the chat message HTTP handler
	ChatMessageLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "chat_message_latency_seconds",
		Help:    "Latency of the chat message handler",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of recommendation requests served
	RecommendationRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "recommendation_requests_total",
		Help: "Total number of recommendation requests",
	})

	// Total number of prediction requests by model
	PredictionRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "prediction_requests_total",
		Help: "Total number of prediction requests by model",
	}, []string{"model"})
)

func Init() {
	prometheus.MustRegister(
		ChatMessageLatency,
		RecommendationRequests,
		PredictionRequests,
	)
}

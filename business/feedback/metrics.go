package feedback

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	FeedbackEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatbot_feedback_events_total",
			Help: "Count of chat feedback events by rating.",
		},
		[]string{"rating"},
	)

	TrainingRunsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chatbot_training_runs_total",
			Help: "Count of completed daily training runs.",
		},
	)
)

func init() {
	prometheus.MustRegister(FeedbackEventsTotal, TrainingRunsTotal)
}

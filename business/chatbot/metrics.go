package chatbot

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	MessagesAnalyzedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatbot_messages_analyzed_total",
			Help: "Count of analyzed chat messages by intent, conversation state, and urgency.",
		},
		[]string{"intent", "state", "urgency"},
	)
)

func init() {
	prometheus.MustRegister(MessagesAnalyzedTotal)
}

package domain

import "time"

// Sender id 0 is reserved for the assistant itself.
const AssistantSenderID uint = 0

type Message struct {
	Text      string    `json:"text"`
	SenderID  uint      `json:"sender_id"`
	Timestamp time.Time `json:"timestamp"`
}

// Conversation states derived from the history tail.
const (
	ConversationNew     = "new"
	ConversationOngoing = "ongoing"
	ConversationResumed = "resumed"
)

// Urgency levels.
const (
	UrgencyHigh   = "high"
	UrgencyNormal = "normal"
)

// Topic continuity outcomes.
const (
	TopicContinued = "continued"
	TopicNew       = "new_topic"
)

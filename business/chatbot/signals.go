package chatbot

import (
	"strings"
	"time"
	"unicode"

	"eduPulse/domain"
)

// A gap above this between the last message and now means the user is
// resuming an earlier conversation.
const resumeGap = 3600 * time.Second

// Topic continuity looks at the last N history messages and flags
// continuation when strictly more than minSharedWords words overlap.
const (
	continuityWindow = 3
	minSharedWords   = 2
)

var urgencyKeywords = []string{
	"urgent",
	"urgence",
	"vite",
	"rapidement",
	"immédiat",
	"tout de suite",
	"asap",
	"emergency",
	"bloqué",
}

// TrackConversationState classifies the conversation from the history tail.
// It is a pure classification, re-derived on every call.
func TrackConversationState(history []domain.Message, now time.Time) string {
	if len(history) == 0 {
		return domain.ConversationNew
	}
	last := history[len(history)-1]
	if now.Sub(last.Timestamp) > resumeGap {
		return domain.ConversationResumed
	}
	return domain.ConversationOngoing
}

// DetectUrgency flags any urgency keyword hit, case-insensitive.
func DetectUrgency(message string) string {
	lower := strings.ToLower(message)
	for _, kw := range urgencyKeywords {
		if strings.Contains(lower, kw) {
			return domain.UrgencyHigh
		}
	}
	return domain.UrgencyNormal
}

// CheckTopicContinuity compares the current message vocabulary against the
// last few history messages.
func CheckTopicContinuity(message string, history []domain.Message) string {
	if len(history) == 0 {
		return domain.TopicNew
	}

	start := len(history) - continuityWindow
	if start < 0 {
		start = 0
	}

	recent := make(map[string]struct{})
	for _, m := range history[start:] {
		for _, w := range tokenize(m.Text) {
			recent[w] = struct{}{}
		}
	}

	shared := 0
	seen := make(map[string]struct{})
	for _, w := range tokenize(message) {
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		if _, ok := recent[w]; ok {
			shared++
		}
	}

	if shared > minSharedWords {
		return domain.TopicContinued
	}
	return domain.TopicNew
}

func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

package prediction

import (
	"math"

	"eduPulse/domain"
)

// Confidence bounds for the completion-time heuristic. This is a bounded
// completeness measure, not a statistical interval.
const (
	minConfidence = 0.3
	maxConfidence = 0.95
)

// estimateCompletion combines the feature vector with the weight table
// into a predicted-hours value, floored at zero.
func estimateCompletion(features map[string]float64, weights map[string]float64, completeness float64) domain.CompletionEstimate {
	hours := 0.0
	for name, value := range features {
		hours += weights[name] * value
	}
	if hours < 0 {
		hours = 0
	}

	confidence := completeness
	if confidence < minConfidence {
		confidence = minConfidence
	}
	if confidence > maxConfidence {
		confidence = maxConfidence
	}

	return domain.CompletionEstimate{
		EstimatedHours:      round1(hours),
		Confidence:          round2(confidence),
		Factors:             features,
		RecommendedSchedule: suggestSchedule(hours, features[FeatTimeAvailability]),
	}
}

// suggestSchedule splits the estimate over weeks based on the user's
// observed daily availability, defaulting to a 5 hours/week pace.
func suggestSchedule(totalHours, dailyAvailabilityHours float64) domain.ScheduleSuggestion {
	hoursPerWeek := 5.0
	if dailyAvailabilityHours > 0 {
		hoursPerWeek = dailyAvailabilityHours * 7
	}
	if hoursPerWeek > totalHours && totalHours > 0 {
		hoursPerWeek = totalHours
	}

	weeks := 1
	if hoursPerWeek > 0 && totalHours > 0 {
		weeks = int(math.Ceil(totalHours / hoursPerWeek))
	}

	return domain.ScheduleSuggestion{
		HoursPerWeek:   round1(hoursPerWeek),
		EstimatedWeeks: weeks,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

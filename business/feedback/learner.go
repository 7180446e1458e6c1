package feedback

import (
	"context"
	"fmt"
	"time"

	"eduPulse/domain"
	"eduPulse/pkg/logger"
)

// ---- Repository interfaces ----

type InteractionRepository interface {
	Save(ctx context.Context, it domain.Interaction) error
	AttachFeedback(ctx context.Context, id string, satisfaction *int, helpful *bool) error
	ListBetween(ctx context.Context, from, to time.Time) ([]domain.Interaction, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// WeightStore reads and atomically replaces whole weight maps.
type WeightStore interface {
	Get(ctx context.Context, model string) (map[string]float64, int, error)
	Replace(ctx context.Context, model string, weights map[string]float64, version int) error
}

// Learner closes the loop: it records every exchange and feeds rated
// interactions back into the intent bias table.
type Learner struct {
	interactions InteractionRepository
	weights      WeightStore
}

func NewLearner(interactions InteractionRepository, weights WeightStore) *Learner {
	return &Learner{
		interactions: interactions,
		weights:      weights,
	}
}

// Record appends one exchange to the interaction log.
func (l *Learner) Record(ctx context.Context, it domain.Interaction) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	if it.ID == "" {
		return fmt.Errorf("interaction id is required")
	}

	if err := l.interactions.Save(ctx, it); err != nil {
		return fmt.Errorf("failed to save interaction: %w", err)
	}

	return nil
}

// RecordFeedback attaches satisfaction or helpfulness to an existing
// interaction.
func (l *Learner) RecordFeedback(ctx context.Context, interactionID string, satisfaction *int, helpful *bool) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	if interactionID == "" {
		return fmt.Errorf("interaction id is required")
	}
	if satisfaction == nil && helpful == nil {
		return fmt.Errorf("feedback requires satisfaction or helpful")
	}
	if satisfaction != nil && (*satisfaction < 1 || *satisfaction > 5) {
		return fmt.Errorf("satisfaction must be between 1 and 5")
	}

	if err := l.interactions.AttachFeedback(ctx, interactionID, satisfaction, helpful); err != nil {
		return fmt.Errorf("failed to attach feedback: %w", err)
	}

	rating := "unrated"
	if positive, rated := rateInteraction(satisfaction, helpful); rated {
		if positive {
			rating = "positive"
		} else {
			rating = "negative"
		}
	}

	FeedbackEventsTotal.WithLabelValues(rating).Inc()

	logger.Debug("chat_feedback", "interaction_id", interactionID, "rating", rating)

	return nil
}

// rateInteraction maps feedback to a positive/negative signal. Helpful
// wins over the star rating when both are present.
func rateInteraction(satisfaction *int, helpful *bool) (positive bool, rated bool) {
	if helpful != nil {
		return *helpful, true
	}
	if satisfaction != nil {
		if *satisfaction >= 4 {
			return true, true
		}
		if *satisfaction <= 2 {
			return false, true
		}
	}
	return false, false
}

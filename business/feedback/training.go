package feedback

import (
	"context"
	"fmt"
	"time"

	"eduPulse/domain"
	"eduPulse/pkg/logger"
)

// Bias multipliers stay within this range, matching the classifier's clamp.
const (
	minBias = 0.5
	maxBias = 2.0
)

// A bias only reaches its full pull once an intent has this many rated
// interactions in the window; below that the pull is scaled down.
const ratedSaturation = 20

type TrainingReport struct {
	Day          string         `json:"day"`
	Interactions int            `json:"interactions"`
	Rated        int            `json:"rated"`
	Updated      map[string]int `json:"updated"` // pattern key -> rated count
	Purged       int64          `json:"purged"`
}

// RunDailyTraining re-derives the intent bias table from the retained
// interaction window ending at the given UTC day, then ages out rows past
// retention. Success counts are kept per matched pattern, so each
// pattern-to-intent association moves independently of its siblings.
// Biases are recomputed from scratch each run, so triggering the same day
// twice swaps in the same map. The whole map is replaced in one write; a
// failed update leaves the prior table intact.
func (l *Learner) RunDailyTraining(ctx context.Context, day time.Time, retention time.Duration) (TrainingReport, error) {
	if err := ctx.Err(); err != nil {
		return TrainingReport{}, fmt.Errorf("context error: %w", err)
	}
	if retention <= 0 {
		retention = 30 * 24 * time.Hour
	}

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	to := dayStart.Add(24 * time.Hour)
	from := to.Add(-retention)

	report := TrainingReport{
		Day:     dayStart.Format("2006-01-02"),
		Updated: map[string]int{},
	}

	rows, err := l.interactions.ListBetween(ctx, from, to)
	if err != nil {
		return report, fmt.Errorf("failed to list interactions: %w", err)
	}
	report.Interactions = len(rows)

	type tally struct {
		positive int
		rated    int
	}
	tallies := map[string]*tally{}
	for _, it := range rows {
		positive, rated := rateInteraction(it.Satisfaction, it.Helpful)
		if !rated {
			continue
		}
		report.Rated++
		for _, key := range matchedPatterns(it) {
			t, ok := tallies[key]
			if !ok {
				t = &tally{}
				tallies[key] = t
			}
			t.rated++
			if positive {
				t.positive++
			}
		}
	}

	_, version, err := l.weights.Get(ctx, domain.ModelIntentBias)
	if err != nil {
		return report, fmt.Errorf("failed to load intent bias table: %w", err)
	}

	next := make(map[string]float64, len(tallies))
	for key, t := range tallies {
		rate := float64(t.positive) / float64(t.rated)
		target := minBias + (maxBias-minBias)*rate

		// damp the pull toward the target for thin evidence
		volume := float64(t.rated) / ratedSaturation
		if volume > 1 {
			volume = 1
		}

		next[key] = clamp(1.0+(target-1.0)*volume, minBias, maxBias)
		report.Updated[key] = t.rated
	}

	if err := l.weights.Replace(ctx, domain.ModelIntentBias, next, version+1); err != nil {
		return report, fmt.Errorf("failed to replace intent bias table: %w", err)
	}

	purged, err := l.interactions.DeleteOlderThan(ctx, from)
	if err != nil {
		// weights already swapped; retention failure is not fatal
		logger.Warn("failed to purge old interactions", "error", err)
	} else {
		report.Purged = purged
	}

	TrainingRunsTotal.Inc()

	logger.Info("daily_training_complete",
		"day", report.Day,
		"interactions", report.Interactions,
		"rated", report.Rated,
		"patterns_updated", len(report.Updated),
		"purged", report.Purged,
	)

	return report, nil
}

// matchedPatterns reads the pattern keys the classifier logged with the
// interaction. The jsonb round trip turns the slice into []any.
func matchedPatterns(it domain.Interaction) []string {
	raw, ok := it.Context["matched_patterns"]
	if !ok {
		return nil
	}
	switch v := raw.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, p := range v {
			if s, ok := p.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

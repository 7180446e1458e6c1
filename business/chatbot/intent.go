package chatbot

import (
	"fmt"
	"math"
	"regexp"

	"eduPulse/domain"
)

// Each pattern match adds this much to the intent's score. The caller-facing
// confidence is score/10, so one match lands around 1.0.
const patternScore = 10

// Bias multipliers from the nightly training step are clamped to this range
// so feedback can never silence or dominate an intent.
const (
	minBias = 0.5
	maxBias = 2.0
)

type intentEntry struct {
	name     string
	patterns []*regexp.Regexp
	// keys identify each pattern as "<intent>:<index>". The bias table and
	// the interaction log both use these, so the catalog order is part of
	// the stored data contract.
	keys []string
}

// IntentClassifier scores a fixed intent catalog against a message.
// Catalog order is the tie-break: on equal scores the first declared
// intent wins.
type IntentClassifier struct {
	catalog []intentEntry
}

func NewIntentClassifier() *IntentClassifier {
	c := &IntentClassifier{
		catalog: []intentEntry{
			{domain.IntentQuestionProgress, compileAll(
				`où en suis`,
				`ma progression`,
				`mon avancement`,
				`combien.*(terminé|restant)`,
				`my progress`,
			), nil},
			{domain.IntentNeedHelp, compileAll(
				`\baide\b`,
				`aidez[- ]moi`,
				`je ne comprends pas`,
				`comment (faire|puis-je)`,
				`\bhelp\b`,
			), nil},
			{domain.IntentCourseRecommendation, compileAll(
				`recommand`,
				`quel cours`,
				`suggér|suggere`,
				`recommend`,
				`which course`,
			), nil},
			{domain.IntentAchievementQuery, compileAll(
				`badge`,
				`certificat`,
				`récompense`,
				`mes points`,
				`achievement`,
			), nil},
			{domain.IntentSchedulePlanning, compileAll(
				`planifi`,
				`planning`,
				`emploi du temps`,
				`organiser`,
				`schedule`,
			), nil},
			{domain.IntentTechnicalIssue, compileAll(
				`\bbug\b`,
				`erreur`,
				`ne (fonctionne|marche) (pas|plus)`,
				`problème technique`,
				`\berror\b`,
			), nil},
		},
	}
	for i := range c.catalog {
		entry := &c.catalog[i]
		entry.keys = make([]string, len(entry.patterns))
		for p := range entry.patterns {
			entry.keys[p] = fmt.Sprintf("%s:%d", entry.name, p)
		}
	}
	return c
}

func compileAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, regexp.MustCompile(`(?i)`+p))
	}
	return out
}

// Classify scores the catalog with neutral bias.
func (c *IntentClassifier) Classify(message string) domain.IntentResult {
	return c.ClassifyWeighted(message, nil)
}

// ClassifyWeighted applies per-pattern bias multipliers, keyed by the
// pattern's catalog key, on top of the fixed increment. A missing entry
// means neutral 1.0, so each pattern-to-intent association is strengthened
// or weakened on its own.
func (c *IntentClassifier) ClassifyWeighted(message string, bias map[string]float64) domain.IntentResult {
	best := domain.IntentResult{Intent: domain.IntentDefault, Score: 0}

	for _, entry := range c.catalog {
		score := 0
		var matched []string
		for i, re := range entry.patterns {
			if !re.MatchString(message) {
				continue
			}
			increment := patternScore
			if m, ok := bias[entry.keys[i]]; ok {
				increment = int(math.Round(patternScore * clampBias(m)))
			}
			score += increment
			matched = append(matched, entry.keys[i])
		}

		// strictly greater keeps the first declared intent on ties
		if score > best.Score {
			best = domain.IntentResult{Intent: entry.name, Score: score, Patterns: matched}
		}
	}

	return best
}

func clampBias(m float64) float64 {
	if m < minBias {
		return minBias
	}
	if m > maxBias {
		return maxBias
	}
	return m
}

// IntentNames returns the catalog in declaration order.
func (c *IntentClassifier) IntentNames() []string {
	names := make([]string, 0, len(c.catalog)+1)
	for _, entry := range c.catalog {
		names = append(names, entry.name)
	}
	return append(names, domain.IntentDefault)
}

package prediction

import (
	"sort"

	"eduPulse/domain"
)

// Risk level cut points. Monotonic: [0,35) low, [35,65) medium, [65,100] high.
const (
	riskMediumFrom = 35.0
	riskHighFrom   = 65.0
)

// A factor must contribute at least this many points to count as a main
// factor.
const mainFactorFloor = 8.0

// Normalization caps for raw factor inputs.
const (
	loginDaysCap    = 30.0
	difficultyCap   = 10.0
	supportCap      = 5.0
	courseSwitchCap = 5.0
)

var factorActions = map[string]string{
	FactorDaysSinceLogin:   "Envoyer un rappel de reprise personnalisé",
	FactorCompletionTrend:  "Proposer un objectif de progression plus court",
	FactorEngagement:       "Suggérer des sessions d'apprentissage plus courtes",
	FactorDifficulty:       "Orienter vers des contenus de niveau intermédiaire",
	FactorSupportFrequency: "Planifier un suivi avec un tuteur",
	FactorCourseSwitching:  "Aider à prioriser un seul cours à la fois",
}

// churnFactors normalizes the six risk inputs to [0,1].
func churnFactors(current, baseline domain.ActivityStats, completionRate, baselineCompletionRate float64) map[string]float64 {
	factors := make(map[string]float64, 6)

	factors[FactorDaysSinceLogin] = minFloat(float64(current.DaysSinceLogin)/loginDaysCap, 1)

	trend := baselineCompletionRate - completionRate
	if trend < 0 {
		trend = 0
	}
	factors[FactorCompletionTrend] = minFloat(trend, 1)

	baseMinutes := baseline.AvgDailyMinutes
	if baseMinutes == 0 {
		baseMinutes = 1 // zero baseline treated as 1
	}
	decline := 1 - current.AvgDailyMinutes/baseMinutes
	if decline < 0 {
		decline = 0
	}
	factors[FactorEngagement] = minFloat(decline, 1)

	factors[FactorDifficulty] = minFloat(float64(current.DifficultyEvents)/difficultyCap, 1)
	factors[FactorSupportFrequency] = minFloat(float64(current.SupportRequests)/supportCap, 1)
	factors[FactorCourseSwitching] = minFloat(float64(current.CourseSwitches)/courseSwitchCap, 1)

	return factors
}

// assessChurn combines the normalized factors with the weight table into
// a risk score in [0,100] with level, main factors and suggested actions.
func assessChurn(factors map[string]float64, weights map[string]float64, completeness float64) domain.RiskAssessment {
	type contribution struct {
		name   string
		points float64
	}

	score := 0.0
	contributions := make([]contribution, 0, len(factors))
	for name, value := range factors {
		points := weights[name] * value * 100
		score += points
		contributions = append(contributions, contribution{name, points})
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	// map iteration order is random, so ties need the name as a tiebreak
	sort.SliceStable(contributions, func(i, j int) bool {
		if contributions[i].points != contributions[j].points {
			return contributions[i].points > contributions[j].points
		}
		return contributions[i].name < contributions[j].name
	})

	mainFactors := []string{}
	actions := []string{}
	for _, c := range contributions {
		if c.points < mainFactorFloor {
			break
		}
		mainFactors = append(mainFactors, c.name)
		if a, ok := factorActions[c.name]; ok {
			actions = append(actions, a)
		}
	}

	confidence := completeness
	if confidence < minConfidence {
		confidence = minConfidence
	}
	if confidence > maxConfidence {
		confidence = maxConfidence
	}

	return domain.RiskAssessment{
		RiskScore:          round1(score),
		RiskLevel:          riskLevel(score),
		MainFactors:        mainFactors,
		RecommendedActions: actions,
		Confidence:         round2(confidence),
	}
}

func riskLevel(score float64) string {
	switch {
	case score < riskMediumFrom:
		return domain.RiskLow
	case score < riskHighFrom:
		return domain.RiskMedium
	default:
		return domain.RiskHigh
	}
}

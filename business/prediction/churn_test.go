package prediction

import (
	"testing"

	"eduPulse/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChurnFactors_AllQuietIsZero(t *testing.T) {
	current := domain.ActivityStats{AvgDailyMinutes: 30}
	baseline := domain.ActivityStats{AvgDailyMinutes: 30}

	factors := churnFactors(current, baseline, 0.5, 0.5)

	for name, v := range factors {
		assert.Zero(t, v, "factor %s", name)
	}
}

func TestChurnFactors_NormalizedAndCapped(t *testing.T) {
	current := domain.ActivityStats{
		DaysSinceLogin:   60, // above the 30-day cap
		AvgDailyMinutes:  10,
		DifficultyEvents: 5,
		SupportRequests:  10, // above the cap of 5
		CourseSwitches:   2,
	}
	baseline := domain.ActivityStats{AvgDailyMinutes: 40}

	factors := churnFactors(current, baseline, 0.2, 0.6)

	assert.InDelta(t, 1.0, factors[FactorDaysSinceLogin], 1e-9)
	assert.InDelta(t, 0.4, factors[FactorCompletionTrend], 1e-9)
	assert.InDelta(t, 0.75, factors[FactorEngagement], 1e-9)
	assert.InDelta(t, 0.5, factors[FactorDifficulty], 1e-9)
	assert.InDelta(t, 1.0, factors[FactorSupportFrequency], 1e-9)
	assert.InDelta(t, 0.4, factors[FactorCourseSwitching], 1e-9)
}

func TestChurnFactors_ZeroBaselineMinutesTreatedAsOne(t *testing.T) {
	current := domain.ActivityStats{AvgDailyMinutes: 0.5}
	baseline := domain.ActivityStats{}

	factors := churnFactors(current, baseline, 0, 0)
	assert.InDelta(t, 0.5, factors[FactorEngagement], 1e-9)
}

func TestChurnFactors_ImprovingTrendIsNotRisk(t *testing.T) {
	factors := churnFactors(domain.ActivityStats{AvgDailyMinutes: 30}, domain.ActivityStats{AvgDailyMinutes: 30}, 0.8, 0.4)
	assert.Zero(t, factors[FactorCompletionTrend])
}

func TestAssessChurn_ScoreBounds(t *testing.T) {
	weights := DefaultChurnWeights()

	quiet := assessChurn(map[string]float64{}, weights, 1)
	assert.Zero(t, quiet.RiskScore)
	assert.Equal(t, domain.RiskLow, quiet.RiskLevel)

	worst := map[string]float64{
		FactorDaysSinceLogin:   1,
		FactorCompletionTrend:  1,
		FactorEngagement:       1,
		FactorDifficulty:       1,
		FactorSupportFrequency: 1,
		FactorCourseSwitching:  1,
	}
	extreme := assessChurn(worst, weights, 1)
	assert.InDelta(t, 100.0, extreme.RiskScore, 1e-9)
	assert.Equal(t, domain.RiskHigh, extreme.RiskLevel)
}

func TestAssessChurn_MainFactorsSortedByContribution(t *testing.T) {
	weights := DefaultChurnWeights()
	factors := map[string]float64{
		FactorDaysSinceLogin: 0.4, // 10 points
		FactorEngagement:     0.9, // 18 points
		FactorDifficulty:     0.2, // 3 points, below the floor
	}

	res := assessChurn(factors, weights, 1)

	require.Len(t, res.MainFactors, 2)
	assert.Equal(t, FactorEngagement, res.MainFactors[0])
	assert.Equal(t, FactorDaysSinceLogin, res.MainFactors[1])
	assert.Len(t, res.RecommendedActions, 2)
	assert.InDelta(t, 31.0, res.RiskScore, 1e-9)
	assert.Equal(t, domain.RiskLow, res.RiskLevel)
}

func TestAssessChurn_EqualContributionsOrderedByName(t *testing.T) {
	weights := DefaultChurnWeights()
	// both contribute exactly 10 points
	factors := map[string]float64{
		FactorDaysSinceLogin:   0.4,
		FactorSupportFrequency: 1.0,
	}

	for i := 0; i < 20; i++ {
		res := assessChurn(factors, weights, 1)
		require.Len(t, res.MainFactors, 2)
		assert.Equal(t, FactorDaysSinceLogin, res.MainFactors[0])
		assert.Equal(t, FactorSupportFrequency, res.MainFactors[1])
	}
}

func TestRiskLevel_MonotonicCutPoints(t *testing.T) {
	assert.Equal(t, domain.RiskLow, riskLevel(0))
	assert.Equal(t, domain.RiskLow, riskLevel(34.9))
	assert.Equal(t, domain.RiskMedium, riskLevel(35))
	assert.Equal(t, domain.RiskMedium, riskLevel(64.9))
	assert.Equal(t, domain.RiskHigh, riskLevel(65))
	assert.Equal(t, domain.RiskHigh, riskLevel(100))
}

func TestAssessChurn_ConfidenceClamped(t *testing.T) {
	res := assessChurn(map[string]float64{}, DefaultChurnWeights(), 0.1)
	assert.InDelta(t, 0.3, res.Confidence, 1e-9)

	res = assessChurn(map[string]float64{}, DefaultChurnWeights(), 1.0)
	assert.InDelta(t, 0.95, res.Confidence, 1e-9)
}

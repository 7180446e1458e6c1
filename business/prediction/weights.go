package prediction

// Feature names shared by the weight tables and the feature builders.
const (
	FeatAvgCompletionTime = "avg_completion_time"
	FeatLearningSpeed     = "learning_speed"
	FeatConsistency       = "consistency_score"
	FeatComplexity        = "course_complexity"
	FeatWorkload          = "current_workload"
	FeatTimeAvailability  = "time_availability"
	FeatPreferredTime     = "preferred_time_of_day"
	FeatDistraction       = "distraction_estimate"
)

// Churn risk factor names.
const (
	FactorDaysSinceLogin   = "days_since_login"
	FactorCompletionTrend  = "completion_trend"
	FactorEngagement       = "engagement_decline"
	FactorDifficulty       = "difficulty_encounters"
	FactorSupportFrequency = "support_frequency"
	FactorCourseSwitching  = "course_switching"
)

// DefaultCompletionWeights is the static weight table for the
// completion-time model - hours contributed per feature unit.
func DefaultCompletionWeights() map[string]float64 {
	return map[string]float64{
		FeatAvgCompletionTime: 0.5,
		FeatLearningSpeed:     -3.0,
		FeatConsistency:       -2.0,
		FeatComplexity:        1.8,
		FeatWorkload:          1.2,
		FeatTimeAvailability:  -0.6,
		FeatPreferredTime:     0.8,
		FeatDistraction:       1.5,
	}
}

// DefaultChurnWeights sums to 1 so the weighted factors map onto [0,100].
func DefaultChurnWeights() map[string]float64 {
	return map[string]float64{
		FactorDaysSinceLogin:   0.25,
		FactorCompletionTrend:  0.20,
		FactorEngagement:       0.20,
		FactorDifficulty:       0.15,
		FactorSupportFrequency: 0.10,
		FactorCourseSwitching:  0.10,
	}
}

// mergeWeights overlays stored weights onto the defaults, keeping the
// default for any feature the stored table does not name.
func mergeWeights(defaults, stored map[string]float64) map[string]float64 {
	if len(stored) == 0 {
		return defaults
	}
	out := make(map[string]float64, len(defaults))
	for k, v := range defaults {
		out[k] = v
	}
	for k, v := range stored {
		if _, known := out[k]; known {
			out[k] = v
		}
	}
	return out
}

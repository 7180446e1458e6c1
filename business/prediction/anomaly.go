package prediction

import "eduPulse/domain"

// Anomaly dimensions and their per-dimension ratio thresholds. A value
// falling below threshold * baseline is flagged.
var anomalyDimensions = []struct {
	name      string
	threshold float64
	value     func(domain.ActivityStats) float64
}{
	{"activity_level", 0.5, func(s domain.ActivityStats) float64 {
		return s.AvgDailyMinutes
	}},
	{"quiz_performance", 0.8, func(s domain.ActivityStats) float64 {
		return s.QuizAvgScore
	}},
	{"engagement_frequency", 0.6, func(s domain.ActivityStats) float64 {
		if s.WindowDays == 0 {
			return 0
		}
		return float64(s.ActiveDays) / float64(s.WindowDays)
	}},
	{"login_consistency", 0.7, func(s domain.ActivityStats) float64 {
		if s.WindowDays == 0 {
			return 0
		}
		return float64(s.LoginCount) / float64(s.WindowDays)
	}},
}

// DetectAnomalies compares the current window against the baseline window
// per dimension. A zero baseline is treated as 1 to avoid division by zero.
func DetectAnomalies(current, baseline domain.ActivityStats) []domain.Anomaly {
	out := make([]domain.Anomaly, 0, len(anomalyDimensions))

	for _, dim := range anomalyDimensions {
		cur := dim.value(current)
		base := dim.value(baseline)
		if base == 0 {
			base = 1
		}

		ratio := cur / base

		out = append(out, domain.Anomaly{
			Dimension: dim.name,
			Current:   cur,
			Baseline:  base,
			Ratio:     ratio,
			Threshold: dim.threshold,
			Flagged:   ratio < dim.threshold,
		})
	}

	return out
}

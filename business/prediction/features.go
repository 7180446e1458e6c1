package prediction

import (
	"eduPulse/domain"
)

// Complexity sub-model weights; the combined score is capped at this value.
const complexityCap = 10.0

// CourseComplexity combines structural course attributes into a 0..10
// difficulty estimate.
func CourseComplexity(course domain.Course) float64 {
	score := course.DurationHours*0.15 +
		float64(course.LessonCount)*0.08 +
		float64(course.QuizCount)*0.12 +
		float64(domain.LevelScore(course.Level))*1.5 +
		float64(course.PrerequisiteCount)*0.5

	if score > complexityCap {
		return complexityCap
	}
	if score < 0 {
		return 0
	}
	return score
}

// timeBucketFromHour encodes an hour of day into [0,1].
func timeBucketFromHour(hour int) float64 {
	switch {
	case hour < 6:
		return 0.0
	case hour < 12:
		return 0.33
	case hour < 18:
		return 0.66
	default:
		return 1.0
	}
}

// completionFeatures builds the per-request feature vector for the
// completion-time model. The returned completeness is the fraction of
// features backed by real data rather than defaults.
func completionFeatures(
	course domain.Course,
	profile domain.UserProfile,
	stats domain.ActivityStats,
	history []domain.CourseActivity,
) (map[string]float64, float64) {
	features := make(map[string]float64, 8)
	present := 0.0
	total := 8.0

	avgHours := 0.0
	completed := 0
	for _, h := range history {
		if h.Status == domain.EnrollmentCompleted && h.HoursSpent > 0 {
			avgHours += h.HoursSpent
			completed++
		}
	}
	if completed > 0 {
		avgHours /= float64(completed)
		present += 2 // avg time and learning speed both observed
	} else {
		// no history: assume the course's own duration as the baseline
		avgHours = course.DurationHours
	}
	features[FeatAvgCompletionTime] = avgHours
	if avgHours > 0 {
		features[FeatLearningSpeed] = 1 / avgHours
	}

	if stats.WindowDays > 0 {
		features[FeatConsistency] = float64(stats.ActiveDays) / float64(stats.WindowDays)
		present++
	}

	features[FeatComplexity] = CourseComplexity(course)
	present++

	features[FeatWorkload] = float64(profile.CoursesInProgress)
	if profile.CoursesInProgress > 0 {
		present++
	}

	if stats.AvgDailyMinutes > 0 {
		features[FeatTimeAvailability] = stats.AvgDailyMinutes / 60
		present++
	}

	if !profile.LastActivityAt.IsZero() {
		features[FeatPreferredTime] = timeBucketFromHour(profile.LastActivityAt.Hour())
		present++
	}

	if stats.CourseSwitches > 0 {
		features[FeatDistraction] = minFloat(float64(stats.CourseSwitches)/5, 1)
		present++
	}

	return features, present / total
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

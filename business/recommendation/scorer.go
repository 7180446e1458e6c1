package recommendation

import "eduPulse/domain"

// Scoring constants. The base starts every candidate at the middle of the
// [0,100] scale; the adjustments below move it.
const (
	baseScore         = 50.0
	categoryBonus     = 15.0
	popularityBonus   = 10.0
	popularityLow     = 100
	popularityHigh    = 500
	ratingMidpoint    = 3.0
	ratingFactor      = 5.0
	difficultyPenalty = 20.0
	maxLevelGap       = 1
)

// LearnerProfile is the per-user input to scoring, derived from completion
// history.
type LearnerProfile struct {
	CompletedCategories map[string]struct{}
	EnrolledCourseIDs   map[uint64]struct{} // completed or in progress
	Level               int                 // 1..3, defaults to 2 when unknown
}

// ScoreCourse computes the relevance score for one candidate, clamped to
// [0,100].
func ScoreCourse(course domain.Course, profile LearnerProfile) float64 {
	score := baseScore

	for _, cat := range course.Categories {
		if _, ok := profile.CompletedCategories[cat]; ok {
			score += categoryBonus
		}
	}

	// both thresholds apply independently
	if course.StudentCount > popularityLow {
		score += popularityBonus
	}
	if course.StudentCount > popularityHigh {
		score += popularityBonus
	}

	score += (course.Rating - ratingMidpoint) * ratingFactor

	userLevel := profile.Level
	if userLevel == 0 {
		userLevel = domain.LevelScore("")
	}
	if domain.LevelScore(course.Level)-userLevel > maxLevelGap {
		score -= difficultyPenalty
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// DeriveLevel maps a user's completion history to a level score: the
// highest level completed, intermediate when there is no history.
func DeriveLevel(completed []domain.Course) int {
	level := 0
	for _, c := range completed {
		if s := domain.LevelScore(c.Level); s > level {
			level = s
		}
	}
	if level == 0 {
		return domain.LevelScore("")
	}
	return level
}

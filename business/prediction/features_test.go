package prediction

import (
	"testing"
	"time"

	"eduPulse/domain"

	"github.com/stretchr/testify/assert"
)

func TestCourseComplexity(t *testing.T) {
	course := domain.Course{
		DurationHours:     10,
		LessonCount:       20,
		QuizCount:         5,
		Level:             domain.LevelIntermediate,
		PrerequisiteCount: 1,
	}
	// 10*0.15 + 20*0.08 + 5*0.12 + 2*1.5 + 1*0.5 = 7.2
	assert.InDelta(t, 7.2, CourseComplexity(course), 1e-9)
}

func TestCourseComplexity_CappedAtTen(t *testing.T) {
	course := domain.Course{
		DurationHours:     100,
		LessonCount:       200,
		QuizCount:         50,
		Level:             domain.LevelAdvanced,
		PrerequisiteCount: 10,
	}
	assert.InDelta(t, 10.0, CourseComplexity(course), 1e-9)
}

func TestCourseComplexity_EmptyCourseScoresLevelOnly(t *testing.T) {
	// unknown level defaults to intermediate
	assert.InDelta(t, 3.0, CourseComplexity(domain.Course{}), 1e-9)
}

func TestTimeBucketFromHour(t *testing.T) {
	assert.Equal(t, 0.0, timeBucketFromHour(3))
	assert.Equal(t, 0.33, timeBucketFromHour(9))
	assert.Equal(t, 0.66, timeBucketFromHour(14))
	assert.Equal(t, 1.0, timeBucketFromHour(21))
}

func TestCompletionFeatures_NoHistoryUsesCourseDuration(t *testing.T) {
	course := domain.Course{DurationHours: 12, Level: domain.LevelIntermediate}

	features, completeness := completionFeatures(course, domain.UserProfile{}, domain.ActivityStats{}, nil)

	assert.InDelta(t, 12.0, features[FeatAvgCompletionTime], 1e-9)
	assert.InDelta(t, 1.0/12.0, features[FeatLearningSpeed], 1e-9)
	// only complexity is backed by real data
	assert.InDelta(t, 1.0/8.0, completeness, 1e-9)
}

func TestCompletionFeatures_FullDataRaisesCompleteness(t *testing.T) {
	course := domain.Course{DurationHours: 12, Level: domain.LevelIntermediate}
	profile := domain.UserProfile{
		CoursesInProgress: 2,
		LastActivityAt:    time.Date(2026, time.March, 10, 20, 0, 0, 0, time.UTC),
	}
	stats := domain.ActivityStats{
		WindowDays:      7,
		ActiveDays:      5,
		AvgDailyMinutes: 45,
		CourseSwitches:  2,
	}
	history := []domain.CourseActivity{
		{Status: domain.EnrollmentCompleted, HoursSpent: 8},
		{Status: domain.EnrollmentCompleted, HoursSpent: 12},
		{Status: domain.EnrollmentInProgress, HoursSpent: 3},
	}

	features, completeness := completionFeatures(course, profile, stats, history)

	assert.InDelta(t, 10.0, features[FeatAvgCompletionTime], 1e-9)
	assert.InDelta(t, 5.0/7.0, features[FeatConsistency], 1e-9)
	assert.InDelta(t, 2.0, features[FeatWorkload], 1e-9)
	assert.InDelta(t, 0.75, features[FeatTimeAvailability], 1e-9)
	assert.InDelta(t, 1.0, features[FeatPreferredTime], 1e-9)
	assert.InDelta(t, 0.4, features[FeatDistraction], 1e-9)
	assert.InDelta(t, 1.0, completeness, 1e-9)
}

func TestMergeWeights(t *testing.T) {
	defaults := DefaultCompletionWeights()

	merged := mergeWeights(defaults, map[string]float64{
		FeatComplexity: 2.5,
		"unknown_key":  9.9,
	})

	assert.InDelta(t, 2.5, merged[FeatComplexity], 1e-9)
	assert.InDelta(t, defaults[FeatWorkload], merged[FeatWorkload], 1e-9)
	_, hasUnknown := merged["unknown_key"]
	assert.False(t, hasUnknown, "unknown stored keys must be ignored")

	assert.Equal(t, defaults, mergeWeights(defaults, nil))
}

package domain

import "time"

// UserProfile is a read-only snapshot fetched per request, never cached
// across requests.
type UserProfile struct {
	UserID            uint      `gorm:"column:user_id;primaryKey" json:"user_id"`
	MembershipTier    string    `gorm:"column:membership_tier;default:free" json:"membership_tier"`
	CoursesInProgress int       `gorm:"column:courses_in_progress;default:0" json:"courses_in_progress"`
	LastActivityAt    time.Time `gorm:"column:last_activity_at" json:"last_activity_at"`
	PreferredLocale   string    `gorm:"column:preferred_locale;default:fr_FR" json:"preferred_locale"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}

// Enrollment statuses.
const (
	EnrollmentInProgress = "in_progress"
	EnrollmentCompleted  = "completed"
)

// CourseActivity is one historical enrollment record for a user.
type CourseActivity struct {
	ID          uint64     `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"column:user_id;not null;index" json:"user_id"`
	CourseID    uint64     `gorm:"column:course_id;not null" json:"course_id"`
	Status      string     `gorm:"column:status;not null" json:"status"`
	HoursSpent  float64    `gorm:"column:hours_spent;default:0" json:"hours_spent"`
	StartedAt   time.Time  `gorm:"column:started_at" json:"started_at"`
	CompletedAt *time.Time `gorm:"column:completed_at" json:"completed_at"`
}

func (CourseActivity) TableName() string {
	return "course_activities"
}

// ActivityStats aggregates a user's events over a day window.
type ActivityStats struct {
	WindowDays       int     `json:"window_days"`
	ActiveDays       int     `json:"active_days"`
	AvgDailyMinutes  float64 `json:"avg_daily_minutes"`
	LoginCount       int     `json:"login_count"`
	LessonViews      int     `json:"lesson_views"`
	QuizCount        int     `json:"quiz_count"`
	QuizAvgScore     float64 `json:"quiz_avg_score"`
	SupportRequests  int     `json:"support_requests"`
	DifficultyEvents int     `json:"difficulty_events"`
	CourseSwitches   int     `json:"course_switches"`
	DaysSinceLogin   int     `json:"days_since_login"`
}

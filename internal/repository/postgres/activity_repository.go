package postgres

import (
	"context"
	"fmt"
	"time"

	"eduPulse/domain"

	"gorm.io/gorm"
)

// activityEvent backs the aggregate stats queries. Rows are written by the
// platform's tracking pipeline; this repository only reads them.
type activityEvent struct {
	ID        uint64    `gorm:"primaryKey"`
	UserID    uint      `gorm:"column:user_id;index"`
	EventType string    `gorm:"column:event_type"` // login, lesson_view, quiz, support_request, course_switch, difficulty
	Value     float64   `gorm:"column:value"`      // quiz score, minutes spent
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (activityEvent) TableName() string {
	return "activity_events"
}

type ActivityRepository struct {
	DB *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{
		DB: db,
	}
}

// Stats aggregates one user's events over the trailing day window.
func (r *ActivityRepository) Stats(ctx context.Context, userID uint, windowDays int) (domain.ActivityStats, error) {
	if err := ctx.Err(); err != nil {
		return domain.ActivityStats{}, fmt.Errorf("context error: %w", err)
	}
	if windowDays <= 0 {
		windowDays = 7
	}

	since := time.Now().AddDate(0, 0, -windowDays)

	var events []activityEvent
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Order("created_at").
		Find(&events).Error
	if err != nil {
		return domain.ActivityStats{}, fmt.Errorf("failed to load activity events: %w", err)
	}

	return aggregateStats(events, windowDays, time.Now()), nil
}

// AllUserStats aggregates every active user's events over the window, for
// the clustering pass.
func (r *ActivityRepository) AllUserStats(ctx context.Context, windowDays int) (map[uint]domain.ActivityStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if windowDays <= 0 {
		windowDays = 30
	}

	since := time.Now().AddDate(0, 0, -windowDays)

	var events []activityEvent
	err := r.DB.WithContext(ctx).
		Where("created_at >= ?", since).
		Order("user_id, created_at").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load activity events: %w", err)
	}

	byUser := make(map[uint][]activityEvent)
	for _, ev := range events {
		byUser[ev.UserID] = append(byUser[ev.UserID], ev)
	}

	now := time.Now()
	out := make(map[uint]domain.ActivityStats, len(byUser))
	for userID, evs := range byUser {
		out[userID] = aggregateStats(evs, windowDays, now)
	}

	return out, nil
}

func (r *ActivityRepository) CompletionHistory(ctx context.Context, userID uint) ([]domain.CourseActivity, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var history []domain.CourseActivity
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("started_at").
		Find(&history).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load completion history: %w", err)
	}

	return history, nil
}

func aggregateStats(events []activityEvent, windowDays int, now time.Time) domain.ActivityStats {
	stats := domain.ActivityStats{
		WindowDays:     windowDays,
		DaysSinceLogin: windowDays, // until a login proves otherwise
	}

	days := make(map[string]struct{})
	totalMinutes := 0.0
	quizTotal := 0.0
	var lastLogin time.Time

	for _, ev := range events {
		days[ev.CreatedAt.Format("2006-01-02")] = struct{}{}

		switch ev.EventType {
		case "login":
			stats.LoginCount++
			if ev.CreatedAt.After(lastLogin) {
				lastLogin = ev.CreatedAt
			}
		case "lesson_view":
			stats.LessonViews++
			totalMinutes += ev.Value
		case "quiz":
			stats.QuizCount++
			quizTotal += ev.Value
		case "support_request":
			stats.SupportRequests++
		case "course_switch":
			stats.CourseSwitches++
		case "difficulty":
			stats.DifficultyEvents++
		}
	}

	stats.ActiveDays = len(days)
	if windowDays > 0 {
		stats.AvgDailyMinutes = totalMinutes / float64(windowDays)
	}
	if stats.QuizCount > 0 {
		stats.QuizAvgScore = quizTotal / float64(stats.QuizCount)
	}
	if !lastLogin.IsZero() {
		stats.DaysSinceLogin = int(now.Sub(lastLogin).Hours() / 24)
	}

	return stats
}

package recommendation

import (
	"context"
	"fmt"
	"sort"

	"eduPulse/domain"
	"eduPulse/pkg/logger"
	"eduPulse/pkg/metrics"
)

// ---- Repository interfaces ----

type CourseRepository interface {
	ListPublished(ctx context.Context, limit int) ([]domain.Course, error)
	FindByIDs(ctx context.Context, ids []uint64) ([]domain.Course, error)
}

type ActivityRepository interface {
	CompletionHistory(ctx context.Context, userID uint) ([]domain.CourseActivity, error)
}

// ---- Usecase / Service ----

type RecommendationService struct {
	courseRepo   CourseRepository
	activityRepo ActivityRepository
	candidateCap int
}

func NewRecommendationService(courseRepo CourseRepository, activityRepo ActivityRepository, candidateCap int) *RecommendationService {
	if candidateCap <= 0 {
		candidateCap = 100
	}
	return &RecommendationService{
		courseRepo:   courseRepo,
		activityRepo: activityRepo,
		candidateCap: candidateCap,
	}
}

// Recommend scores published courses for a user and returns the top
// candidates, descending by relevance. Equal scores keep catalog order.
// Data-access failures degrade to an empty list rather than surfacing to
// the chat caller.
func (s *RecommendationService) Recommend(ctx context.Context, userID uint, limit int) ([]domain.CourseRecommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if limit <= 0 {
		limit = 5
	}

	metrics.RecommendationRequests.Inc()

	candidates, err := s.courseRepo.ListPublished(ctx, s.candidateCap)
	if err != nil {
		logger.Warn("course catalog lookup failed, returning no recommendations", "user_id", userID, "error", err)
		return []domain.CourseRecommendation{}, nil
	}

	profile := s.learnerProfile(ctx, userID)

	scored := make([]domain.CourseRecommendation, 0, len(candidates))
	for _, course := range candidates {
		if _, enrolled := profile.EnrolledCourseIDs[course.ID]; enrolled {
			continue
		}
		scored = append(scored, domain.CourseRecommendation{
			CourseID:       course.ID,
			Title:          course.Title,
			RelevanceScore: ScoreCourse(course, profile),
			TimeInvestment: course.DurationHours,
			Difficulty:     course.Level,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].RelevanceScore > scored[j].RelevanceScore
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}

	return scored, nil
}

// learnerProfile derives the per-user scoring input. Missing history means
// an empty profile with the default level.
func (s *RecommendationService) learnerProfile(ctx context.Context, userID uint) LearnerProfile {
	profile := LearnerProfile{
		CompletedCategories: map[string]struct{}{},
		EnrolledCourseIDs:   map[uint64]struct{}{},
		Level:               domain.LevelScore(""),
	}

	history, err := s.activityRepo.CompletionHistory(ctx, userID)
	if err != nil {
		logger.Warn("completion history lookup failed, using default profile", "user_id", userID, "error", err)
		return profile
	}

	completedIDs := make([]uint64, 0, len(history))
	for _, h := range history {
		profile.EnrolledCourseIDs[h.CourseID] = struct{}{}
		if h.Status == domain.EnrollmentCompleted {
			completedIDs = append(completedIDs, h.CourseID)
		}
	}

	if len(completedIDs) == 0 {
		return profile
	}

	completed, err := s.courseRepo.FindByIDs(ctx, completedIDs)
	if err != nil {
		logger.Warn("completed course lookup failed, using default profile", "user_id", userID, "error", err)
		return profile
	}

	for _, c := range completed {
		for _, cat := range c.Categories {
			profile.CompletedCategories[cat] = struct{}{}
		}
	}
	profile.Level = DeriveLevel(completed)

	return profile
}

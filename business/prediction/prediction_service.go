package prediction

import (
	"context"
	"encoding/json"
	"fmt"

	"eduPulse/domain"
	"eduPulse/pkg/logger"
	"eduPulse/pkg/metrics"
)

// ---- Repository interfaces ----

type CourseRepository interface {
	FindByID(ctx context.Context, id uint64) (domain.Course, bool, error)
}

type ProfileRepository interface {
	GetProfile(ctx context.Context, userID uint) (domain.UserProfile, error)
}

type ActivityRepository interface {
	Stats(ctx context.Context, userID uint, windowDays int) (domain.ActivityStats, error)
	CompletionHistory(ctx context.Context, userID uint) ([]domain.CourseActivity, error)
	AllUserStats(ctx context.Context, windowDays int) (map[uint]domain.ActivityStats, error)
}

type WeightProvider interface {
	Weights(ctx context.Context, model string) (map[string]float64, error)
}

type ClusterStore interface {
	SaveSnapshot(ctx context.Context, runDate string, profiles json.RawMessage) error
	LatestSnapshot(ctx context.Context) (json.RawMessage, string, error)
}

// ---- Usecase / Service ----

type PredictionService struct {
	courseRepo   CourseRepository
	profileRepo  ProfileRepository
	activityRepo ActivityRepository
	weights      WeightProvider
	clusters     ClusterStore

	churnWindowDays    int
	baselineWindowDays int
}

func NewPredictionService(
	courseRepo CourseRepository,
	profileRepo ProfileRepository,
	activityRepo ActivityRepository,
	weights WeightProvider,
	clusters ClusterStore,
	churnWindowDays int,
	baselineWindowDays int,
) *PredictionService {
	if churnWindowDays <= 0 {
		churnWindowDays = 7
	}
	if baselineWindowDays <= 0 {
		baselineWindowDays = 30
	}
	return &PredictionService{
		courseRepo:         courseRepo,
		profileRepo:        profileRepo,
		activityRepo:       activityRepo,
		weights:            weights,
		clusters:           clusters,
		churnWindowDays:    churnWindowDays,
		baselineWindowDays: baselineWindowDays,
	}
}

// modelWeights merges the stored table over the defaults. Store failures
// fall back to defaults.
func (s *PredictionService) modelWeights(ctx context.Context, model string, defaults map[string]float64) map[string]float64 {
	if s.weights == nil {
		return defaults
	}
	stored, err := s.weights.Weights(ctx, model)
	if err != nil {
		logger.Warn("weight table lookup failed, using defaults", "model", model, "error", err)
		return defaults
	}
	return mergeWeights(defaults, stored)
}

// PredictCompletionTime estimates the hours a user needs to finish a
// course. Activity or profile lookups failing degrade to defaults and a
// lower confidence.
func (s *PredictionService) PredictCompletionTime(ctx context.Context, userID uint, courseID uint64) (domain.CompletionEstimate, error) {
	if err := ctx.Err(); err != nil {
		return domain.CompletionEstimate{}, fmt.Errorf("context error: %w", err)
	}

	metrics.PredictionRequests.WithLabelValues(domain.ModelCompletionTime).Inc()

	course, found, err := s.courseRepo.FindByID(ctx, courseID)
	if err != nil {
		return domain.CompletionEstimate{}, fmt.Errorf("failed to load course: %w", err)
	}
	if !found {
		return domain.CompletionEstimate{}, fmt.Errorf("course %d not found", courseID)
	}

	profile := domain.UserProfile{UserID: userID}
	if p, err := s.profileRepo.GetProfile(ctx, userID); err == nil {
		profile = p
	} else {
		logger.Warn("profile lookup failed, using defaults", "user_id", userID, "error", err)
	}

	stats, err := s.activityRepo.Stats(ctx, userID, s.baselineWindowDays)
	if err != nil {
		logger.Warn("activity stats lookup failed, using defaults", "user_id", userID, "error", err)
		stats = domain.ActivityStats{}
	}

	history, err := s.activityRepo.CompletionHistory(ctx, userID)
	if err != nil {
		logger.Warn("completion history lookup failed, using defaults", "user_id", userID, "error", err)
		history = nil
	}

	features, completeness := completionFeatures(course, profile, stats, history)
	weights := s.modelWeights(ctx, domain.ModelCompletionTime, DefaultCompletionWeights())

	return estimateCompletion(features, weights, completeness), nil
}

// PredictChurnRisk scores the six churn factors for a user over the
// current window against the baseline window.
func (s *PredictionService) PredictChurnRisk(ctx context.Context, userID uint) (domain.RiskAssessment, error) {
	if err := ctx.Err(); err != nil {
		return domain.RiskAssessment{}, fmt.Errorf("context error: %w", err)
	}

	metrics.PredictionRequests.WithLabelValues(domain.ModelChurnRisk).Inc()

	current, baseline, completeness := s.windows(ctx, userID)

	completionRate, baselineRate := completionRates(current, baseline)
	factors := churnFactors(current, baseline, completionRate, baselineRate)
	weights := s.modelWeights(ctx, domain.ModelChurnRisk, DefaultChurnWeights())

	assessment := assessChurn(factors, weights, completeness)

	logger.Debug("churn_risk",
		"user_id", userID,
		"score", assessment.RiskScore,
		"level", assessment.RiskLevel,
	)

	return assessment, nil
}

// DetectAnomalies compares the user's current window against the baseline
// window on the four monitored dimensions.
func (s *PredictionService) DetectAnomalies(ctx context.Context, userID uint) ([]domain.Anomaly, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	current, baseline, _ := s.windows(ctx, userID)
	return DetectAnomalies(current, baseline), nil
}

// windows loads the current and baseline activity stats, degrading to
// zero-valued stats on lookup failure. Completeness reflects how much of
// the data was actually available.
func (s *PredictionService) windows(ctx context.Context, userID uint) (current, baseline domain.ActivityStats, completeness float64) {
	loaded := 0.0

	current, err := s.activityRepo.Stats(ctx, userID, s.churnWindowDays)
	if err != nil {
		logger.Warn("current window lookup failed, using empty stats", "user_id", userID, "error", err)
		current = domain.ActivityStats{WindowDays: s.churnWindowDays}
	} else {
		loaded++
	}

	baseline, err = s.activityRepo.Stats(ctx, userID, s.baselineWindowDays)
	if err != nil {
		logger.Warn("baseline window lookup failed, using empty stats", "user_id", userID, "error", err)
		baseline = domain.ActivityStats{WindowDays: s.baselineWindowDays}
	} else {
		loaded++
	}

	return current, baseline, loaded / 2
}

// completionRates derives completion fractions per window from quiz and
// lesson counters, a proxy the activity store can serve cheaply.
func completionRates(current, baseline domain.ActivityStats) (float64, float64) {
	currentRate := 0.0
	if current.LessonViews > 0 {
		currentRate = minFloat(float64(current.QuizCount)/float64(current.LessonViews), 1)
	}
	baselineRate := 0.0
	if baseline.LessonViews > 0 {
		baselineRate = minFloat(float64(baseline.QuizCount)/float64(baseline.LessonViews), 1)
	}
	return currentRate, baselineRate
}

// RunClustering rebuilds the population clusters and persists the
// snapshot for the admin surface.
func (s *PredictionService) RunClustering(ctx context.Context, runDate string) ([]domain.ClusterProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	allStats, err := s.activityRepo.AllUserStats(ctx, s.baselineWindowDays)
	if err != nil {
		return nil, fmt.Errorf("failed to load user stats: %w", err)
	}

	users := make([]domain.UserFeatures, 0, len(allStats))
	for userID, stats := range allStats {
		users = append(users, domain.UserFeatures{
			UserID:   userID,
			Features: clusterFeatureVector(stats),
		})
	}

	profiles := ClusterUsers(users)

	if s.clusters != nil && len(profiles) > 0 {
		raw, err := json.Marshal(profiles)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal cluster profiles: %w", err)
		}
		if err := s.clusters.SaveSnapshot(ctx, runDate, raw); err != nil {
			return nil, fmt.Errorf("failed to save cluster snapshot: %w", err)
		}
	}

	logger.Info("clustering_complete", "run_date", runDate, "users", len(users), "clusters", len(profiles))

	return profiles, nil
}

// ClusterProfiles serves the latest persisted snapshot.
func (s *PredictionService) ClusterProfiles(ctx context.Context) ([]domain.ClusterProfile, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", fmt.Errorf("context error: %w", err)
	}
	if s.clusters == nil {
		return []domain.ClusterProfile{}, "", nil
	}

	raw, runDate, err := s.clusters.LatestSnapshot(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load cluster snapshot: %w", err)
	}
	if len(raw) == 0 {
		return []domain.ClusterProfile{}, "", nil
	}

	var profiles []domain.ClusterProfile
	if err := json.Unmarshal(raw, &profiles); err != nil {
		return nil, "", fmt.Errorf("failed to unmarshal cluster snapshot: %w", err)
	}

	return profiles, runDate, nil
}

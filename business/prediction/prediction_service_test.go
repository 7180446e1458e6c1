package prediction

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"eduPulse/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCourses struct {
	courses map[uint64]domain.Course
	err     error
}

func (f *fakeCourses) FindByID(ctx context.Context, id uint64) (domain.Course, bool, error) {
	if f.err != nil {
		return domain.Course{}, false, f.err
	}
	c, ok := f.courses[id]
	return c, ok, nil
}

type fakeProfiles struct {
	profile domain.UserProfile
	err     error
}

func (f *fakeProfiles) GetProfile(ctx context.Context, userID uint) (domain.UserProfile, error) {
	return f.profile, f.err
}

type fakeActivity struct {
	statsByWindow map[int]domain.ActivityStats
	statsErr      error
	history       []domain.CourseActivity
	historyErr    error
	allStats      map[uint]domain.ActivityStats
	allStatsErr   error
}

func (f *fakeActivity) Stats(ctx context.Context, userID uint, windowDays int) (domain.ActivityStats, error) {
	if f.statsErr != nil {
		return domain.ActivityStats{}, f.statsErr
	}
	return f.statsByWindow[windowDays], nil
}

func (f *fakeActivity) CompletionHistory(ctx context.Context, userID uint) ([]domain.CourseActivity, error) {
	if f.historyErr != nil {
		return nil, f.historyErr
	}
	return f.history, nil
}

func (f *fakeActivity) AllUserStats(ctx context.Context, windowDays int) (map[uint]domain.ActivityStats, error) {
	if f.allStatsErr != nil {
		return nil, f.allStatsErr
	}
	return f.allStats, nil
}

type fakeWeightStore struct {
	tables map[string]map[string]float64
}

func (f *fakeWeightStore) Weights(ctx context.Context, model string) (map[string]float64, error) {
	if f.tables == nil {
		return nil, fmt.Errorf("no weights")
	}
	return f.tables[model], nil
}

type fakeClusterStore struct {
	saved   json.RawMessage
	runDate string
	saveErr error
}

func (f *fakeClusterStore) SaveSnapshot(ctx context.Context, runDate string, profiles json.RawMessage) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.runDate = runDate
	f.saved = profiles
	return nil
}

func (f *fakeClusterStore) LatestSnapshot(ctx context.Context) (json.RawMessage, string, error) {
	return f.saved, f.runDate, nil
}

func newTestPredictionService(courses *fakeCourses, activity *fakeActivity, clusters *fakeClusterStore) *PredictionService {
	return NewPredictionService(
		courses,
		&fakeProfiles{profile: domain.UserProfile{UserID: 1}},
		activity,
		&fakeWeightStore{},
		clusters,
		7,
		30,
	)
}

func TestPredictCompletionTime_CourseNotFound(t *testing.T) {
	s := newTestPredictionService(&fakeCourses{courses: map[uint64]domain.Course{}}, &fakeActivity{}, &fakeClusterStore{})

	_, err := s.PredictCompletionTime(context.Background(), 1, 99)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestPredictCompletionTime_ReturnsBoundedEstimate(t *testing.T) {
	courses := &fakeCourses{courses: map[uint64]domain.Course{
		5: {ID: 5, DurationHours: 12, LessonCount: 20, QuizCount: 4, Level: domain.LevelIntermediate},
	}}
	activity := &fakeActivity{
		statsByWindow: map[int]domain.ActivityStats{
			30: {WindowDays: 30, ActiveDays: 20, AvgDailyMinutes: 45},
		},
		history: []domain.CourseActivity{
			{Status: domain.EnrollmentCompleted, HoursSpent: 10},
		},
	}
	s := newTestPredictionService(courses, activity, &fakeClusterStore{})

	est, err := s.PredictCompletionTime(context.Background(), 1, 5)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, est.EstimatedHours, 0.0)
	assert.GreaterOrEqual(t, est.Confidence, 0.3)
	assert.LessOrEqual(t, est.Confidence, 0.95)
	assert.NotEmpty(t, est.Factors)
	assert.GreaterOrEqual(t, est.RecommendedSchedule.EstimatedWeeks, 1)
}

func TestPredictCompletionTime_ActivityFailureDegrades(t *testing.T) {
	courses := &fakeCourses{courses: map[uint64]domain.Course{
		5: {ID: 5, DurationHours: 12, Level: domain.LevelIntermediate},
	}}
	activity := &fakeActivity{statsErr: fmt.Errorf("db down"), historyErr: fmt.Errorf("db down")}
	s := newTestPredictionService(courses, activity, &fakeClusterStore{})

	est, err := s.PredictCompletionTime(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.InDelta(t, 0.3, est.Confidence, 1e-9)
}

func TestPredictChurnRisk_QuietUserIsLowRisk(t *testing.T) {
	activity := &fakeActivity{
		statsByWindow: map[int]domain.ActivityStats{
			7:  {WindowDays: 7, AvgDailyMinutes: 40, LessonViews: 10, QuizCount: 5},
			30: {WindowDays: 30, AvgDailyMinutes: 40, LessonViews: 40, QuizCount: 20},
		},
	}
	s := newTestPredictionService(&fakeCourses{}, activity, &fakeClusterStore{})

	res, err := s.PredictChurnRisk(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, domain.RiskLow, res.RiskLevel)
	assert.Empty(t, res.MainFactors)
	assert.InDelta(t, 0.95, res.Confidence, 1e-9)
}

func TestPredictChurnRisk_DisengagedUserIsHighRisk(t *testing.T) {
	activity := &fakeActivity{
		statsByWindow: map[int]domain.ActivityStats{
			7:  {WindowDays: 7, DaysSinceLogin: 30, AvgDailyMinutes: 0, DifficultyEvents: 10, SupportRequests: 5, CourseSwitches: 5},
			30: {WindowDays: 30, AvgDailyMinutes: 60, LessonViews: 40, QuizCount: 30},
		},
	}
	s := newTestPredictionService(&fakeCourses{}, activity, &fakeClusterStore{})

	res, err := s.PredictChurnRisk(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, domain.RiskHigh, res.RiskLevel)
	assert.NotEmpty(t, res.MainFactors)
	assert.NotEmpty(t, res.RecommendedActions)
}

func TestPredictChurnRisk_StatsFailureLowersConfidence(t *testing.T) {
	activity := &fakeActivity{statsErr: fmt.Errorf("db down")}
	s := newTestPredictionService(&fakeCourses{}, activity, &fakeClusterStore{})

	res, err := s.PredictChurnRisk(context.Background(), 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.3, res.Confidence, 1e-9)
}

func TestDetectAnomalies_Service(t *testing.T) {
	activity := &fakeActivity{
		statsByWindow: map[int]domain.ActivityStats{
			7:  {WindowDays: 7, AvgDailyMinutes: 20, ActiveDays: 2, LoginCount: 2, QuizAvgScore: 80},
			30: {WindowDays: 30, AvgDailyMinutes: 90, ActiveDays: 25, LoginCount: 28, QuizAvgScore: 85},
		},
	}
	s := newTestPredictionService(&fakeCourses{}, activity, &fakeClusterStore{})

	anomalies, err := s.DetectAnomalies(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, anomalies, 4)

	a := anomalyByDimension(t, anomalies, "activity_level")
	assert.True(t, a.Flagged)
}

func TestRunClustering_PersistsSnapshot(t *testing.T) {
	allStats := make(map[uint]domain.ActivityStats)
	for i := uint(1); i <= 20; i++ {
		allStats[i] = domain.ActivityStats{
			WindowDays:      30,
			ActiveDays:      int(i),
			AvgDailyMinutes: float64(i * 5),
			LoginCount:      int(i),
			LessonViews:     int(i * 3),
			QuizAvgScore:    50 + float64(i),
		}
	}
	store := &fakeClusterStore{}
	s := newTestPredictionService(&fakeCourses{}, &fakeActivity{allStats: allStats}, store)

	profiles, err := s.RunClustering(context.Background(), "2026-03-11")
	require.NoError(t, err)
	require.Len(t, profiles, 5)
	assert.Equal(t, "2026-03-11", store.runDate)
	require.NotEmpty(t, store.saved)

	// the persisted snapshot round-trips through the read path
	loaded, runDate, err := s.ClusterProfiles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2026-03-11", runDate)
	assert.Equal(t, profiles, loaded)
}

func TestClusterProfiles_EmptyStore(t *testing.T) {
	s := newTestPredictionService(&fakeCourses{}, &fakeActivity{}, &fakeClusterStore{})

	profiles, runDate, err := s.ClusterProfiles(context.Background())
	require.NoError(t, err)
	assert.Empty(t, profiles)
	assert.Empty(t, runDate)
}

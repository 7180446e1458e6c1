package feedback

import (
	"context"
	"fmt"
	"testing"
	"time"

	"eduPulse/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

var trainingDay = time.Date(2026, time.March, 11, 9, 0, 0, 0, time.UTC)

func ratedInteraction(patternKey string, createdAt time.Time, satisfaction int) domain.Interaction {
	return domain.Interaction{
		ID:           fmt.Sprintf("%s-%d-%d", patternKey, createdAt.Unix(), satisfaction),
		Intent:       "need_help",
		Satisfaction: intPtr(satisfaction),
		Context:      datatypes.JSONMap{"matched_patterns": []any{patternKey}},
		CreatedAt:    createdAt,
	}
}

func TestRunDailyTraining_PositiveFeedbackRaisesBias(t *testing.T) {
	repo := newFakeInteractions()
	for i := 0; i < 30; i++ {
		repo.rows = append(repo.rows, ratedInteraction("need_help:0", trainingDay.Add(-time.Duration(i)*time.Hour), 5))
	}
	store := &fakeWeightStore{}
	l := NewLearner(repo, store)

	report, err := l.RunDailyTraining(context.Background(), trainingDay, 30*24*time.Hour)
	require.NoError(t, err)

	assert.Equal(t, "2026-03-11", report.Day)
	assert.Equal(t, 30, report.Interactions)
	assert.Equal(t, 30, report.Rated)

	bias := store.weights["need_help:0"]
	assert.InDelta(t, 2.0, bias, 1e-9, "all-positive saturated evidence maxes the bias")
	assert.Equal(t, 1, store.version)
}

func TestRunDailyTraining_NegativeFeedbackLowersBias(t *testing.T) {
	repo := newFakeInteractions()
	for i := 0; i < 30; i++ {
		repo.rows = append(repo.rows, ratedInteraction("technical_issue:1", trainingDay.Add(-time.Duration(i)*time.Hour), 1))
	}
	store := &fakeWeightStore{}
	l := NewLearner(repo, store)

	_, err := l.RunDailyTraining(context.Background(), trainingDay, 30*24*time.Hour)
	require.NoError(t, err)

	assert.InDelta(t, 0.5, store.weights["technical_issue:1"], 1e-9)
}

func TestRunDailyTraining_PatternsOfOneIntentMoveIndependently(t *testing.T) {
	repo := newFakeInteractions()
	for i := 0; i < 30; i++ {
		repo.rows = append(repo.rows,
			ratedInteraction("need_help:0", trainingDay.Add(-time.Duration(i)*time.Hour), 5),
			ratedInteraction("need_help:1", trainingDay.Add(-time.Duration(i)*time.Hour), 1),
		)
	}
	store := &fakeWeightStore{}
	l := NewLearner(repo, store)

	_, err := l.RunDailyTraining(context.Background(), trainingDay, 30*24*time.Hour)
	require.NoError(t, err)

	assert.InDelta(t, 2.0, store.weights["need_help:0"], 1e-9)
	assert.InDelta(t, 0.5, store.weights["need_help:1"], 1e-9)
}

func TestRunDailyTraining_MultiPatternRowCountsForEachPattern(t *testing.T) {
	repo := newFakeInteractions()
	it := ratedInteraction("question_progress:0", trainingDay.Add(-time.Hour), 5)
	it.Context = datatypes.JSONMap{"matched_patterns": []any{"question_progress:0", "question_progress:1"}}
	repo.rows = append(repo.rows, it)
	store := &fakeWeightStore{}
	l := NewLearner(repo, store)

	report, err := l.RunDailyTraining(context.Background(), trainingDay, 30*24*time.Hour)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Rated)
	assert.Equal(t, 1, report.Updated["question_progress:0"])
	assert.Equal(t, 1, report.Updated["question_progress:1"])
}

func TestRunDailyTraining_ThinEvidenceStaysNearNeutral(t *testing.T) {
	repo := newFakeInteractions()
	// two positives only: the pull toward 2.0 is damped by 2/20
	repo.rows = append(repo.rows,
		ratedInteraction("need_help:0", trainingDay.Add(-time.Hour), 5),
		ratedInteraction("need_help:0", trainingDay.Add(-2*time.Hour), 5),
	)
	store := &fakeWeightStore{}
	l := NewLearner(repo, store)

	_, err := l.RunDailyTraining(context.Background(), trainingDay, 30*24*time.Hour)
	require.NoError(t, err)

	assert.InDelta(t, 1.1, store.weights["need_help:0"], 1e-9)
}

func TestRunDailyTraining_SameDayRerunIsIdempotent(t *testing.T) {
	repo := newFakeInteractions()
	for i := 0; i < 10; i++ {
		satisfaction := 5
		if i%2 == 0 {
			satisfaction = 1
		}
		repo.rows = append(repo.rows, ratedInteraction("question_progress:0", trainingDay.Add(-time.Duration(i)*time.Hour), satisfaction))
	}
	store := &fakeWeightStore{}
	l := NewLearner(repo, store)

	_, err := l.RunDailyTraining(context.Background(), trainingDay, 30*24*time.Hour)
	require.NoError(t, err)
	first := store.weights["question_progress:0"]

	_, err = l.RunDailyTraining(context.Background(), trainingDay, 30*24*time.Hour)
	require.NoError(t, err)

	assert.InDelta(t, first, store.weights["question_progress:0"], 1e-9)
	assert.Equal(t, 2, store.version, "each run still bumps the table version")
}

func TestRunDailyTraining_UnratedAndPatternlessRowsIgnored(t *testing.T) {
	repo := newFakeInteractions()
	repo.rows = append(repo.rows,
		domain.Interaction{ID: "a", Intent: "need_help", CreatedAt: trainingDay.Add(-time.Hour)},
		// rated but carrying no matched patterns, like a default-intent row
		domain.Interaction{ID: "b", Intent: "default", Satisfaction: intPtr(5), CreatedAt: trainingDay.Add(-2 * time.Hour)},
	)
	store := &fakeWeightStore{}
	l := NewLearner(repo, store)

	report, err := l.RunDailyTraining(context.Background(), trainingDay, 30*24*time.Hour)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Interactions)
	assert.Equal(t, 1, report.Rated)
	assert.Empty(t, store.weights)
}

func TestRunDailyTraining_PurgesRowsPastRetention(t *testing.T) {
	repo := newFakeInteractions()
	repo.rows = append(repo.rows,
		ratedInteraction("need_help:0", trainingDay.Add(-time.Hour), 5),
		ratedInteraction("need_help:0", trainingDay.Add(-40*24*time.Hour), 5), // outside retention
	)
	store := &fakeWeightStore{}
	l := NewLearner(repo, store)

	report, err := l.RunDailyTraining(context.Background(), trainingDay, 30*24*time.Hour)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Interactions, "out-of-window rows are not tallied")
	assert.Equal(t, int64(1), report.Purged)
	require.Len(t, repo.rows, 1)
}

func TestRunDailyTraining_ListFailureSurfaces(t *testing.T) {
	repo := newFakeInteractions()
	repo.listErr = fmt.Errorf("db down")
	l := NewLearner(repo, &fakeWeightStore{})

	_, err := l.RunDailyTraining(context.Background(), trainingDay, 30*24*time.Hour)
	assert.Error(t, err)
}

func TestRunDailyTraining_BiasAlwaysWithinClamp(t *testing.T) {
	repo := newFakeInteractions()
	for i := 0; i < 100; i++ {
		repo.rows = append(repo.rows, ratedInteraction("schedule_planning:2", trainingDay.Add(-time.Duration(i)*time.Minute), 5))
	}
	store := &fakeWeightStore{}
	l := NewLearner(repo, store)

	_, err := l.RunDailyTraining(context.Background(), trainingDay, 30*24*time.Hour)
	require.NoError(t, err)

	for key, bias := range store.weights {
		assert.GreaterOrEqual(t, bias, 0.5, "pattern %s", key)
		assert.LessOrEqual(t, bias, 2.0, "pattern %s", key)
	}
}

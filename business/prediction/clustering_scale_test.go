//go:build !integration

package prediction

import (
	"math/rand"
	"testing"

	"eduPulse/domain"
)

// scenario params
const (
	scaleNumUsers   = 20000
	scaleMaxMinutes = 180
	scaleWindowDays = 30
)

func TestClusterSizes_LargePopulation(t *testing.T) {
	r := rand.New(rand.NewSource(7))

	users := make([]domain.UserFeatures, 0, scaleNumUsers)
	for u := 1; u <= scaleNumUsers; u++ {
		stats := domain.ActivityStats{
			WindowDays:      scaleWindowDays,
			ActiveDays:      r.Intn(scaleWindowDays + 1),
			AvgDailyMinutes: r.Float64() * scaleMaxMinutes,
			LoginCount:      r.Intn(2 * scaleWindowDays),
			LessonViews:     r.Intn(300),
			QuizAvgScore:    r.Float64() * 100,
		}
		users = append(users, domain.UserFeatures{UserID: uint(u), Features: clusterFeatureVector(stats)})
	}

	profiles := ClusterUsers(users)
	if len(profiles) != 5 {
		t.Fatalf("expected 5 clusters, got %d", len(profiles))
	}

	total := 0
	for _, p := range profiles {
		total += p.Size
		t.Logf("[CLUSTER %d] size=%d means=%v", p.Cluster, p.Size, p.Means)
		if p.Size == 0 {
			t.Errorf("cluster %d is empty", p.Cluster)
		}
	}

	if total != scaleNumUsers {
		t.Fatalf("assignment mismatch: %d users over %d assigned", scaleNumUsers, total)
	}
}

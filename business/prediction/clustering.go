package prediction

import (
	"math"
	"sort"

	"eduPulse/domain"
)

// Clustering constants: fixed group count and a hard iteration bound.
const (
	clusterCount  = 5
	maxIterations = 25
)

// Feature order for the per-user clustering vector.
var clusterFeatureNames = []string{
	"active_days",
	"avg_daily_minutes",
	"login_count",
	"lesson_views",
	"quiz_avg_score",
}

func clusterFeatureVector(s domain.ActivityStats) []float64 {
	return []float64{
		float64(s.ActiveDays),
		s.AvgDailyMinutes,
		float64(s.LoginCount),
		float64(s.LessonViews),
		s.QuizAvgScore,
	}
}

// ClusterUsers partitions users into up to clusterCount groups with a
// deterministic k-means pass: min-max normalized features, evenly spaced
// seeds over the id-sorted population, and a bounded iteration count.
func ClusterUsers(users []domain.UserFeatures) []domain.ClusterProfile {
	if len(users) == 0 {
		return []domain.ClusterProfile{}
	}

	// stable input order
	sorted := make([]domain.UserFeatures, len(users))
	copy(sorted, users)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].UserID < sorted[j].UserID })

	dims := len(sorted[0].Features)
	normalized, mins, ranges := normalize(sorted, dims)

	k := clusterCount
	if k > len(sorted) {
		k = len(sorted)
	}

	// evenly spaced seeds over the sorted users
	centroids := make([][]float64, k)
	for c := 0; c < k; c++ {
		idx := 0
		if k > 1 {
			idx = c * (len(sorted) - 1) / (k - 1)
		}
		centroids[c] = append([]float64(nil), normalized[idx]...)
	}

	assignments := make([]int, len(sorted))
	for iter := 0; iter < maxIterations; iter++ {
		changed := false
		for i, vec := range normalized {
			best := nearestCentroid(vec, centroids)
			if best != assignments[i] {
				assignments[i] = best
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}
		recomputeCentroids(centroids, normalized, assignments)
	}

	return profileClusters(sorted, assignments, centroids, mins, ranges, k)
}

func normalize(users []domain.UserFeatures, dims int) (vectors [][]float64, mins, ranges []float64) {
	mins = make([]float64, dims)
	maxs := make([]float64, dims)
	for d := 0; d < dims; d++ {
		mins[d] = math.Inf(1)
		maxs[d] = math.Inf(-1)
	}
	for _, u := range users {
		for d := 0; d < dims; d++ {
			if u.Features[d] < mins[d] {
				mins[d] = u.Features[d]
			}
			if u.Features[d] > maxs[d] {
				maxs[d] = u.Features[d]
			}
		}
	}

	ranges = make([]float64, dims)
	for d := 0; d < dims; d++ {
		ranges[d] = maxs[d] - mins[d]
		if ranges[d] == 0 {
			ranges[d] = 1
		}
	}

	vectors = make([][]float64, len(users))
	for i, u := range users {
		vec := make([]float64, dims)
		for d := 0; d < dims; d++ {
			vec[d] = (u.Features[d] - mins[d]) / ranges[d]
		}
		vectors[i] = vec
	}
	return vectors, mins, ranges
}

func nearestCentroid(vec []float64, centroids [][]float64) int {
	best := 0
	bestDist := math.Inf(1)
	for c, centroid := range centroids {
		dist := 0.0
		for d := range vec {
			diff := vec[d] - centroid[d]
			dist += diff * diff
		}
		if dist < bestDist {
			bestDist = dist
			best = c
		}
	}
	return best
}

// recomputeCentroids replaces each centroid with its members' mean; empty
// clusters keep their previous centroid.
func recomputeCentroids(centroids [][]float64, vectors [][]float64, assignments []int) {
	k := len(centroids)
	dims := len(centroids[0])
	sums := make([][]float64, k)
	counts := make([]int, k)
	for c := 0; c < k; c++ {
		sums[c] = make([]float64, dims)
	}

	for i, vec := range vectors {
		c := assignments[i]
		counts[c]++
		for d := 0; d < dims; d++ {
			sums[c][d] += vec[d]
		}
	}

	for c := 0; c < k; c++ {
		if counts[c] == 0 {
			continue
		}
		for d := 0; d < dims; d++ {
			centroids[c][d] = sums[c][d] / float64(counts[c])
		}
	}
}

// profileClusters builds the descriptive profile for each group using
// denormalized feature means.
func profileClusters(
	users []domain.UserFeatures,
	assignments []int,
	centroids [][]float64,
	mins, ranges []float64,
	k int,
) []domain.ClusterProfile {
	profiles := make([]domain.ClusterProfile, k)
	dims := len(mins)

	for c := 0; c < k; c++ {
		means := make(map[string]float64, dims)
		centroid := make([]float64, dims)
		for d := 0; d < dims; d++ {
			raw := centroids[c][d]*ranges[d] + mins[d]
			centroid[d] = math.Round(raw*100) / 100
			if d < len(clusterFeatureNames) {
				means[clusterFeatureNames[d]] = centroid[d]
			}
		}
		profiles[c] = domain.ClusterProfile{
			Cluster:  c,
			Centroid: centroid,
			Means:    means,
			UserIDs:  []uint{},
		}
	}

	for i, u := range users {
		c := assignments[i]
		profiles[c].Size++
		profiles[c].UserIDs = append(profiles[c].UserIDs, u.UserID)
	}

	return profiles
}

package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Risk levels, monotonic in risk score.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

type CompletionEstimate struct {
	EstimatedHours      float64            `json:"estimated_hours"`
	Confidence          float64            `json:"confidence"`
	Factors             map[string]float64 `json:"factors"`
	RecommendedSchedule ScheduleSuggestion `json:"recommended_schedule"`
}

type ScheduleSuggestion struct {
	HoursPerWeek   float64 `json:"hours_per_week"`
	EstimatedWeeks int     `json:"estimated_weeks"`
}

type RiskAssessment struct {
	RiskScore          float64  `json:"risk_score"`
	RiskLevel          string   `json:"risk_level"`
	MainFactors        []string `json:"main_factors"`
	RecommendedActions []string `json:"recommended_actions"`
	Confidence         float64  `json:"confidence"`
}

type Anomaly struct {
	Dimension string  `json:"dimension"`
	Current   float64 `json:"current"`
	Baseline  float64 `json:"baseline"`
	Ratio     float64 `json:"ratio"`
	Threshold float64 `json:"threshold"`
	Flagged   bool    `json:"flagged"`
}

// UserFeatures is one user's feature vector for clustering.
type UserFeatures struct {
	UserID   uint      `json:"user_id"`
	Features []float64 `json:"features"`
}

type ClusterProfile struct {
	Cluster  int                `json:"cluster"`
	Size     int                `json:"size"`
	Centroid []float64          `json:"centroid"`
	Means    map[string]float64 `json:"means"`
	UserIDs  []uint             `json:"user_ids"`
}

// ClusterSnapshot persists the profiles from the last training run.
type ClusterSnapshot struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	RunDate   string         `gorm:"column:run_date;uniqueIndex" json:"run_date"` // YYYY-MM-DD, UTC
	Profiles  datatypes.JSON `gorm:"column:profiles;type:jsonb" json:"profiles"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ClusterSnapshot) TableName() string {
	return "cluster_snapshots"
}

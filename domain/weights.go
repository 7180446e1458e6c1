package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Model names used as weight-table keys.
const (
	ModelCompletionTime = "completion_time"
	ModelChurnRisk      = "churn_risk"
	ModelIntentBias     = "intent_bias"
)

// WeightTable holds the full weight map for one model. An update replaces
// the whole map, never individual entries.
type WeightTable struct {
	Model     string            `gorm:"column:model;primaryKey" json:"model"`
	Weights   datatypes.JSONMap `gorm:"column:weights;type:jsonb;not null" json:"weights"`
	Version   int               `gorm:"column:version;default:0" json:"version"`
	UpdatedAt time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (WeightTable) TableName() string {
	return "model_weights"
}

// WeightMap converts the stored JSON map into a plain float map, skipping
// malformed entries.
func (w WeightTable) WeightMap() map[string]float64 {
	out := make(map[string]float64, len(w.Weights))
	for k, v := range w.Weights {
		if f, ok := v.(float64); ok {
			out[k] = f
		}
	}
	return out
}

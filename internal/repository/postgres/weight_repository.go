package postgres

import (
	"context"
	"fmt"

	"eduPulse/domain"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WeightRepository stores one full weight map per model. Replace swaps the
// whole row in a single upsert so readers never observe a partial table.
type WeightRepository struct {
	DB *gorm.DB
}

func NewWeightRepository(db *gorm.DB) *WeightRepository {
	return &WeightRepository{
		DB: db,
	}
}

// Weights returns the current map for a model; a missing row is an empty
// map, not an error.
func (r *WeightRepository) Weights(ctx context.Context, model string) (map[string]float64, error) {
	table, found, err := r.find(ctx, model)
	if err != nil {
		return nil, err
	}
	if !found {
		return map[string]float64{}, nil
	}
	return table.WeightMap(), nil
}

// Get returns the map and its version for read-modify-replace flows.
func (r *WeightRepository) Get(ctx context.Context, model string) (map[string]float64, int, error) {
	table, found, err := r.find(ctx, model)
	if err != nil {
		return nil, 0, err
	}
	if !found {
		return map[string]float64{}, 0, nil
	}
	return table.WeightMap(), table.Version, nil
}

// Replace upserts the full weight map atomically.
func (r *WeightRepository) Replace(ctx context.Context, model string, weights map[string]float64, version int) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	stored := make(datatypes.JSONMap, len(weights))
	for k, v := range weights {
		stored[k] = v
	}

	row := domain.WeightTable{
		Model:   model,
		Weights: stored,
		Version: version,
	}

	if err := r.DB.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "model"}},
			UpdateAll: true,
		},
	).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to replace weight table: %w", err)
	}

	return nil
}

func (r *WeightRepository) find(ctx context.Context, model string) (domain.WeightTable, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.WeightTable{}, false, fmt.Errorf("context error: %w", err)
	}

	var table domain.WeightTable
	err := r.DB.WithContext(ctx).First(&table, "model = ?", model).Error
	if err == gorm.ErrRecordNotFound {
		return domain.WeightTable{}, false, nil
	}
	if err != nil {
		return domain.WeightTable{}, false, fmt.Errorf("failed to query model_weights: %w", err)
	}

	return table, true, nil
}

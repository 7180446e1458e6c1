package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"eduPulse/domain"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ClusterRepository struct {
	DB *gorm.DB
}

func NewClusterRepository(db *gorm.DB) *ClusterRepository {
	return &ClusterRepository{
		DB: db,
	}
}

func (r *ClusterRepository) SaveSnapshot(ctx context.Context, runDate string, profiles json.RawMessage) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	row := domain.ClusterSnapshot{
		RunDate:  runDate,
		Profiles: datatypes.JSON(profiles),
	}

	if err := r.DB.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "run_date"}},
			UpdateAll: true,
		},
	).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to upsert cluster snapshot: %w", err)
	}

	return nil
}

func (r *ClusterRepository) LatestSnapshot(ctx context.Context) (json.RawMessage, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", fmt.Errorf("context error: %w", err)
	}

	var row domain.ClusterSnapshot
	err := r.DB.WithContext(ctx).Order("run_date DESC").First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to query cluster_snapshots: %w", err)
	}

	return json.RawMessage(row.Profiles), row.RunDate, nil
}

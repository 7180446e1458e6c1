package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eduPulse/domain"

	"gorm.io/gorm"
)

type InteractionRepository struct {
	DB *gorm.DB
}

func NewInteractionRepository(db *gorm.DB) *InteractionRepository {
	return &InteractionRepository{
		DB: db,
	}
}

func (r *InteractionRepository) Save(ctx context.Context, it domain.Interaction) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(&it).Error; err != nil {
		return fmt.Errorf("failed to save interaction: %w", err)
	}

	return nil
}

func (r *InteractionRepository) AttachFeedback(ctx context.Context, id string, satisfaction *int, helpful *bool) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	updates := map[string]any{}
	if satisfaction != nil {
		updates["satisfaction"] = *satisfaction
	}
	if helpful != nil {
		updates["helpful"] = *helpful
	}
	if len(updates) == 0 {
		return errors.New("no feedback fields to update")
	}

	res := r.DB.WithContext(ctx).
		Model(&domain.Interaction{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("failed to attach feedback: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return errors.New("interaction not found")
	}

	return nil
}

func (r *InteractionRepository) ListBetween(ctx context.Context, from, to time.Time) ([]domain.Interaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var rows []domain.Interaction
	err := r.DB.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list interactions: %w", err)
	}

	return rows, nil
}

func (r *InteractionRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	res := r.DB.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&domain.Interaction{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to purge interactions: %w", res.Error)
	}

	return res.RowsAffected, nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"eduPulse/domain"

	"gorm.io/gorm"
)

type ProfileRepository struct {
	DB *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{
		DB: db,
	}
}

func (r *ProfileRepository) GetProfile(ctx context.Context, userID uint) (domain.UserProfile, error) {
	if err := ctx.Err(); err != nil {
		return domain.UserProfile{}, fmt.Errorf("context error: %w", err)
	}

	var profile domain.UserProfile
	err := r.DB.WithContext(ctx).First(&profile, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.UserProfile{}, errors.New("profile not found")
	}
	if err != nil {
		return domain.UserProfile{}, fmt.Errorf("failed to find profile: %w", err)
	}

	return profile, nil
}

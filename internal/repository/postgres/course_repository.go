package postgres

import (
	"context"
	"fmt"

	"eduPulse/domain"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{
		DB: db,
	}
}

func (r *CourseRepository) ListPublished(ctx context.Context, limit int) ([]domain.Course, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var courses []domain.Course
	err := r.DB.WithContext(ctx).
		Where("published = ?", true).
		Order("id").
		Limit(limit).
		Find(&courses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list published courses: %w", err)
	}

	return courses, nil
}

func (r *CourseRepository) ListPublishedTitles(ctx context.Context, limit int) ([]domain.CourseTitle, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var titles []domain.CourseTitle
	err := r.DB.WithContext(ctx).
		Model(&domain.Course{}).
		Select("id", "title").
		Where("published = ?", true).
		Order("id").
		Limit(limit).
		Find(&titles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list course titles: %w", err)
	}

	return titles, nil
}

func (r *CourseRepository) FindByID(ctx context.Context, id uint64) (domain.Course, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.Course{}, false, fmt.Errorf("context error: %w", err)
	}

	var course domain.Course
	err := r.DB.WithContext(ctx).First(&course, id).Error
	if err == gorm.ErrRecordNotFound {
		return domain.Course{}, false, nil
	}
	if err != nil {
		return domain.Course{}, false, fmt.Errorf("failed to find course: %w", err)
	}

	return course, true, nil
}

func (r *CourseRepository) FindByIDs(ctx context.Context, ids []uint64) ([]domain.Course, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if len(ids) == 0 {
		return []domain.Course{}, nil
	}

	var courses []domain.Course
	err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&courses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find courses: %w", err)
	}

	return courses, nil
}

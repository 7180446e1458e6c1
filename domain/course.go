package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Course difficulty levels, mapped 1/2/3 for scoring.
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

func LevelScore(level string) int {
	switch level {
	case LevelBeginner:
		return 1
	case LevelAdvanced:
		return 3
	default:
		return 2
	}
}

type Course struct {
	ID                uint64                      `gorm:"primaryKey" json:"id"`
	Title             string                      `gorm:"column:title;type:text;not null" json:"title"`
	Categories        datatypes.JSONSlice[string] `gorm:"column:categories;type:jsonb" json:"categories"`
	StudentCount      int                         `gorm:"column:student_count;default:0" json:"student_count"`
	Rating            float64                     `gorm:"column:rating;default:0" json:"rating"`
	Level             string                      `gorm:"column:level;default:intermediate" json:"level"`
	DurationHours     float64                     `gorm:"column:duration_hours;default:0" json:"duration_hours"`
	LessonCount       int                         `gorm:"column:lesson_count;default:0" json:"lesson_count"`
	QuizCount         int                         `gorm:"column:quiz_count;default:0" json:"quiz_count"`
	PrerequisiteCount int                         `gorm:"column:prerequisite_count;default:0" json:"prerequisite_count"`
	Published         bool                        `gorm:"column:published;default:false" json:"published"`
	CreatedAt         time.Time                   `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Course) TableName() string {
	return "courses"
}

// CourseTitle is the bounded projection served to the entity extractor.
type CourseTitle struct {
	ID    uint64 `json:"id"`
	Title string `json:"title"`
}

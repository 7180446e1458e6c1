package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Interaction is one chatbot exchange. Rows are append-only; the only
// later mutation is attaching user feedback to an existing row.
type Interaction struct {
	ID           string            `gorm:"column:id;primaryKey;type:uuid" json:"id"`
	UserID       uint              `gorm:"column:user_id;not null;index" json:"user_id"`
	Message      string            `gorm:"column:message;type:text;not null" json:"message"`
	Intent       string            `gorm:"column:intent;not null" json:"intent"`
	ResponseType string            `gorm:"column:response_type;not null" json:"response_type"`
	Confidence   float64           `gorm:"column:confidence;default:0" json:"confidence"`
	Satisfaction *int              `gorm:"column:satisfaction" json:"satisfaction"` // 1..5
	Helpful      *bool             `gorm:"column:helpful" json:"helpful"`
	Context      datatypes.JSONMap `gorm:"column:context;type:jsonb" json:"context"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Interaction) TableName() string {
	return "chat_interactions"
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// Metric is the per-user usage row surfaced by the dashboard.
type Metric struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	TokensUsed      int64     `gorm:"not null;default:0"`
	MessagesSent    int64     `gorm:"not null;default:0"`
	ApprovalRate    float64   `gorm:"type:numeric(5,2);not null;default:0"`
	AvgConfidence   float64   `gorm:"type:numeric(5,2);not null;default:0"`
	AvgResponseTime float64   `gorm:"type:numeric(10,2);not null;default:0"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (Metric) TableName() string {
	return "metrics"
}

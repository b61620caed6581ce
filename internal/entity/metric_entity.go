package entity

import (
	"time"

	"github.com/google/uuid"
)

type Metric struct {
	Id              uuid.UUID
	UserId          uuid.UUID
	TokensUsed      int64
	MessagesSent    int64
	ApprovalRate    float64
	AvgConfidence   float64
	AvgResponseTime float64
	UpdatedAt       time.Time
}

// DailyMessageCount is one bucket of the messages-over-time chart.
type DailyMessageCount struct {
	Day   time.Time
	Count int64
}

type PersonaUsage struct {
	PersonaId    uuid.UUID
	Name         string
	Color        string
	MessageCount int64
}

package dto

import (
	"time"

	"github.com/google/uuid"
)

// ActivityMessage is the payload published on the activity topic.
type ActivityMessage struct {
	UserId     uuid.UUID              `json:"user_id"`
	ActionType string                 `json:"action_type"`
	Details    map[string]interface{} `json:"details"`
	OccurredAt time.Time              `json:"occurred_at"`
}

type ActivityResponse struct {
	Action    string `json:"action"`
	Timestamp string `json:"timestamp"`
}

type UsageMetricsResponse struct {
	TokensUsed   int64   `json:"tokensUsed"`
	MessagesSent int64   `json:"messagesSent"`
	ApprovalRate float64 `json:"approvalRate"`
	Confidence   float64 `json:"confidence"`
	ResponseTime float64 `json:"responseTime"`
}

type MetricsOverviewResponse struct {
	TotalMessages int64 `json:"total_messages"`
	TotalPersonas int64 `json:"total_personas"`
	TotalThreads  int64 `json:"total_threads"`
	TotalSamples  int64 `json:"total_samples"`
}

type DailyMessageCountResponse struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type PersonaUsageResponse struct {
	Name         string `json:"name"`
	Color        string `json:"color"`
	MessageCount int64  `json:"message_count"`
}

type ThreadActivityResponse struct {
	Title         string     `json:"title"`
	MessageCount  int        `json:"message_count"`
	LastMessageAt *time.Time `json:"last_message_at"`
}

package dto

import (
	"time"

	"github.com/google/uuid"
)

type ChatRequest struct {
	Message  string     `json:"message" validate:"required,min=1,max=5000"`
	ThreadId *uuid.UUID `json:"thread_id"`
}

type ChatResponse struct {
	Message    string `json:"message"`
	Confidence *int   `json:"confidence"`
	Rationale  string `json:"rationale"`
	Origin     string `json:"origin,omitempty"`
}

type ChatHistoryItem struct {
	Role       string    `json:"role"`
	Content    string    `json:"content"`
	Confidence *int      `json:"confidence"`
	Timestamp  time.Time `json:"timestamp"`
}

package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateThreadRequest struct {
	Title       string     `json:"title" validate:"max=255"`
	Description string     `json:"description" validate:"max=5000"`
	PersonaId   *uuid.UUID `json:"persona_id"`
}

// UpdateThreadRequest leaves absent fields unchanged.
type UpdateThreadRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=255"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
}

type ThreadResponse struct {
	Id            uuid.UUID  `json:"id"`
	PersonaId     *uuid.UUID `json:"persona_id"`
	PersonaName   *string    `json:"persona_name,omitempty"`
	PersonaColor  *string    `json:"persona_color,omitempty"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	MessageCount  int        `json:"message_count"`
	LastMessageAt *time.Time `json:"last_message_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

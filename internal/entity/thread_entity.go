package entity

import (
	"time"

	"github.com/google/uuid"
)

type Thread struct {
	Id            uuid.UUID
	UserId        uuid.UUID
	PersonaId     *uuid.UUID
	Title         string
	Description   string
	MessageCount  int
	LastMessageAt *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Filled only by listings that join personas
	PersonaName  *string
	PersonaColor *string
}

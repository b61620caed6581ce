package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessage struct {
	Id         uuid.UUID
	UserId     uuid.UUID
	PersonaId  *uuid.UUID
	ThreadId   *uuid.UUID
	Role       string
	Content    string
	Confidence *int
	CreatedAt  time.Time
}

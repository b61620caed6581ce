package entity

import (
	"time"

	"persona-replicator-be/pkg/twin"

	"github.com/google/uuid"
)

// ReplyDraft is a generated candidate set waiting for the user to pick one.
type ReplyDraft struct {
	Id         uuid.UUID       `json:"id"`
	UserId     uuid.UUID       `json:"user_id"`
	PersonaId  uuid.UUID       `json:"persona_id"`
	MessageId  *uuid.UUID      `json:"message_id,omitempty"`
	Subject    string          `json:"subject"`
	Mode       twin.Mode       `json:"mode"`
	Origin     twin.Origin     `json:"origin"`
	Candidates twin.Candidates `json:"candidates"`
	CreatedAt  time.Time       `json:"created_at"`
}

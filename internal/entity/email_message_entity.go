package entity

import (
	"time"

	"github.com/google/uuid"
)

type EmailMessage struct {
	Id         uuid.UUID
	UserId     uuid.UUID
	PersonaId  *uuid.UUID
	Direction  string
	FromEmail  string
	ToEmail    string
	Subject    string
	Body       string
	Snippet    string
	Status     string
	ReceivedAt *time.Time
	CreatedAt  time.Time
}

// ArrivedAt is the receive time when known, else the row creation time.
func (m *EmailMessage) ArrivedAt() time.Time {
	if m.ReceivedAt != nil {
		return *m.ReceivedAt
	}
	return m.CreatedAt
}

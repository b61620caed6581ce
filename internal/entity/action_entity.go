package entity

import (
	"time"

	"github.com/google/uuid"
)

type Action struct {
	Id         uuid.UUID
	UserId     uuid.UUID
	ActionType string
	Details    map[string]interface{}
	CreatedAt  time.Time
}

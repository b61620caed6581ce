package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Action is one row of the user activity log.
type Action struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId     uuid.UUID      `gorm:"type:uuid;not null;index:idx_actions_user_created,priority:1"`
	ActionType string         `gorm:"type:varchar(100);not null"`
	Details    datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt  time.Time      `gorm:"autoCreateTime;index:idx_actions_user_created,priority:2"`
}

func (Action) TableName() string {
	return "actions"
}

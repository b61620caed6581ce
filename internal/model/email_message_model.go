package model

import (
	"time"

	"github.com/google/uuid"
)

// EmailMessage is a stored inbound email or a reply sent from the app.
type EmailMessage struct {
	Id         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId     uuid.UUID  `gorm:"type:uuid;not null;index:idx_messages_user_direction,priority:1"`
	PersonaId  *uuid.UUID `gorm:"type:uuid"`
	Direction  string     `gorm:"type:varchar(20);not null;index:idx_messages_user_direction,priority:2"`
	FromEmail  string     `gorm:"type:varchar(320);not null"`
	ToEmail    string     `gorm:"type:varchar(320)"`
	Subject    string     `gorm:"type:text"`
	Body       string     `gorm:"type:text"`
	Snippet    string     `gorm:"type:text"`
	Status     string     `gorm:"type:varchar(20)"`
	ReceivedAt *time.Time
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (EmailMessage) TableName() string {
	return "messages"
}

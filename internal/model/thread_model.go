package model

import (
	"time"

	"github.com/google/uuid"
)

// Thread groups chat turns under a user-chosen title.
type Thread struct {
	Id            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId        uuid.UUID  `gorm:"type:uuid;not null;index"`
	PersonaId     *uuid.UUID `gorm:"type:uuid;index"`
	Title         string     `gorm:"type:varchar(255);not null"`
	Description   string     `gorm:"type:text;default:''"`
	MessageCount  int        `gorm:"not null;default:0"`
	LastMessageAt *time.Time
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (Thread) TableName() string {
	return "threads"
}

// ThreadWithPersona is the listing row joined with the persona it is bound to.
type ThreadWithPersona struct {
	Thread
	PersonaName  *string
	PersonaColor *string
}

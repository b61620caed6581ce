package model

import (
	"time"

	"github.com/google/uuid"
)

type PersonaSample struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PersonaId uuid.UUID `gorm:"type:uuid;not null;index:idx_persona_samples_persona_created,priority:1"`
	Source    string    `gorm:"type:varchar(255)"` // MIME type of the upload
	Content   string    `gorm:"type:text;not null"`
	FileName  string    `gorm:"type:varchar(255)"`
	FileSize  int64
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_persona_samples_persona_created,priority:2"`
}

func (PersonaSample) TableName() string {
	return "persona_samples"
}

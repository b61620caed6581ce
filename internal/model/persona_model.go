package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Persona struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID      `gorm:"type:uuid;not null;index:idx_personas_user_created,priority:1"`
	Name      string         `gorm:"type:varchar(255);not null"`
	Color     string         `gorm:"type:varchar(20);default:'#6366f1'"`
	Metadata  datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index:idx_personas_user_created,priority:2"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Persona) TableName() string {
	return "personas"
}

package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByPersonaID struct {
	PersonaID uuid.UUID
}

func (s ByPersonaID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("persona_id = ?", s.PersonaID)
}

// ByPersonaOwner keeps samples whose persona belongs to the user
type ByPersonaOwner struct {
	UserID uuid.UUID
}

func (s ByPersonaOwner) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("persona_id IN (SELECT id FROM personas WHERE user_id = ? AND deleted_at IS NULL)", s.UserID)
}

// Latest orders by creation time, newest first
func Latest() Specification {
	return OrderBy{Field: "created_at", Desc: true}
}

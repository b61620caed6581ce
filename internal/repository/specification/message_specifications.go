package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByDirection keeps inbound or outbound email rows
type ByDirection struct {
	Direction string
}

func (s ByDirection) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("direction = ?", s.Direction)
}

type ByThreadID struct {
	ThreadID uuid.UUID
}

func (s ByThreadID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("thread_id = ?", s.ThreadID)
}

// ArrivalField orders inbox rows without a receive time by creation time
const ArrivalField = "COALESCE(received_at, created_at)"

// NewestArrival orders email rows by arrival, newest first
func NewestArrival() Specification {
	return OrderBy{Field: ArrivalField, Desc: true}
}

package contract

import (
	"context"
	"time"

	"persona-replicator-be/internal/entity"
	"persona-replicator-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ThreadRepository interface {
	Create(ctx context.Context, thread *entity.Thread) error
	Update(ctx context.Context, thread *entity.Thread) error
	Delete(ctx context.Context, thread *entity.Thread) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Thread, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// FindAllWithPersona lists the user's threads with persona name and color,
	// most recently active first
	FindAllWithPersona(ctx context.Context, userId uuid.UUID) ([]*entity.Thread, error)
	FindMostActive(ctx context.Context, userId uuid.UUID, limit int) ([]*entity.Thread, error)
	// RecordMessages bumps message_count by added and moves last_message_at to at
	RecordMessages(ctx context.Context, threadId uuid.UUID, added int, at time.Time) error
}

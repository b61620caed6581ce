package contract

import (
	"context"
	"time"

	"persona-replicator-be/internal/entity"
	"persona-replicator-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	DeleteAllByUserId(ctx context.Context, userId uuid.UUID) error
	// CountByDay buckets the user's messages created at or after since, oldest day first
	CountByDay(ctx context.Context, userId uuid.UUID, since time.Time) ([]*entity.DailyMessageCount, error)
}

package contract

import (
	"context"
	"time"

	"persona-replicator-be/internal/entity"

	"github.com/google/uuid"
)

type ReplyDraftRepository interface {
	Save(ctx context.Context, draft *entity.ReplyDraft, ttl time.Duration) error
	// Get returns nil, nil for unknown or expired drafts
	Get(ctx context.Context, id uuid.UUID) (*entity.ReplyDraft, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

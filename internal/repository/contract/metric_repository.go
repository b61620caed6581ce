package contract

import (
	"context"

	"persona-replicator-be/internal/entity"

	"github.com/google/uuid"
)

type MetricRepository interface {
	// FindByUserId returns nil, nil when the user has no usage row yet
	FindByUserId(ctx context.Context, userId uuid.UUID) (*entity.Metric, error)
	AddTokensUsed(ctx context.Context, userId uuid.UUID, tokens int) error
	// RecordMessageSent bumps messages_sent and folds confidence into the running average
	RecordMessageSent(ctx context.Context, userId uuid.UUID, confidence int) error
	// IncrementMessagesSent bumps messages_sent and leaves the average untouched
	IncrementMessagesSent(ctx context.Context, userId uuid.UUID) error
}

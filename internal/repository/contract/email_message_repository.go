package contract

import (
	"context"

	"persona-replicator-be/internal/entity"
	"persona-replicator-be/internal/repository/specification"
)

type EmailMessageRepository interface {
	Create(ctx context.Context, message *entity.EmailMessage) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.EmailMessage, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.EmailMessage, error)
}

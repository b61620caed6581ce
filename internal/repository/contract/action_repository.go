package contract

import (
	"context"

	"persona-replicator-be/internal/entity"
	"persona-replicator-be/internal/repository/specification"
)

type ActionRepository interface {
	Create(ctx context.Context, action *entity.Action) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Action, error)
}

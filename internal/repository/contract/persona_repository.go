package contract

import (
	"context"

	"persona-replicator-be/internal/entity"
	"persona-replicator-be/internal/repository/specification"

	"github.com/google/uuid"
)

type PersonaRepository interface {
	Create(ctx context.Context, persona *entity.Persona) error
	Update(ctx context.Context, persona *entity.Persona) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Persona, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Persona, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// UsageByPersona counts chat messages per persona of the user, busiest first
	UsageByPersona(ctx context.Context, userId uuid.UUID) ([]*entity.PersonaUsage, error)
}

type PersonaSampleRepository interface {
	Create(ctx context.Context, sample *entity.PersonaSample) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PersonaSample, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

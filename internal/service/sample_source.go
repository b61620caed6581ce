package service

import (
	"context"

	"persona-replicator-be/internal/repository/specification"
	"persona-replicator-be/internal/repository/unitofwork"
	"persona-replicator-be/pkg/twin"

	"github.com/google/uuid"
)

// sampleSource feeds the reply engine from the persona_samples table.
type sampleSource struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewSampleSource(uowFactory unitofwork.RepositoryFactory) twin.SampleSource {
	return &sampleSource{uowFactory: uowFactory}
}

func (s *sampleSource) RecentSamples(ctx context.Context, personaId uuid.UUID, limit int) ([]string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	samples, err := uow.PersonaSampleRepository().FindAll(ctx,
		specification.ByPersonaID{PersonaID: personaId},
		specification.Latest(),
		specification.Pagination{Limit: limit},
	)
	if err != nil {
		return nil, err
	}

	contents := make([]string, 0, len(samples))
	for _, sample := range samples {
		contents = append(contents, sample.Content)
	}
	return contents, nil
}

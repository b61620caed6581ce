package unitofwork

import (
	"context"

	"persona-replicator-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	PersonaRepository() contract.PersonaRepository
	PersonaSampleRepository() contract.PersonaSampleRepository
	MetricRepository() contract.MetricRepository
	ChatMessageRepository() contract.ChatMessageRepository
	ActionRepository() contract.ActionRepository
	ThreadRepository() contract.ThreadRepository
	EmailMessageRepository() contract.EmailMessageRepository
}

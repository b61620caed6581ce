package unitofwork

import (
	"context"
	"fmt"

	"persona-replicator-be/internal/repository/contract"
	"persona-replicator-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB // active transaction, nil outside Begin/Commit
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) PersonaRepository() contract.PersonaRepository {
	return implementation.NewPersonaRepository(u.getDB())
}

func (u *UnitOfWorkImpl) PersonaSampleRepository() contract.PersonaSampleRepository {
	return implementation.NewPersonaSampleRepository(u.getDB())
}

func (u *UnitOfWorkImpl) MetricRepository() contract.MetricRepository {
	return implementation.NewMetricRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ChatMessageRepository() contract.ChatMessageRepository {
	return implementation.NewChatMessageRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ActionRepository() contract.ActionRepository {
	return implementation.NewActionRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ThreadRepository() contract.ThreadRepository {
	return implementation.NewThreadRepository(u.getDB())
}

func (u *UnitOfWorkImpl) EmailMessageRepository() contract.EmailMessageRepository {
	return implementation.NewEmailMessageRepository(u.getDB())
}

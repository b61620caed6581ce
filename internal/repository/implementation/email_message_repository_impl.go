package implementation

import (
	"context"
	"errors"

	"persona-replicator-be/internal/entity"
	"persona-replicator-be/internal/mapper"
	"persona-replicator-be/internal/model"
	"persona-replicator-be/internal/repository/contract"
	"persona-replicator-be/internal/repository/specification"

	"gorm.io/gorm"
)

type EmailMessageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.EmailMessageMapper
}

func NewEmailMessageRepository(db *gorm.DB) contract.EmailMessageRepository {
	return &EmailMessageRepositoryImpl{
		db:     db,
		mapper: mapper.NewEmailMessageMapper(),
	}
}

func (r *EmailMessageRepositoryImpl) Create(ctx context.Context, message *entity.EmailMessage) error {
	m := r.mapper.ToModel(message)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*message = *r.mapper.ToEntity(m)
	return nil
}

func (r *EmailMessageRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.EmailMessage, error) {
	var m model.EmailMessage
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *EmailMessageRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.EmailMessage, error) {
	var models []*model.EmailMessage
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

package implementation

import (
	"context"

	"persona-replicator-be/internal/entity"
	"persona-replicator-be/internal/mapper"
	"persona-replicator-be/internal/model"
	"persona-replicator-be/internal/repository/contract"
	"persona-replicator-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ActionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ActionMapper
}

func NewActionRepository(db *gorm.DB) contract.ActionRepository {
	return &ActionRepositoryImpl{
		db:     db,
		mapper: mapper.NewActionMapper(),
	}
}

func (r *ActionRepositoryImpl) Create(ctx context.Context, action *entity.Action) error {
	m := r.mapper.ToModel(action)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*action = *r.mapper.ToEntity(m)
	return nil
}

func (r *ActionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Action, error) {
	var models []*model.Action
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

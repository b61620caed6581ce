package implementation

import (
	"context"
	"errors"
	"time"

	"persona-replicator-be/internal/entity"
	"persona-replicator-be/internal/mapper"
	"persona-replicator-be/internal/model"
	"persona-replicator-be/internal/repository/contract"
	"persona-replicator-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ThreadRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ThreadMapper
}

func NewThreadRepository(db *gorm.DB) contract.ThreadRepository {
	return &ThreadRepositoryImpl{
		db:     db,
		mapper: mapper.NewThreadMapper(),
	}
}

func (r *ThreadRepositoryImpl) Create(ctx context.Context, thread *entity.Thread) error {
	m := r.mapper.ToModel(thread)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*thread = *r.mapper.ToEntity(m)
	return nil
}

func (r *ThreadRepositoryImpl) Update(ctx context.Context, thread *entity.Thread) error {
	m := r.mapper.ToModel(thread)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*thread = *r.mapper.ToEntity(m)
	return nil
}

func (r *ThreadRepositoryImpl) Delete(ctx context.Context, thread *entity.Thread) error {
	return r.db.WithContext(ctx).Delete(&model.Thread{}, "id = ?", thread.Id).Error
}

func (r *ThreadRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Thread, error) {
	var m model.Thread
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ThreadRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Thread{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ThreadRepositoryImpl) FindAllWithPersona(ctx context.Context, userId uuid.UUID) ([]*entity.Thread, error) {
	var rows []*model.ThreadWithPersona
	err := r.db.WithContext(ctx).Table("threads AS t").
		Select("t.*, p.name AS persona_name, p.color AS persona_color").
		Joins("LEFT JOIN personas p ON t.persona_id = p.id AND p.deleted_at IS NULL").
		Where("t.user_id = ?", userId).
		Order("t.last_message_at DESC NULLS LAST, t.updated_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.FromJoined(rows), nil
}

func (r *ThreadRepositoryImpl) FindMostActive(ctx context.Context, userId uuid.UUID, limit int) ([]*entity.Thread, error) {
	var models []*model.Thread
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Order("message_count DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ThreadRepositoryImpl) RecordMessages(ctx context.Context, threadId uuid.UUID, added int, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.Thread{}).
		Where("id = ?", threadId).
		Updates(map[string]interface{}{
			"message_count":   gorm.Expr("message_count + ?", added),
			"last_message_at": at,
			"updated_at":      at,
		}).Error
}

package implementation

import (
	"context"
	"time"

	"persona-replicator-be/internal/entity"
	"persona-replicator-be/internal/mapper"
	"persona-replicator-be/internal/model"
	"persona-replicator-be/internal/repository/contract"
	"persona-replicator-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatMessageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMessageMapper
}

func NewChatMessageRepository(db *gorm.DB) contract.ChatMessageRepository {
	return &ChatMessageRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMessageMapper(),
	}
}

func (r *ChatMessageRepositoryImpl) Create(ctx context.Context, message *entity.ChatMessage) error {
	m := r.mapper.ToModel(message)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*message = *r.mapper.ToEntity(m)
	return nil
}

func (r *ChatMessageRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	var models []*model.ChatMessage
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ChatMessageRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.ChatMessage{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ChatMessageRepositoryImpl) DeleteAllByUserId(ctx context.Context, userId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userId).Delete(&model.ChatMessage{}).Error
}

type dailyCountRow struct {
	Date  time.Time
	Count int64
}

func (r *ChatMessageRepositoryImpl) CountByDay(ctx context.Context, userId uuid.UUID, since time.Time) ([]*entity.DailyMessageCount, error) {
	var rows []dailyCountRow
	err := r.db.WithContext(ctx).Model(&model.ChatMessage{}).
		Select("DATE(created_at) AS date, COUNT(*) AS count").
		Where("user_id = ? AND created_at >= ?", userId, since).
		Group("DATE(created_at)").
		Order("date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make([]*entity.DailyMessageCount, len(rows))
	for i, row := range rows {
		counts[i] = &entity.DailyMessageCount{Day: row.Date, Count: row.Count}
	}
	return counts, nil
}

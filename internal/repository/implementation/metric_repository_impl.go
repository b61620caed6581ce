package implementation

import (
	"context"
	"errors"
	"time"

	"persona-replicator-be/internal/entity"
	"persona-replicator-be/internal/mapper"
	"persona-replicator-be/internal/model"
	"persona-replicator-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MetricRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MetricMapper
}

func NewMetricRepository(db *gorm.DB) contract.MetricRepository {
	return &MetricRepositoryImpl{
		db:     db,
		mapper: mapper.NewMetricMapper(),
	}
}

func (r *MetricRepositoryImpl) FindByUserId(ctx context.Context, userId uuid.UUID) (*entity.Metric, error) {
	var m model.Metric
	if err := r.db.WithContext(ctx).Where("user_id = ?", userId).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *MetricRepositoryImpl) AddTokensUsed(ctx context.Context, userId uuid.UUID, tokens int) error {
	row := &model.Metric{
		UserId:     userId,
		TokensUsed: int64(tokens),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"tokens_used": gorm.Expr("metrics.tokens_used + ?", tokens),
			"updated_at":  time.Now(),
		}),
	}).Create(row).Error
}

func (r *MetricRepositoryImpl) RecordMessageSent(ctx context.Context, userId uuid.UUID, confidence int) error {
	row := &model.Metric{
		UserId:        userId,
		MessagesSent:  1,
		AvgConfidence: float64(confidence),
	}
	// SET expressions read the pre-update row, so the average uses the old count.
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"avg_confidence": gorm.Expr("(metrics.avg_confidence * metrics.messages_sent + ?) / (metrics.messages_sent + 1)", confidence),
			"messages_sent":  gorm.Expr("metrics.messages_sent + 1"),
			"updated_at":     time.Now(),
		}),
	}).Create(row).Error
}

func (r *MetricRepositoryImpl) IncrementMessagesSent(ctx context.Context, userId uuid.UUID) error {
	row := &model.Metric{
		UserId:       userId,
		MessagesSent: 1,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"messages_sent": gorm.Expr("metrics.messages_sent + 1"),
			"updated_at":    time.Now(),
		}),
	}).Create(row).Error
}

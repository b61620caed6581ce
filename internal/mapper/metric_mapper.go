package mapper

import (
	"persona-replicator-be/internal/entity"
	"persona-replicator-be/internal/model"
)

type MetricMapper struct{}

func NewMetricMapper() *MetricMapper {
	return &MetricMapper{}
}

func (m *MetricMapper) ToEntity(mt *model.Metric) *entity.Metric {
	if mt == nil {
		return nil
	}
	return &entity.Metric{
		Id:              mt.Id,
		UserId:          mt.UserId,
		TokensUsed:      mt.TokensUsed,
		MessagesSent:    mt.MessagesSent,
		ApprovalRate:    mt.ApprovalRate,
		AvgConfidence:   mt.AvgConfidence,
		AvgResponseTime: mt.AvgResponseTime,
		UpdatedAt:       mt.UpdatedAt,
	}
}

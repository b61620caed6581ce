package service

import (
	"context"
	"time"

	"persona-replicator-be/internal/constant"
	"persona-replicator-be/internal/dto"
	"persona-replicator-be/internal/pkg/logger"
	"persona-replicator-be/internal/repository/specification"
	"persona-replicator-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IMetricsService interface {
	GetUsage(ctx context.Context, userId uuid.UUID) (*dto.UsageMetricsResponse, error)
	GetOverview(ctx context.Context, userId uuid.UUID) (*dto.MetricsOverviewResponse, error)
	MessagesOverTime(ctx context.Context, userId uuid.UUID, days int) ([]*dto.DailyMessageCountResponse, error)
	PersonaUsage(ctx context.Context, userId uuid.UUID) ([]*dto.PersonaUsageResponse, error)
	ThreadActivity(ctx context.Context, userId uuid.UUID) ([]*dto.ThreadActivityResponse, error)
	// RecordTokenUsage and RecordMessageSent are best-effort and only log failures.
	RecordTokenUsage(ctx context.Context, userId uuid.UUID, tokens int)
	// RecordMessageSent with a nil confidence only bumps the sent counter.
	RecordMessageSent(ctx context.Context, userId uuid.UUID, confidence *int)
}

type metricsService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
	now        func() time.Time
}

func NewMetricsService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IMetricsService {
	return &metricsService{
		uowFactory: uowFactory,
		logger:     log,
		now:        time.Now,
	}
}

func (s *metricsService) GetUsage(ctx context.Context, userId uuid.UUID) (*dto.UsageMetricsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	m, err := uow.MetricRepository().FindByUserId(ctx, userId)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return &dto.UsageMetricsResponse{}, nil
	}

	return &dto.UsageMetricsResponse{
		TokensUsed:   m.TokensUsed,
		MessagesSent: m.MessagesSent,
		ApprovalRate: m.ApprovalRate,
		Confidence:   m.AvgConfidence,
		ResponseTime: m.AvgResponseTime,
	}, nil
}

func (s *metricsService) GetOverview(ctx context.Context, userId uuid.UUID) (*dto.MetricsOverviewResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	messages, err := uow.ChatMessageRepository().Count(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}
	personas, err := uow.PersonaRepository().Count(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}
	threads, err := uow.ThreadRepository().Count(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}
	samples, err := uow.PersonaSampleRepository().Count(ctx, specification.ByPersonaOwner{UserID: userId})
	if err != nil {
		return nil, err
	}

	return &dto.MetricsOverviewResponse{
		TotalMessages: messages,
		TotalPersonas: personas,
		TotalThreads:  threads,
		TotalSamples:  samples,
	}, nil
}

func (s *metricsService) MessagesOverTime(ctx context.Context, userId uuid.UUID, days int) ([]*dto.DailyMessageCountResponse, error) {
	if days <= 0 {
		days = constant.DefaultChartDays
	}
	if days > constant.MaxChartDays {
		days = constant.MaxChartDays
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	since := s.now().Add(-time.Duration(days) * 24 * time.Hour)
	counts, err := uow.ChatMessageRepository().CountByDay(ctx, userId, since)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.DailyMessageCountResponse, len(counts))
	for i, c := range counts {
		result[i] = &dto.DailyMessageCountResponse{
			Date:  c.Day.Format("2006-01-02"),
			Count: c.Count,
		}
	}
	return result, nil
}

func (s *metricsService) PersonaUsage(ctx context.Context, userId uuid.UUID) ([]*dto.PersonaUsageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	usage, err := uow.PersonaRepository().UsageByPersona(ctx, userId)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.PersonaUsageResponse, len(usage))
	for i, u := range usage {
		result[i] = &dto.PersonaUsageResponse{
			Name:         u.Name,
			Color:        u.Color,
			MessageCount: u.MessageCount,
		}
	}
	return result, nil
}

func (s *metricsService) ThreadActivity(ctx context.Context, userId uuid.UUID) ([]*dto.ThreadActivityResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	threads, err := uow.ThreadRepository().FindMostActive(ctx, userId, constant.ThreadActivityLimit)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ThreadActivityResponse, len(threads))
	for i, t := range threads {
		result[i] = &dto.ThreadActivityResponse{
			Title:         t.Title,
			MessageCount:  t.MessageCount,
			LastMessageAt: t.LastMessageAt,
		}
	}
	return result, nil
}

func (s *metricsService) RecordTokenUsage(ctx context.Context, userId uuid.UUID, tokens int) {
	if tokens <= 0 {
		return
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.MetricRepository().AddTokensUsed(ctx, userId, tokens); err != nil {
		s.logger.Warn("METRICS", "Failed to record token usage", map[string]interface{}{
			"user_id": userId.String(),
			"tokens":  tokens,
			"error":   err.Error(),
		})
	}
}

func (s *metricsService) RecordMessageSent(ctx context.Context, userId uuid.UUID, confidence *int) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	var err error
	if confidence == nil {
		err = uow.MetricRepository().IncrementMessagesSent(ctx, userId)
	} else {
		err = uow.MetricRepository().RecordMessageSent(ctx, userId, *confidence)
	}
	if err != nil {
		s.logger.Warn("METRICS", "Failed to record sent message", map[string]interface{}{
			"user_id": userId.String(),
			"error":   err.Error(),
		})
	}
}

package service

import (
	"context"
	"fmt"
	"time"

	"persona-replicator-be/internal/constant"
	"persona-replicator-be/internal/dto"
	"persona-replicator-be/internal/entity"
	"persona-replicator-be/internal/mapper"
	"persona-replicator-be/internal/pkg/logger"
	"persona-replicator-be/internal/repository/specification"
	"persona-replicator-be/internal/repository/unitofwork"
	"persona-replicator-be/pkg/llm"
	"persona-replicator-be/pkg/twin"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatService interface {
	SendMessage(ctx context.Context, userId uuid.UUID, req *dto.ChatRequest) (*dto.ChatResponse, error)
	Assistant(ctx context.Context, userId uuid.UUID, req *dto.ChatRequest) (*dto.ChatResponse, error)
	History(ctx context.Context, userId uuid.UUID, limit int) ([]*dto.ChatHistoryItem, error)
	Clear(ctx context.Context, userId uuid.UUID) error
}

type chatService struct {
	uowFactory     unitofwork.RepositoryFactory
	generator      ReplyGenerator
	provider       llm.LLMProvider
	metricsService IMetricsService
	mapper         *mapper.PersonaMapper
	logger         logger.ILogger
	now            func() time.Time
}

// NewChatService accepts a nil provider; Assistant then answers 503.
func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	generator ReplyGenerator,
	provider llm.LLMProvider,
	metricsService IMetricsService,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:     uowFactory,
		generator:      generator,
		provider:       provider,
		metricsService: metricsService,
		mapper:         mapper.NewPersonaMapper(),
		logger:         log,
		now:            time.Now,
	}
}

func (s *chatService) SendMessage(ctx context.Context, userId uuid.UUID, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if req.ThreadId != nil {
		if _, err := findThread(ctx, uow, userId, *req.ThreadId); err != nil {
			return nil, err
		}
	}

	p, err := findPersona(ctx, uow, userId, nil)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Persona not found. Please upload training samples first.")
	}

	reply := s.generator.GenerateTwinReply(ctx, s.mapper.ToTwin(p), twin.InboundMessage{
		FromEmail: constant.ChatFromEmail,
		Subject:   constant.ChatSubject,
		Body:      req.Message,
	}, twin.DefaultOptions())

	normal, _ := reply.Candidates.Find(twin.LabelNormal)
	confidence := normal.Confidence

	personaId := p.Id
	s.persistTurns(ctx, uow, userId, &personaId, req.ThreadId, req.Message, normal.Text, &confidence)
	s.metricsService.RecordTokenUsage(ctx, userId, reply.TokensUsed)

	return &dto.ChatResponse{
		Message:    normal.Text,
		Confidence: &confidence,
		Rationale:  normal.Rationale,
		Origin:     string(normal.Origin),
	}, nil
}

func (s *chatService) Assistant(ctx context.Context, userId uuid.UUID, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	if s.provider == nil {
		return nil, fiber.NewError(fiber.StatusServiceUnavailable, "AI assistant is not configured")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if req.ThreadId != nil {
		if _, err := findThread(ctx, uow, userId, *req.ThreadId); err != nil {
			return nil, err
		}
	}

	completion, err := s.provider.Chat(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: constant.AssistantSystemPrompt},
		{Role: llm.RoleUser, Content: req.Message},
	},
		llm.WithTemperature(constant.AssistantTemperature),
		llm.WithMaxTokens(constant.AssistantMaxTokens),
	)
	if err != nil {
		s.logger.Error("CHAT", "Assistant call failed", map[string]interface{}{
			"provider": s.provider.Name(),
			"error":    err.Error(),
		})
		return nil, fiber.NewError(fiber.StatusInternalServerError, fmt.Sprintf("Failed to generate response: %s", err.Error()))
	}

	s.persistTurns(ctx, uow, userId, nil, req.ThreadId, req.Message, completion.Content, nil)
	s.metricsService.RecordTokenUsage(ctx, userId, completion.TotalTokens)

	return &dto.ChatResponse{
		Message:   completion.Content,
		Rationale: constant.AssistantRationale,
		Origin:    string(twin.OriginGenerated),
	}, nil
}

func (s *chatService) History(ctx context.Context, userId uuid.UUID, limit int) ([]*dto.ChatHistoryItem, error) {
	if limit <= 0 {
		limit = constant.DefaultHistoryLimit
	}
	if limit > constant.MaxHistoryLimit {
		limit = constant.MaxHistoryLimit
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.Latest(),
		specification.Pagination{Limit: limit},
	)
	if err != nil {
		return nil, err
	}

	// Newest rows were fetched; hand them back oldest first.
	result := make([]*dto.ChatHistoryItem, len(messages))
	for i, m := range messages {
		result[len(messages)-1-i] = toChatHistoryItem(m)
	}
	return result, nil
}

func (s *chatService) Clear(ctx context.Context, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.ChatMessageRepository().DeleteAllByUserId(ctx, userId)
}

// persistTurns stores the user message and the answer in one transaction,
// counting both against the thread when one is given. Failures are only logged.
func (s *chatService) persistTurns(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	userId uuid.UUID,
	personaId *uuid.UUID,
	threadId *uuid.UUID,
	question, answer string,
	confidence *int,
) {
	if err := uow.Begin(ctx); err != nil {
		s.logger.Warn("CHAT", "Failed to open transaction for chat history", map[string]interface{}{"error": err.Error()})
		return
	}

	// The answer sorts after the question even when both land in the same tick.
	askedAt := s.now()
	turns := []*entity.ChatMessage{
		{Id: uuid.New(), UserId: userId, PersonaId: personaId, ThreadId: threadId, Role: constant.ChatRoleUser, Content: question, CreatedAt: askedAt},
		{Id: uuid.New(), UserId: userId, PersonaId: personaId, ThreadId: threadId, Role: constant.ChatRoleAssistant, Content: answer, Confidence: confidence, CreatedAt: askedAt.Add(time.Millisecond)},
	}
	for _, turn := range turns {
		if err := uow.ChatMessageRepository().Create(ctx, turn); err != nil {
			_ = uow.Rollback()
			s.logger.Warn("CHAT", "Failed to store chat history", map[string]interface{}{
				"user_id": userId.String(),
				"error":   err.Error(),
			})
			return
		}
	}

	if threadId != nil {
		if err := uow.ThreadRepository().RecordMessages(ctx, *threadId, len(turns), turns[len(turns)-1].CreatedAt); err != nil {
			_ = uow.Rollback()
			s.logger.Warn("CHAT", "Failed to update thread activity", map[string]interface{}{
				"thread_id": threadId.String(),
				"error":     err.Error(),
			})
			return
		}
	}

	if err := uow.Commit(); err != nil {
		s.logger.Warn("CHAT", "Failed to commit chat history", map[string]interface{}{"error": err.Error()})
	}
}

func toChatHistoryItem(m *entity.ChatMessage) *dto.ChatHistoryItem {
	return &dto.ChatHistoryItem{
		Role:       m.Role,
		Content:    m.Content,
		Confidence: m.Confidence,
		Timestamp:  m.CreatedAt,
	}
}

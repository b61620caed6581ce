package service

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"persona-replicator-be/internal/constant"
	"persona-replicator-be/internal/dto"
	"persona-replicator-be/internal/entity"
	"persona-replicator-be/internal/pkg/logger"
	"persona-replicator-be/internal/repository/specification"
	"persona-replicator-be/internal/repository/unitofwork"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var errMessageNotFound = fiber.NewError(fiber.StatusNotFound, "Message not found")

type IMessageService interface {
	Inbox(ctx context.Context, userId uuid.UUID) ([]*dto.InboxMessageResponse, error)
	Receive(ctx context.Context, userId uuid.UUID, req *dto.ReceiveMessageRequest) (*dto.InboxMessageResponse, error)
	Generate(ctx context.Context, userId uuid.UUID, messageId uuid.UUID, req *dto.GenerateForMessageRequest) (*dto.GenerateReplyResponse, error)
	Send(ctx context.Context, userId uuid.UUID, messageId uuid.UUID, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
}

type messageService struct {
	uowFactory      unitofwork.RepositoryFactory
	replyService    IReplyService
	metricsService  IMetricsService
	activityService IActivityService
	logger          logger.ILogger
	now             func() time.Time
}

func NewMessageService(
	uowFactory unitofwork.RepositoryFactory,
	replyService IReplyService,
	metricsService IMetricsService,
	activityService IActivityService,
	log logger.ILogger,
) IMessageService {
	return &messageService{
		uowFactory:      uowFactory,
		replyService:    replyService,
		metricsService:  metricsService,
		activityService: activityService,
		logger:          log,
		now:             time.Now,
	}
}

func (s *messageService) Inbox(ctx context.Context, userId uuid.UUID) ([]*dto.InboxMessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	messages, err := uow.EmailMessageRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ByDirection{Direction: constant.DirectionInbound},
		specification.NewestArrival(),
		specification.Pagination{Limit: constant.InboxLimit},
	)
	if err != nil {
		return nil, err
	}

	now := s.now()
	result := make([]*dto.InboxMessageResponse, len(messages))
	for i, m := range messages {
		result[i] = toInboxMessage(m, now)
	}
	return result, nil
}

func (s *messageService) Receive(ctx context.Context, userId uuid.UUID, req *dto.ReceiveMessageRequest) (*dto.InboxMessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if req.PersonaId != nil {
		p, err := findPersona(ctx, uow, userId, req.PersonaId)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, errPersonaNotFound
		}
	}

	m := entity.EmailMessage{
		Id:         uuid.New(),
		UserId:     userId,
		PersonaId:  req.PersonaId,
		Direction:  constant.DirectionInbound,
		FromEmail:  req.FromEmail,
		ToEmail:    req.ToEmail,
		Subject:    req.Subject,
		Body:       req.Body,
		Snippet:    req.Snippet,
		ReceivedAt: req.ReceivedAt,
		CreatedAt:  s.now(),
	}
	if err := uow.EmailMessageRepository().Create(ctx, &m); err != nil {
		return nil, err
	}
	return toInboxMessage(&m, s.now()), nil
}

func (s *messageService) Generate(ctx context.Context, userId uuid.UUID, messageId uuid.UUID, req *dto.GenerateForMessageRequest) (*dto.GenerateReplyResponse, error) {
	m, err := s.findMessage(ctx, userId, messageId)
	if err != nil {
		return nil, err
	}

	return s.replyService.Generate(ctx, userId, &dto.GenerateReplyRequest{
		FromEmail:     m.FromEmail,
		Subject:       m.Subject,
		Body:          m.Body,
		Mode:          req.Mode,
		ToneShift:     req.ToneShift,
		RiskTolerance: req.RiskTolerance,
		MessageId:     &m.Id,
	})
}

func (s *messageService) Send(ctx context.Context, userId uuid.UUID, messageId uuid.UUID, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	original, err := s.findMessage(ctx, userId, messageId)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	reply := entity.EmailMessage{
		Id:        uuid.New(),
		UserId:    userId,
		PersonaId: original.PersonaId,
		Direction: constant.DirectionOutbound,
		FromEmail: original.ToEmail,
		ToEmail:   original.FromEmail,
		Subject:   constant.ReplySubjectPrefix + original.Subject,
		Body:      req.Content,
		Status:    constant.MessageStatusSent,
		CreatedAt: s.now(),
	}
	if err := uow.EmailMessageRepository().Create(ctx, &reply); err != nil {
		return nil, err
	}

	s.metricsService.RecordMessageSent(ctx, userId, nil)
	s.activityService.Record(ctx, userId, constant.ActionMessageSent, map[string]interface{}{
		"originalMessageId": messageId.String(),
	})

	return &dto.SendMessageResponse{
		Message: &dto.EmailMessageResponse{
			Id:        reply.Id,
			Direction: reply.Direction,
			FromEmail: reply.FromEmail,
			ToEmail:   reply.ToEmail,
			Subject:   reply.Subject,
			Body:      reply.Body,
			Status:    reply.Status,
			CreatedAt: reply.CreatedAt,
		},
		Success: true,
	}, nil
}

func (s *messageService) findMessage(ctx context.Context, userId, messageId uuid.UUID) (*entity.EmailMessage, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	m, err := uow.EmailMessageRepository().FindOne(ctx,
		specification.ByID{ID: messageId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, errMessageNotFound
	}
	return m, nil
}

func toInboxMessage(m *entity.EmailMessage, now time.Time) *dto.InboxMessageResponse {
	snippet := m.Snippet
	if snippet == "" {
		snippet = leadingRunes(m.Body, constant.InboxSnippetLength)
	}
	return &dto.InboxMessageResponse{
		Id:       m.Id,
		From:     m.FromEmail,
		Subject:  m.Subject,
		Snippet:  snippet,
		Received: formatShortTimeAgo(m.ArrivedAt(), now),
		Body:     m.Body,
	}
}

func leadingRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// formatShortTimeAgo is the compact inbox variant of formatTimeAgo.
func formatShortTimeAgo(at, now time.Time) string {
	diff := now.Sub(at)
	hours := int(diff / time.Hour)
	days := int(diff / (24 * time.Hour))

	switch {
	case hours < 1:
		return "Just now"
	case hours < 24:
		return fmt.Sprintf("%dh", hours)
	case days < 7:
		return fmt.Sprintf("%dd", days)
	default:
		return at.Format("1/2/2006")
	}
}

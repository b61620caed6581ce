package service

import (
	"context"
	"strings"
	"time"

	"persona-replicator-be/internal/dto"
	"persona-replicator-be/internal/entity"
	"persona-replicator-be/internal/pkg/logger"
	"persona-replicator-be/internal/repository/specification"
	"persona-replicator-be/internal/repository/unitofwork"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var (
	errThreadNotFound      = fiber.NewError(fiber.StatusNotFound, "Thread not found")
	errThreadTitleRequired = fiber.NewError(fiber.StatusBadRequest, "Thread title is required")
	errOnlyThread          = fiber.NewError(fiber.StatusBadRequest, "Cannot delete your only thread")
)

type IThreadService interface {
	GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.ThreadResponse, error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateThreadRequest) (*dto.ThreadResponse, error)
	Update(ctx context.Context, userId uuid.UUID, threadId uuid.UUID, req *dto.UpdateThreadRequest) (*dto.ThreadResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, threadId uuid.UUID) error
	Messages(ctx context.Context, userId uuid.UUID, threadId uuid.UUID) ([]*dto.ChatHistoryItem, error)
}

type threadService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
	now        func() time.Time
}

func NewThreadService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IThreadService {
	return &threadService{
		uowFactory: uowFactory,
		logger:     log,
		now:        time.Now,
	}
}

func (s *threadService) GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.ThreadResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	threads, err := uow.ThreadRepository().FindAllWithPersona(ctx, userId)
	if err != nil {
		return nil, err
	}

	s.logger.Info("THREAD", "Threads fetched", map[string]interface{}{
		"user_id": userId.String(),
		"count":   len(threads),
	})

	result := make([]*dto.ThreadResponse, len(threads))
	for i, t := range threads {
		result[i] = toThreadResponse(t)
	}
	return result, nil
}

func (s *threadService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateThreadRequest) (*dto.ThreadResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, errThreadTitleRequired
	}

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

	now := s.now()
	t := entity.Thread{
		Id:          uuid.New(),
		UserId:      userId,
		PersonaId:   req.PersonaId,
		Title:       title,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uow.ThreadRepository().Create(ctx, &t); err != nil {
		return nil, err
	}

	s.logger.Info("THREAD", "Thread created", map[string]interface{}{
		"user_id":   userId.String(),
		"thread_id": t.Id.String(),
	})
	return toThreadResponse(&t), nil
}

func (s *threadService) Update(ctx context.Context, userId uuid.UUID, threadId uuid.UUID, req *dto.UpdateThreadRequest) (*dto.ThreadResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	t, err := findThread(ctx, uow, userId, threadId)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, errThreadTitleRequired
		}
		t.Title = title
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	t.UpdatedAt = s.now()

	if err := uow.ThreadRepository().Update(ctx, t); err != nil {
		return nil, err
	}
	return toThreadResponse(t), nil
}

func (s *threadService) Delete(ctx context.Context, userId uuid.UUID, threadId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	count, err := uow.ThreadRepository().Count(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return err
	}
	if count <= 1 {
		return errOnlyThread
	}

	t, err := findThread(ctx, uow, userId, threadId)
	if err != nil {
		return err
	}

	if err := uow.ThreadRepository().Delete(ctx, t); err != nil {
		return err
	}

	s.logger.Info("THREAD", "Thread deleted", map[string]interface{}{
		"user_id":   userId.String(),
		"thread_id": threadId.String(),
	})
	return nil
}

func (s *threadService) Messages(ctx context.Context, userId uuid.UUID, threadId uuid.UUID) ([]*dto.ChatHistoryItem, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := findThread(ctx, uow, userId, threadId); err != nil {
		return nil, err
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByThreadID{ThreadID: threadId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ChatHistoryItem, len(messages))
	for i, m := range messages {
		result[i] = toChatHistoryItem(m)
	}
	return result, nil
}

// findThread returns errThreadNotFound unless the thread belongs to the user.
func findThread(ctx context.Context, uow unitofwork.UnitOfWork, userId, threadId uuid.UUID) (*entity.Thread, error) {
	t, err := uow.ThreadRepository().FindOne(ctx,
		specification.ByID{ID: threadId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, errThreadNotFound
	}
	return t, nil
}

func toThreadResponse(t *entity.Thread) *dto.ThreadResponse {
	return &dto.ThreadResponse{
		Id:            t.Id,
		PersonaId:     t.PersonaId,
		PersonaName:   t.PersonaName,
		PersonaColor:  t.PersonaColor,
		Title:         t.Title,
		Description:   t.Description,
		MessageCount:  t.MessageCount,
		LastMessageAt: t.LastMessageAt,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

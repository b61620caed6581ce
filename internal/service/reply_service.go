package service

import (
	"context"
	"time"

	"persona-replicator-be/internal/constant"
	"persona-replicator-be/internal/dto"
	"persona-replicator-be/internal/entity"
	"persona-replicator-be/internal/mapper"
	"persona-replicator-be/internal/pkg/logger"
	"persona-replicator-be/internal/repository/contract"
	"persona-replicator-be/internal/repository/unitofwork"
	"persona-replicator-be/pkg/twin"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var errReplyDraftNotFound = fiber.NewError(fiber.StatusNotFound, "Reply draft not found")

// ReplyGenerator is satisfied by *twin.Engine.
type ReplyGenerator interface {
	GenerateTwinReply(ctx context.Context, persona twin.Persona, msg twin.InboundMessage, opts twin.Options) *twin.Reply
}

type IReplyService interface {
	Generate(ctx context.Context, userId uuid.UUID, req *dto.GenerateReplyRequest) (*dto.GenerateReplyResponse, error)
	Choose(ctx context.Context, userId uuid.UUID, replyId uuid.UUID, req *dto.ChooseReplyRequest) (*dto.ChooseReplyResponse, error)
}

type replyService struct {
	uowFactory      unitofwork.RepositoryFactory
	generator       ReplyGenerator
	drafts          contract.ReplyDraftRepository
	draftTTL        time.Duration
	metricsService  IMetricsService
	activityService IActivityService
	mapper          *mapper.PersonaMapper
	logger          logger.ILogger
	now             func() time.Time
}

func NewReplyService(
	uowFactory unitofwork.RepositoryFactory,
	generator ReplyGenerator,
	drafts contract.ReplyDraftRepository,
	draftTTL time.Duration,
	metricsService IMetricsService,
	activityService IActivityService,
	log logger.ILogger,
) IReplyService {
	return &replyService{
		uowFactory:      uowFactory,
		generator:       generator,
		drafts:          drafts,
		draftTTL:        draftTTL,
		metricsService:  metricsService,
		activityService: activityService,
		mapper:          mapper.NewPersonaMapper(),
		logger:          log,
		now:             time.Now,
	}
}

func (s *replyService) Generate(ctx context.Context, userId uuid.UUID, req *dto.GenerateReplyRequest) (*dto.GenerateReplyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	p, err := findPersona(ctx, uow, userId, req.PersonaId)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errPersonaNotFound
	}

	opts := twin.DefaultOptions()
	if req.Mode != "" {
		opts.Mode = twin.Mode(req.Mode)
	}
	if req.ToneShift != nil {
		opts.ToneShift = *req.ToneShift
	}
	if req.RiskTolerance != nil {
		opts.RiskTolerance = *req.RiskTolerance
	}
	opts = opts.Normalize()

	reply := s.generator.GenerateTwinReply(ctx, s.mapper.ToTwin(p), twin.InboundMessage{
		FromEmail: req.FromEmail,
		Subject:   req.Subject,
		Body:      req.Body,
	}, opts)

	draft := entity.ReplyDraft{
		Id:         uuid.New(),
		UserId:     userId,
		PersonaId:  p.Id,
		MessageId:  req.MessageId,
		Subject:    req.Subject,
		Mode:       opts.Mode,
		Origin:     reply.Origin,
		Candidates: reply.Candidates,
		CreatedAt:  s.now(),
	}
	replyId := &draft.Id
	if err := s.drafts.Save(ctx, &draft, s.draftTTL); err != nil {
		s.logger.Warn("REPLY", "Failed to store reply draft, candidates cannot be chosen", map[string]interface{}{
			"reply_id": draft.Id.String(),
			"error":    err.Error(),
		})
		replyId = nil
	}

	details := map[string]interface{}{
		"mode":           string(opts.Mode),
		"candidateCount": len(reply.Candidates),
	}
	if req.MessageId != nil {
		details["messageId"] = req.MessageId.String()
	}

	s.metricsService.RecordTokenUsage(ctx, userId, reply.TokensUsed)
	s.activityService.Record(ctx, userId, constant.ActionReplyGenerated, details)

	return &dto.GenerateReplyResponse{
		ReplyId:    replyId,
		Origin:     reply.Origin,
		Provider:   reply.Provider,
		Candidates: reply.Candidates,
	}, nil
}

func (s *replyService) Choose(ctx context.Context, userId uuid.UUID, replyId uuid.UUID, req *dto.ChooseReplyRequest) (*dto.ChooseReplyResponse, error) {
	draft, err := s.drafts.Get(ctx, replyId)
	if err != nil {
		return nil, err
	}
	if draft == nil || draft.UserId != userId {
		return nil, errReplyDraftNotFound
	}

	candidate, ok := draft.Candidates.Find(twin.Label(req.Label))
	if !ok {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Unknown candidate label")
	}

	confidence := candidate.Confidence
	s.metricsService.RecordMessageSent(ctx, userId, &confidence)
	s.activityService.Record(ctx, userId, constant.ActionMessageSent, map[string]interface{}{
		"replyId": replyId.String(),
		"label":   string(candidate.Label),
	})

	if err := s.drafts.Delete(ctx, replyId); err != nil {
		s.logger.Warn("REPLY", "Failed to delete reply draft", map[string]interface{}{
			"reply_id": replyId.String(),
			"error":    err.Error(),
		})
	}

	return &dto.ChooseReplyResponse{
		ReplyId:   replyId,
		Candidate: candidate,
	}, nil
}

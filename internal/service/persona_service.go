package service

import (
	"context"
	"errors"
	"time"

	"persona-replicator-be/internal/constant"
	"persona-replicator-be/internal/dto"
	"persona-replicator-be/internal/entity"
	"persona-replicator-be/internal/mapper"
	"persona-replicator-be/internal/pkg/logger"
	"persona-replicator-be/internal/repository/specification"
	"persona-replicator-be/internal/repository/unitofwork"
	"persona-replicator-be/pkg/persona"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const defaultPersonaColor = "#6366f1"

var (
	errPersonaNotFound = fiber.NewError(fiber.StatusNotFound, "Persona not found")
	errNoSamples       = fiber.NewError(fiber.StatusBadRequest, "No samples available for training")
)

type IPersonaService interface {
	GetMe(ctx context.Context, userId uuid.UUID) (*dto.PersonaResponse, error)
	GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.PersonaResponse, error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreatePersonaRequest) (*dto.PersonaResponse, error)
	Ingest(ctx context.Context, userId uuid.UUID, files []dto.UploadedSample) (*dto.IngestResponse, error)
	Retrain(ctx context.Context, userId uuid.UUID) (*dto.RetrainResponse, error)
}

type personaService struct {
	uowFactory      unitofwork.RepositoryFactory
	activityService IActivityService
	mapper          *mapper.PersonaMapper
	logger          logger.ILogger
	now             func() time.Time
}

func NewPersonaService(
	uowFactory unitofwork.RepositoryFactory,
	activityService IActivityService,
	log logger.ILogger,
) IPersonaService {
	return &personaService{
		uowFactory:      uowFactory,
		activityService: activityService,
		mapper:          mapper.NewPersonaMapper(),
		logger:          log,
		now:             time.Now,
	}
}

func (s *personaService) GetMe(ctx context.Context, userId uuid.UUID) (*dto.PersonaResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	p, err := findPersona(ctx, uow, userId, nil)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errPersonaNotFound
	}
	return toPersonaResponse(p), nil
}

func (s *personaService) GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.PersonaResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	personas, err := uow.PersonaRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.Latest(),
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.PersonaResponse, 0, len(personas))
	for _, p := range personas {
		result = append(result, toPersonaResponse(p))
	}
	return result, nil
}

func (s *personaService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreatePersonaRequest) (*dto.PersonaResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	color := req.Color
	if color == "" {
		color = defaultPersonaColor
	}

	p := entity.Persona{
		Id:        uuid.New(),
		UserId:    userId,
		Name:      req.Name,
		Color:     color,
		CreatedAt: s.now(),
	}
	if err := uow.PersonaRepository().Create(ctx, &p); err != nil {
		return nil, err
	}
	return toPersonaResponse(&p), nil
}

func (s *personaService) Ingest(ctx context.Context, userId uuid.UUID, files []dto.UploadedSample) (*dto.IngestResponse, error) {
	if len(files) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "No files uploaded")
	}
	if len(files) > constant.MaxIngestFiles {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Too many files, at most 10 per upload")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	p, err := findPersona(ctx, uow, userId, nil)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errPersonaNotFound
	}

	ingested := make([]*dto.IngestedSample, 0, len(files))
	for _, f := range files {
		sample := entity.PersonaSample{
			Id:        uuid.New(),
			PersonaId: p.Id,
			Source:    f.MimeType,
			Content:   f.Content,
			FileName:  f.FileName,
			FileSize:  f.Size,
			CreatedAt: s.now(),
		}
		if err := uow.PersonaSampleRepository().Create(ctx, &sample); err != nil {
			s.logger.Warn("PERSONA", "Skipping sample that failed to store", map[string]interface{}{
				"persona_id": p.Id.String(),
				"file_name":  f.FileName,
				"error":      err.Error(),
			})
			continue
		}
		ingested = append(ingested, &dto.IngestedSample{
			Id:   sample.Id,
			Name: sample.FileName,
			Size: sample.FileSize,
		})
	}

	s.activityService.Record(ctx, userId, constant.ActionSamplesUploaded, map[string]interface{}{
		"count": len(ingested),
	})

	return &dto.IngestResponse{Samples: ingested}, nil
}

func (s *personaService) Retrain(ctx context.Context, userId uuid.UUID) (*dto.RetrainResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	p, err := findPersona(ctx, uow, userId, nil)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errPersonaNotFound
	}

	samples, err := uow.PersonaSampleRepository().FindAll(ctx, specification.ByPersonaID{PersonaID: p.Id})
	if err != nil {
		return nil, err
	}

	contents := make([]string, 0, len(samples))
	for _, sample := range samples {
		contents = append(contents, sample.Content)
	}

	profile, err := persona.Analyze(contents, s.now())
	if errors.Is(err, persona.ErrNoSamples) {
		return nil, errNoSamples
	}
	if err != nil {
		return nil, err
	}

	updatedAt := s.now()
	p.Metadata = s.mapper.FromProfile(profile)
	p.UpdatedAt = &updatedAt
	if err := uow.PersonaRepository().Update(ctx, p); err != nil {
		return nil, err
	}

	s.activityService.Record(ctx, userId, constant.ActionPersonaRetrained, map[string]interface{}{
		"personaId": p.Id.String(),
	})

	return &dto.RetrainResponse{Persona: toPersonaResponse(p)}, nil
}

// findPersona returns the requested persona when personaId is set and the
// caller's newest one otherwise. A nil persona means none matched.
func findPersona(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, personaId *uuid.UUID) (*entity.Persona, error) {
	if personaId != nil {
		return uow.PersonaRepository().FindOne(ctx,
			specification.ByID{ID: *personaId},
			specification.UserOwnedBy{UserID: userId},
		)
	}
	return uow.PersonaRepository().FindOne(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.Latest(),
	)
}

func toPersonaResponse(p *entity.Persona) *dto.PersonaResponse {
	phrases := p.Metadata.CommonPhrases
	if phrases == nil {
		phrases = []string{}
	}
	return &dto.PersonaResponse{
		Id:    p.Id,
		Name:  p.Name,
		Color: p.Color,
		Metadata: dto.PersonaMetadataResponse{
			Tone:              p.Metadata.Tone,
			RiskLevel:         p.Metadata.RiskLevel,
			CommonPhrases:     phrases,
			WordCount:         p.Metadata.WordCount,
			AvgSentenceLength: p.Metadata.AvgSentenceLength,
			SampleCount:       p.Metadata.SampleCount,
			LastTrained:       p.Metadata.LastTrained,
		},
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

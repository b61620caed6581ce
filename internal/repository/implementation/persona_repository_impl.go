package implementation

import (
	"context"
	"errors"

	"persona-replicator-be/internal/entity"
	"persona-replicator-be/internal/mapper"
	"persona-replicator-be/internal/model"
	"persona-replicator-be/internal/repository/contract"
	"persona-replicator-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PersonaRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PersonaMapper
}

func NewPersonaRepository(db *gorm.DB) contract.PersonaRepository {
	return &PersonaRepositoryImpl{
		db:     db,
		mapper: mapper.NewPersonaMapper(),
	}
}

func (r *PersonaRepositoryImpl) Create(ctx context.Context, persona *entity.Persona) error {
	m := r.mapper.ToModel(persona)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*persona = *r.mapper.ToEntity(m)
	return nil
}

func (r *PersonaRepositoryImpl) Update(ctx context.Context, persona *entity.Persona) error {
	m := r.mapper.ToModel(persona)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*persona = *r.mapper.ToEntity(m)
	return nil
}

func (r *PersonaRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Persona, error) {
	var m model.Persona
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *PersonaRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Persona, error) {
	var models []*model.Persona
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *PersonaRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Persona{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

type personaUsageRow struct {
	Id           uuid.UUID
	Name         string
	Color        string
	MessageCount int64
}

func (r *PersonaRepositoryImpl) UsageByPersona(ctx context.Context, userId uuid.UUID) ([]*entity.PersonaUsage, error) {
	var rows []personaUsageRow
	err := r.db.WithContext(ctx).Table("personas AS p").
		Select("p.id, p.name, COALESCE(p.color, '') AS color, COUNT(cm.id) AS message_count").
		Joins("LEFT JOIN chat_messages cm ON cm.persona_id = p.id").
		Where("p.user_id = ? AND p.deleted_at IS NULL", userId).
		Group("p.id, p.name, p.color").
		Order("message_count DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	usage := make([]*entity.PersonaUsage, len(rows))
	for i, row := range rows {
		usage[i] = &entity.PersonaUsage{
			PersonaId:    row.Id,
			Name:         row.Name,
			Color:        row.Color,
			MessageCount: row.MessageCount,
		}
	}
	return usage, nil
}

type PersonaSampleRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PersonaSampleMapper
}

func NewPersonaSampleRepository(db *gorm.DB) contract.PersonaSampleRepository {
	return &PersonaSampleRepositoryImpl{
		db:     db,
		mapper: mapper.NewPersonaSampleMapper(),
	}
}

func (r *PersonaSampleRepositoryImpl) Create(ctx context.Context, sample *entity.PersonaSample) error {
	m := r.mapper.ToModel(sample)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*sample = *r.mapper.ToEntity(m)
	return nil
}

func (r *PersonaSampleRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PersonaSample, error) {
	var models []*model.PersonaSample
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *PersonaSampleRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.PersonaSample{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

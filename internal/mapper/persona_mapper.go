package mapper

import (
	"encoding/json"
	"time"

	"persona-replicator-be/internal/entity"
	"persona-replicator-be/internal/model"
	"persona-replicator-be/pkg/persona"
	"persona-replicator-be/pkg/twin"

	"gorm.io/datatypes"
)

type PersonaMapper struct{}

func NewPersonaMapper() *PersonaMapper {
	return &PersonaMapper{}
}

func (m *PersonaMapper) ToEntity(p *model.Persona) *entity.Persona {
	if p == nil {
		return nil
	}

	var updatedAt *time.Time
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		updatedAt = &t
	}

	// Rows written before the first retrain carry '{}' or NULL; both decode
	// to the zero metadata.
	var metadata entity.PersonaMetadata
	if len(p.Metadata) > 0 {
		_ = json.Unmarshal(p.Metadata, &metadata)
	}

	return &entity.Persona{
		Id:        p.Id,
		UserId:    p.UserId,
		Name:      p.Name,
		Color:     p.Color,
		Metadata:  metadata,
		CreatedAt: p.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *PersonaMapper) ToModel(p *entity.Persona) *model.Persona {
	if p == nil {
		return nil
	}

	var updatedAt time.Time
	if p.UpdatedAt != nil {
		updatedAt = *p.UpdatedAt
	}

	metadata, err := json.Marshal(p.Metadata)
	if err != nil {
		metadata = []byte("{}")
	}

	return &model.Persona{
		Id:        p.Id,
		UserId:    p.UserId,
		Name:      p.Name,
		Color:     p.Color,
		Metadata:  datatypes.JSON(metadata),
		CreatedAt: p.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *PersonaMapper) ToEntities(personas []*model.Persona) []*entity.Persona {
	entities := make([]*entity.Persona, len(personas))
	for i, p := range personas {
		entities[i] = m.ToEntity(p)
	}
	return entities
}

// ToTwin projects a stored persona onto what the reply pipeline reads.
func (m *PersonaMapper) ToTwin(p *entity.Persona) twin.Persona {
	return twin.Persona{
		Id:     p.Id,
		UserId: p.UserId,
		Name:   p.Name,
		Metadata: twin.Metadata{
			Tone:          p.Metadata.Tone,
			RiskLevel:     p.Metadata.RiskLevel,
			CommonPhrases: p.Metadata.CommonPhrases,
		},
	}
}

// FromProfile converts a retraining result into stored metadata.
func (m *PersonaMapper) FromProfile(p persona.Profile) entity.PersonaMetadata {
	lastTrained := p.LastTrained
	return entity.PersonaMetadata{
		Tone:              p.Tone,
		RiskLevel:         p.RiskLevel,
		CommonPhrases:     p.CommonPhrases,
		WordCount:         p.WordCount,
		AvgSentenceLength: p.AvgSentenceLength,
		SampleCount:       p.SampleCount,
		LastTrained:       &lastTrained,
	}
}

type PersonaSampleMapper struct{}

func NewPersonaSampleMapper() *PersonaSampleMapper {
	return &PersonaSampleMapper{}
}

func (m *PersonaSampleMapper) ToEntity(s *model.PersonaSample) *entity.PersonaSample {
	if s == nil {
		return nil
	}
	return &entity.PersonaSample{
		Id:        s.Id,
		PersonaId: s.PersonaId,
		Source:    s.Source,
		Content:   s.Content,
		FileName:  s.FileName,
		FileSize:  s.FileSize,
		CreatedAt: s.CreatedAt,
	}
}

func (m *PersonaSampleMapper) ToModel(s *entity.PersonaSample) *model.PersonaSample {
	if s == nil {
		return nil
	}
	return &model.PersonaSample{
		Id:        s.Id,
		PersonaId: s.PersonaId,
		Source:    s.Source,
		Content:   s.Content,
		FileName:  s.FileName,
		FileSize:  s.FileSize,
		CreatedAt: s.CreatedAt,
	}
}

func (m *PersonaSampleMapper) ToEntities(samples []*model.PersonaSample) []*entity.PersonaSample {
	entities := make([]*entity.PersonaSample, len(samples))
	for i, s := range samples {
		entities[i] = m.ToEntity(s)
	}
	return entities
}

package mapper

import (
	"persona-replicator-be/internal/entity"
	"persona-replicator-be/internal/model"
)

type ThreadMapper struct{}

func NewThreadMapper() *ThreadMapper {
	return &ThreadMapper{}
}

func (m *ThreadMapper) ToEntity(t *model.Thread) *entity.Thread {
	if t == nil {
		return nil
	}
	return &entity.Thread{
		Id:            t.Id,
		UserId:        t.UserId,
		PersonaId:     t.PersonaId,
		Title:         t.Title,
		Description:   t.Description,
		MessageCount:  t.MessageCount,
		LastMessageAt: t.LastMessageAt,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

func (m *ThreadMapper) ToModel(t *entity.Thread) *model.Thread {
	if t == nil {
		return nil
	}
	return &model.Thread{
		Id:            t.Id,
		UserId:        t.UserId,
		PersonaId:     t.PersonaId,
		Title:         t.Title,
		Description:   t.Description,
		MessageCount:  t.MessageCount,
		LastMessageAt: t.LastMessageAt,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

func (m *ThreadMapper) ToEntities(threads []*model.Thread) []*entity.Thread {
	entities := make([]*entity.Thread, len(threads))
	for i, t := range threads {
		entities[i] = m.ToEntity(t)
	}
	return entities
}

func (m *ThreadMapper) FromJoined(rows []*model.ThreadWithPersona) []*entity.Thread {
	entities := make([]*entity.Thread, len(rows))
	for i, r := range rows {
		e := m.ToEntity(&r.Thread)
		e.PersonaName = r.PersonaName
		e.PersonaColor = r.PersonaColor
		entities[i] = e
	}
	return entities
}

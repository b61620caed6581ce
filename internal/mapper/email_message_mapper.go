package mapper

import (
	"persona-replicator-be/internal/entity"
	"persona-replicator-be/internal/model"
)

type EmailMessageMapper struct{}

func NewEmailMessageMapper() *EmailMessageMapper {
	return &EmailMessageMapper{}
}

func (m *EmailMessageMapper) ToEntity(e *model.EmailMessage) *entity.EmailMessage {
	if e == nil {
		return nil
	}
	return &entity.EmailMessage{
		Id:         e.Id,
		UserId:     e.UserId,
		PersonaId:  e.PersonaId,
		Direction:  e.Direction,
		FromEmail:  e.FromEmail,
		ToEmail:    e.ToEmail,
		Subject:    e.Subject,
		Body:       e.Body,
		Snippet:    e.Snippet,
		Status:     e.Status,
		ReceivedAt: e.ReceivedAt,
		CreatedAt:  e.CreatedAt,
	}
}

func (m *EmailMessageMapper) ToModel(e *entity.EmailMessage) *model.EmailMessage {
	if e == nil {
		return nil
	}
	return &model.EmailMessage{
		Id:         e.Id,
		UserId:     e.UserId,
		PersonaId:  e.PersonaId,
		Direction:  e.Direction,
		FromEmail:  e.FromEmail,
		ToEmail:    e.ToEmail,
		Subject:    e.Subject,
		Body:       e.Body,
		Snippet:    e.Snippet,
		Status:     e.Status,
		ReceivedAt: e.ReceivedAt,
		CreatedAt:  e.CreatedAt,
	}
}

func (m *EmailMessageMapper) ToEntities(messages []*model.EmailMessage) []*entity.EmailMessage {
	entities := make([]*entity.EmailMessage, len(messages))
	for i, e := range messages {
		entities[i] = m.ToEntity(e)
	}
	return entities
}

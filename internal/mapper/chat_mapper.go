package mapper

import (
	"persona-replicator-be/internal/entity"
	"persona-replicator-be/internal/model"
)

type ChatMessageMapper struct{}

func NewChatMessageMapper() *ChatMessageMapper {
	return &ChatMessageMapper{}
}

func (m *ChatMessageMapper) ToEntity(c *model.ChatMessage) *entity.ChatMessage {
	if c == nil {
		return nil
	}
	return &entity.ChatMessage{
		Id:         c.Id,
		UserId:     c.UserId,
		PersonaId:  c.PersonaId,
		ThreadId:   c.ThreadId,
		Role:       c.Role,
		Content:    c.Content,
		Confidence: c.Confidence,
		CreatedAt:  c.CreatedAt,
	}
}

func (m *ChatMessageMapper) ToModel(c *entity.ChatMessage) *model.ChatMessage {
	if c == nil {
		return nil
	}
	return &model.ChatMessage{
		Id:         c.Id,
		UserId:     c.UserId,
		PersonaId:  c.PersonaId,
		ThreadId:   c.ThreadId,
		Role:       c.Role,
		Content:    c.Content,
		Confidence: c.Confidence,
		CreatedAt:  c.CreatedAt,
	}
}

func (m *ChatMessageMapper) ToEntities(messages []*model.ChatMessage) []*entity.ChatMessage {
	entities := make([]*entity.ChatMessage, len(messages))
	for i, c := range messages {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

package mapper

import (
	"encoding/json"

	"persona-replicator-be/internal/entity"
	"persona-replicator-be/internal/model"

	"gorm.io/datatypes"
)

type ActionMapper struct{}

func NewActionMapper() *ActionMapper {
	return &ActionMapper{}
}

func (m *ActionMapper) ToEntity(a *model.Action) *entity.Action {
	if a == nil {
		return nil
	}

	details := make(map[string]interface{})
	if len(a.Details) > 0 {
		_ = json.Unmarshal(a.Details, &details)
	}

	return &entity.Action{
		Id:         a.Id,
		UserId:     a.UserId,
		ActionType: a.ActionType,
		Details:    details,
		CreatedAt:  a.CreatedAt,
	}
}

func (m *ActionMapper) ToModel(a *entity.Action) *model.Action {
	if a == nil {
		return nil
	}

	details, err := json.Marshal(a.Details)
	if err != nil || a.Details == nil {
		details = []byte("{}")
	}

	return &model.Action{
		Id:         a.Id,
		UserId:     a.UserId,
		ActionType: a.ActionType,
		Details:    datatypes.JSON(details),
		CreatedAt:  a.CreatedAt,
	}
}

func (m *ActionMapper) ToEntities(actions []*model.Action) []*entity.Action {
	entities := make([]*entity.Action, len(actions))
	for i, a := range actions {
		entities[i] = m.ToEntity(a)
	}
	return entities
}

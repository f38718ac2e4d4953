package mapper

import (
	"encoding/json"

	"ai-filepilot-be/internal/entity"
	"ai-filepilot-be/internal/model"

	"gorm.io/datatypes"
)

type OperationLogMapper struct{}

func NewOperationLogMapper() *OperationLogMapper {
	return &OperationLogMapper{}
}

func (m *OperationLogMapper) ToEntity(l *model.OperationLog) *entity.OperationLog {
	if l == nil {
		return nil
	}

	var payload map[string]interface{}
	if len(l.Payload) > 0 {
		_ = json.Unmarshal(l.Payload, &payload)
	}

	return &entity.OperationLog{
		Id:          l.Id,
		OperationId: l.OperationId,
		UserId:      l.UserId,
		Kind:        l.Kind,
		Action:      entity.OperationAction(l.Action),
		Payload:     payload,
		CreatedAt:   l.CreatedAt,
	}
}

func (m *OperationLogMapper) ToModel(l *entity.OperationLog) *model.OperationLog {
	if l == nil {
		return nil
	}

	var payload datatypes.JSON
	if l.Payload != nil {
		raw, err := json.Marshal(l.Payload)
		if err == nil {
			payload = raw
		}
	}

	return &model.OperationLog{
		Id:          l.Id,
		OperationId: l.OperationId,
		UserId:      l.UserId,
		Kind:        l.Kind,
		Action:      string(l.Action),
		Payload:     payload,
		CreatedAt:   l.CreatedAt,
	}
}

func (m *OperationLogMapper) ToEntities(logs []*model.OperationLog) []*entity.OperationLog {
	entities := make([]*entity.OperationLog, len(logs))
	for i, l := range logs {
		entities[i] = m.ToEntity(l)
	}
	return entities
}

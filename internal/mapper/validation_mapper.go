package mapper

import (
	"spiritual-guidance-be/internal/entity"
	"spiritual-guidance-be/internal/model"

	"gorm.io/datatypes"
)

type ValidationMapper struct{}

func NewValidationMapper() *ValidationMapper {
	return &ValidationMapper{}
}

func (m *ValidationMapper) ToEntity(v *model.IntegrationValidation) *entity.IntegrationValidation {
	if v == nil {
		return nil
	}
	return &entity.IntegrationValidation{
		Id:               v.Id,
		IntegrationPoint: v.IntegrationPoint,
		SessionId:        v.SessionId,
		Attempt:          entity.ValidationAttempt(v.Attempt),
		Expected:         map[string]interface{}(v.Expected),
		Actual:           map[string]interface{}(v.Actual),
		Passed:           v.Passed,
		Score:            v.Score,
		ResponseTimeMs:   v.ResponseTimeMs,
		ErrorMessage:     v.ErrorMessage,
		CreatedAt:        v.CreatedAt,
	}
}

func (m *ValidationMapper) ToModel(v *entity.IntegrationValidation) *model.IntegrationValidation {
	if v == nil {
		return nil
	}
	return &model.IntegrationValidation{
		Id:               v.Id,
		IntegrationPoint: v.IntegrationPoint,
		SessionId:        v.SessionId,
		Attempt:          string(v.Attempt),
		Expected:         datatypes.JSONMap(v.Expected),
		Actual:           datatypes.JSONMap(v.Actual),
		Passed:           v.Passed,
		Score:            v.Score,
		ResponseTimeMs:   v.ResponseTimeMs,
		ErrorMessage:     v.ErrorMessage,
		CreatedAt:        v.CreatedAt,
	}
}

func (m *ValidationMapper) ToEntities(records []*model.IntegrationValidation) []*entity.IntegrationValidation {
	entities := make([]*entity.IntegrationValidation, len(records))
	for i, v := range records {
		entities[i] = m.ToEntity(v)
	}
	return entities
}

func (m *ValidationMapper) KnowledgePassageToEntity(p *model.KnowledgePassage) *entity.KnowledgePassage {
	if p == nil {
		return nil
	}
	return &entity.KnowledgePassage{
		Id:        p.Id,
		Topic:     p.Topic,
		Content:   p.Content,
		CreatedAt: p.CreatedAt,
	}
}

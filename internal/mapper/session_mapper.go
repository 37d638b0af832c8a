package mapper

import (
	"spiritual-guidance-be/internal/entity"
	"spiritual-guidance-be/internal/model"

	"gorm.io/datatypes"
)

type SessionMapper struct{}

func NewSessionMapper() *SessionMapper {
	return &SessionMapper{}
}

func (m *SessionMapper) ToEntity(s *model.Session) *entity.Session {
	if s == nil {
		return nil
	}
	return &entity.Session{
		Id:            s.Id,
		UserId:        s.UserId,
		ServiceTypeId: s.ServiceTypeId,
		Question:      s.Question,
		Guidance:      s.Guidance,
		Astrology:     map[string]interface{}(s.Astrology),
		CreditsUsed:   s.CreditsUsed,
		OriginalPrice: s.OriginalPrice,
		Status:        entity.SessionStatus(s.Status),
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func (m *SessionMapper) ToModel(s *entity.Session) *model.Session {
	if s == nil {
		return nil
	}
	return &model.Session{
		Id:            s.Id,
		UserId:        s.UserId,
		ServiceTypeId: s.ServiceTypeId,
		Question:      s.Question,
		Guidance:      s.Guidance,
		Astrology:     datatypes.JSONMap(s.Astrology),
		CreditsUsed:   s.CreditsUsed,
		OriginalPrice: s.OriginalPrice,
		Status:        string(s.Status),
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func (m *SessionMapper) ToEntities(sessions []*model.Session) []*entity.Session {
	entities := make([]*entity.Session, len(sessions))
	for i, s := range sessions {
		entities[i] = m.ToEntity(s)
	}
	return entities
}

// Service Type Mappers

func (m *SessionMapper) ServiceTypeToEntity(s *model.ServiceType) *entity.ServiceType {
	if s == nil {
		return nil
	}
	return &entity.ServiceType{
		Id:               s.Id,
		Name:             s.Name,
		Description:      s.Description,
		CreditsRequired:  s.CreditsRequired,
		Price:            s.Price,
		Enabled:          s.Enabled,
		FollowUpTemplate: s.FollowUpTemplate,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

func (m *SessionMapper) ServiceTypeToModel(s *entity.ServiceType) *model.ServiceType {
	if s == nil {
		return nil
	}
	return &model.ServiceType{
		Id:               s.Id,
		Name:             s.Name,
		Description:      s.Description,
		CreditsRequired:  s.CreditsRequired,
		Price:            s.Price,
		Enabled:          s.Enabled,
		FollowUpTemplate: s.FollowUpTemplate,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

func (m *SessionMapper) ServiceTypesToEntities(types []*model.ServiceType) []*entity.ServiceType {
	entities := make([]*entity.ServiceType, len(types))
	for i, s := range types {
		entities[i] = m.ServiceTypeToEntity(s)
	}
	return entities
}

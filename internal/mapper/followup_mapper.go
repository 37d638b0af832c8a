package mapper

import (
	"spiritual-guidance-be/internal/entity"
	"spiritual-guidance-be/internal/model"
)

type FollowUpMapper struct{}

func NewFollowUpMapper() *FollowUpMapper {
	return &FollowUpMapper{}
}

func (m *FollowUpMapper) ToEntity(f *model.FollowUpRequest) *entity.FollowUpRequest {
	if f == nil {
		return nil
	}
	return &entity.FollowUpRequest{
		Id:          f.Id,
		SessionId:   f.SessionId,
		Recipient:   f.Recipient,
		Channel:     entity.FollowUpChannel(f.Channel),
		Template:    f.Template,
		Status:      entity.FollowUpStatus(f.Status),
		Attempts:    f.Attempts,
		LastError:   f.LastError,
		ScheduledAt: f.ScheduledAt,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

func (m *FollowUpMapper) ToModel(f *entity.FollowUpRequest) *model.FollowUpRequest {
	if f == nil {
		return nil
	}
	return &model.FollowUpRequest{
		Id:          f.Id,
		SessionId:   f.SessionId,
		Recipient:   f.Recipient,
		Channel:     string(f.Channel),
		Template:    f.Template,
		Status:      string(f.Status),
		Attempts:    f.Attempts,
		LastError:   f.LastError,
		ScheduledAt: f.ScheduledAt,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

func (m *FollowUpMapper) ToEntities(reqs []*model.FollowUpRequest) []*entity.FollowUpRequest {
	entities := make([]*entity.FollowUpRequest, len(reqs))
	for i, f := range reqs {
		entities[i] = m.ToEntity(f)
	}
	return entities
}

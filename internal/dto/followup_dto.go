package dto

import (
	"time"

	"github.com/google/uuid"
)

type ScheduleFollowUpRequest struct {
	SessionId   uuid.UUID `json:"session_id" validate:"required"`
	Recipient   string    `json:"recipient" validate:"required,email"`
	Template    string    `json:"template" validate:"required"`
	Channel     string    `json:"channel" validate:"required,oneof=email"`
	ScheduledAt time.Time `json:"scheduled_at"`
}

type FollowUpResponse struct {
	Id          uuid.UUID `json:"id"`
	SessionId   uuid.UUID `json:"session_id"`
	Recipient   string    `json:"recipient"`
	Channel     string    `json:"channel"`
	Status      string    `json:"status"`
	Attempts    int       `json:"attempts"`
	ScheduledAt time.Time `json:"scheduled_at"`
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

type FollowUpStatus string

const (
	FollowUpStatusPending FollowUpStatus = "pending"
	FollowUpStatusSent    FollowUpStatus = "sent"
	FollowUpStatusFailed  FollowUpStatus = "failed"
)

type FollowUpChannel string

const (
	FollowUpChannelEmail FollowUpChannel = "email"
)

type FollowUpRequest struct {
	Id          uuid.UUID
	SessionId   uuid.UUID
	Recipient   string
	Channel     FollowUpChannel
	Template    string
	Status      FollowUpStatus
	Attempts    int
	LastError   *string
	ScheduledAt time.Time
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

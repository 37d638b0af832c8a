package entity

import (
	"time"

	"github.com/google/uuid"
)

type SessionStatus string

const (
	SessionStatusInProgress SessionStatus = "in_progress"
	SessionStatusCompleted  SessionStatus = "completed"
	SessionStatusFailed     SessionStatus = "failed"
)

// Session is created only after a successful credit debit and is never
// hard-deleted (audit + follow-up both reference it).
type Session struct {
	Id            uuid.UUID
	UserId        uuid.UUID
	ServiceTypeId uuid.UUID
	Question      string
	Guidance      string
	Astrology     map[string]interface{}
	CreditsUsed   int
	OriginalPrice float64
	Status        SessionStatus
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

type ServiceType struct {
	Id               uuid.UUID
	Name             string
	Description      string
	CreditsRequired  int
	Price            float64
	Enabled          bool
	FollowUpTemplate string
	CreatedAt        time.Time
	UpdatedAt        *time.Time
}

package model

import (
	"time"

	"github.com/google/uuid"
)

type FollowUpRequest struct {
	Id          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId   uuid.UUID  `gorm:"type:uuid;not null;index"`
	Recipient   string     `gorm:"type:varchar(255);not null"`
	Channel     string     `gorm:"type:varchar(20);not null;default:'email'"`
	Template    string     `gorm:"type:varchar(100);not null"`
	Status      string     `gorm:"type:varchar(20);not null;default:'pending';index"`
	Attempts    int        `gorm:"not null;default:0"`
	LastError   *string    `gorm:"type:text"`
	ScheduledAt time.Time  `gorm:"not null;index"`
	CreatedAt   time.Time  `gorm:"autoCreateTime"`
	UpdatedAt   *time.Time `gorm:"autoUpdateTime"`
}

func (FollowUpRequest) TableName() string {
	return "follow_up_requests"
}

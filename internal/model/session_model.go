package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ServiceType struct {
	Id               uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name             string     `gorm:"type:varchar(100);uniqueIndex;not null"`
	Description      string     `gorm:"type:text"`
	CreditsRequired  int        `gorm:"not null;check:credits_required > 0"`
	Price            float64    `gorm:"type:numeric(10,2);not null;default:0"`
	Enabled          bool       `gorm:"not null;default:true"`
	FollowUpTemplate string     `gorm:"type:varchar(100);default:'session_followup_v1'"`
	CreatedAt        time.Time  `gorm:"autoCreateTime"`
	UpdatedAt        *time.Time `gorm:"autoUpdateTime"`
}

func (ServiceType) TableName() string {
	return "service_types"
}

type Session struct {
	Id            uuid.UUID         `gorm:"type:uuid;primaryKey"`
	UserId        uuid.UUID         `gorm:"type:uuid;not null;index"`
	ServiceTypeId uuid.UUID         `gorm:"type:uuid;not null;index"`
	Question      string            `gorm:"type:text;not null"`
	Guidance      string            `gorm:"type:text"`
	Astrology     datatypes.JSONMap `gorm:"type:jsonb"`
	CreditsUsed   int               `gorm:"not null"`
	OriginalPrice float64           `gorm:"type:numeric(10,2);not null;default:0"`
	Status        string            `gorm:"type:session_status;not null;default:'in_progress';index"`
	CreatedAt     time.Time         `gorm:"default:now();not null"`
	UpdatedAt     *time.Time        `gorm:"autoUpdateTime"`
}

func (Session) TableName() string {
	return "sessions"
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email         string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	FullName      string    `gorm:"type:varchar(255);not null"`
	Phone         *string   `gorm:"type:varchar(20)"`
	Status        string    `gorm:"type:varchar(50);not null;default:'pending'"`
	CreditBalance int       `gorm:"not null;default:0;check:credit_balance >= 0"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

type CreditTransaction struct {
	Id              uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId          uuid.UUID  `gorm:"type:uuid;not null;index"`
	TransactionType string     `gorm:"type:credit_transaction_type;not null"`
	Amount          int        `gorm:"not null"`
	ServiceUsed     *string    `gorm:"type:text;index"`
	RelatedId       *uuid.UUID `gorm:"type:uuid"`
	Notes           *string    `gorm:"type:text"`
	CreatedAt       time.Time  `gorm:"default:now();not null"`
}

func (CreditTransaction) TableName() string {
	return "credit_transactions"
}

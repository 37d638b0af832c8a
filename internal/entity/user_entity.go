package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserStatus string

const (
	UserStatusPending UserStatus = "pending"
	UserStatusActive  UserStatus = "active"
	UserStatusBlocked UserStatus = "blocked"
)

type User struct {
	Id            uuid.UUID
	Email         string
	FullName      string
	Phone         *string
	Status        UserStatus
	CreditBalance int // Mutated only through ledger operations
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type CreditTransactionType string

const (
	CreditTxGrant      CreditTransactionType = "grant"
	CreditTxSpend      CreditTransactionType = "spend"
	CreditTxRefund     CreditTransactionType = "refund"
	CreditTxAdjustment CreditTransactionType = "adjustment"
)

// CreditTransaction is the append-only audit trail behind every balance
// change. RelatedId references the session or top-up order that caused it.
type CreditTransaction struct {
	Id              uuid.UUID
	UserId          uuid.UUID
	TransactionType CreditTransactionType
	Amount          int
	ServiceUsed     *string
	RelatedId       *uuid.UUID
	Notes           *string
	CreatedAt       time.Time
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

type ValidationAttempt string

const (
	AttemptPrimary  ValidationAttempt = "primary"
	AttemptFallback ValidationAttempt = "fallback"
)

// IntegrationValidation records exactly one external call attempt with its
// quality score. Rows are append-only; never mutated after creation.
type IntegrationValidation struct {
	Id               uuid.UUID
	IntegrationPoint string
	SessionId        uuid.UUID
	Attempt          ValidationAttempt
	Expected         map[string]interface{}
	Actual           map[string]interface{}
	Passed           bool
	Score            float64
	ResponseTimeMs   int64
	ErrorMessage     *string
	CreatedAt        time.Time
}

// IntegrationHealth is an aggregate view over validation records for one
// integration point.
type IntegrationHealth struct {
	IntegrationPoint  string
	TotalCalls        int64
	PassedCalls       int64
	FallbackCalls     int64
	AverageScore      float64
	AverageLatencyMs  float64
	LastFailureReason *string
}

// KnowledgePassage is one chunk of the seeded spiritual knowledge corpus.
// The embedding lives on the model side (pgvector column).
type KnowledgePassage struct {
	Id        uuid.UUID
	Topic     string
	Content   string
	CreatedAt time.Time
}

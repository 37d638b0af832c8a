package dto

import (
	"time"

	"github.com/google/uuid"
)

// CallMetadata describes one external integration call attempt. Published to
// the monitor bus right after the call returns; the validator consumes it off
// the critical path.
type CallMetadata struct {
	IntegrationPoint string                 `json:"integration_point"` // e.g. "birth_chart", "guidance_rag"
	SessionId        uuid.UUID              `json:"session_id"`
	Attempt          string                 `json:"attempt"` // "primary" | "fallback"
	Success          bool                   `json:"success"`
	ResponseTimeMs   int64                  `json:"response_time_ms"`
	Expected         map[string]interface{} `json:"expected,omitempty"`
	Actual           map[string]interface{} `json:"actual,omitempty"`
	ErrorMessage     string                 `json:"error_message,omitempty"`
	OccurredAt       time.Time              `json:"occurred_at"`
}

type ValidationRecordResponse struct {
	Id               uuid.UUID `json:"id"`
	IntegrationPoint string    `json:"integration_point"`
	SessionId        uuid.UUID `json:"session_id"`
	Attempt          string    `json:"attempt"`
	Passed           bool      `json:"passed"`
	Score            float64   `json:"score"`
	ResponseTimeMs   int64     `json:"response_time_ms"`
	ErrorMessage     string    `json:"error_message,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

type IntegrationHealthResponse struct {
	IntegrationPoint  string  `json:"integration_point"`
	TotalCalls        int64   `json:"total_calls"`
	PassedCalls       int64   `json:"passed_calls"`
	FallbackCalls     int64   `json:"fallback_calls"`
	AverageScore      float64 `json:"average_score"`
	AverageLatencyMs  float64 `json:"average_latency_ms"`
	LastFailureReason string  `json:"last_failure_reason,omitempty"`
}

type MonitorAlertDTO struct {
	IntegrationPoint string    `json:"integration_point"`
	SessionId        uuid.UUID `json:"session_id"`
	Score            float64   `json:"score"`
	Threshold        float64   `json:"threshold"`
	Reason           string    `json:"reason"`
	OccurredAt       time.Time `json:"occurred_at"`
}

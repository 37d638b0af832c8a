package dto

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BirthDetailsDTO carries optional birth data for chart calculation.
// All three of date, time and location are required for a real chart;
// the adapter degrades gracefully when any is missing.
type BirthDetailsDTO struct {
	BirthDate string  `json:"birth_date,omitempty"` // YYYY-MM-DD
	BirthTime string  `json:"birth_time,omitempty"` // HH:MM
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
	Location  string  `json:"location,omitempty"`
}

type StartSessionRequest struct {
	ServiceType  string           `json:"service_type" validate:"required"`
	Question     string           `json:"question" validate:"required,min=3"`
	BirthDetails *BirthDetailsDTO `json:"birth_details,omitempty"`
}

type SessionMetadataDTO struct {
	ChartSource   string `json:"chart_source,omitempty"` // "success" | "fallback" | "unavailable"
	GuidanceMode  string `json:"guidance_mode"`          // "rag" | "template"
	ComposeTimeMs int64  `json:"compose_time_ms"`
}

type StartSessionResponse struct {
	SessionId        uuid.UUID              `json:"session_id"`
	Guidance         string                 `json:"guidance"`
	Astrology        map[string]interface{} `json:"astrology,omitempty"`
	CreditsDeducted  int                    `json:"credits_deducted"`
	RemainingCredits int                    `json:"remaining_credits"`
	Metadata         SessionMetadataDTO     `json:"metadata"`
}

type SessionSummaryResponse struct {
	Id          uuid.UUID `json:"id"`
	ServiceType string    `json:"service_type"`
	Question    string    `json:"question"`
	Status      string    `json:"status"`
	CreditsUsed int       `json:"credits_used"`
	CreatedAt   time.Time `json:"created_at"`
}

type SessionDetailResponse struct {
	Id          uuid.UUID              `json:"id"`
	ServiceType string                 `json:"service_type"`
	Question    string                 `json:"question"`
	Guidance    string                 `json:"guidance"`
	Astrology   map[string]interface{} `json:"astrology,omitempty"`
	Status      string                 `json:"status"`
	CreditsUsed int                    `json:"credits_used"`
	CreatedAt   time.Time              `json:"created_at"`
}

type ServiceTypeResponse struct {
	Id              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	CreditsRequired int       `json:"credits_required"`
	Price           float64   `json:"price"`
}

// --- Typed errors ---

// ClientInputError signals a malformed or unusable request (bad/disabled
// service type, missing fields). Surfaced as HTTP 400.
type ClientInputError struct {
	Message string
}

func (e *ClientInputError) Error() string {
	return e.Message
}

// InsufficientCreditsError carries the exact credit shortfall so the client
// can prompt a top-up. Surfaced as HTTP 402.
type InsufficientCreditsError struct {
	Required  int
	Available int
}

func (e *InsufficientCreditsError) Error() string {
	return fmt.Sprintf("insufficient credits: required %d, available %d", e.Required, e.Available)
}

// NotFoundError is surfaced as HTTP 404.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// ProviderUnavailableError marks an external provider failure. It triggers
// fallback composition and is never surfaced to the user directly.
type ProviderUnavailableError struct {
	Provider string
	Err      error
}

func (e *ProviderUnavailableError) Error() string {
	return fmt.Sprintf("provider %s unavailable: %v", e.Provider, e.Err)
}

func (e *ProviderUnavailableError) Unwrap() error {
	return e.Err
}

// PersistenceError marks a database failure on the critical path. Surfaced
// as HTTP 500 after any uncommitted transaction is rolled back.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

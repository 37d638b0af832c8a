package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "SILENT_FAILURE").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent helps embed common logic if needed,
// strictly creating valid implementations is preferred though.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Event type codes
const (
	TypeSessionCompleted    = "SESSION_COMPLETED"
	TypeSilentFailure       = "SILENT_FAILURE"
	TypeReconciliationAlert = "RECONCILIATION_ALERT"
)

// NewSessionCompleted is emitted after the settlement transaction commits.
func NewSessionCompleted(sessionId, userId string, creditsUsed int) Event {
	return BaseEvent{
		Type: TypeSessionCompleted,
		Data: map[string]interface{}{
			"session_id":   sessionId,
			"user_id":      userId,
			"credits_used": creditsUsed,
		},
		OccurredAt: time.Now(),
	}
}

// NewSilentFailure is emitted when a validation score falls below threshold
// even though the integration call reported success.
func NewSilentFailure(integrationPoint, sessionId, reason string, score, threshold float64) Event {
	return BaseEvent{
		Type: TypeSilentFailure,
		Data: map[string]interface{}{
			"integration_point": integrationPoint,
			"session_id":        sessionId,
			"reason":            reason,
			"score":             score,
			"threshold":         threshold,
		},
		OccurredAt: time.Now(),
	}
}

// NewReconciliationAlert is emitted when an automatic refund compensates a
// failed settlement and an operator should verify the ledger.
func NewReconciliationAlert(sessionId, userId string, creditsRefunded int, reason string) Event {
	return BaseEvent{
		Type: TypeReconciliationAlert,
		Data: map[string]interface{}{
			"session_id":       sessionId,
			"user_id":          userId,
			"credits_refunded": creditsRefunded,
			"reason":           reason,
		},
		OccurredAt: time.Now(),
	}
}

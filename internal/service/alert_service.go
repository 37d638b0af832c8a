package service

import (
	"context"
	"strings"
	"time"

	"spiritual-guidance-be/internal/dto"
	"spiritual-guidance-be/internal/pkg/logger"
	"spiritual-guidance-be/internal/websocket"
	"spiritual-guidance-be/pkg/events"
	pktNats "spiritual-guidance-be/pkg/nats"

	"github.com/google/uuid"
)

// AlertService relays operational events from the NATS bus onto the
// monitoring websocket stream so dashboards see them in real time.
type AlertService struct {
	subscriber *pktNats.Subscriber
	hub        *websocket.Hub
	logger     logger.ILogger
}

func NewAlertService(sub *pktNats.Subscriber, hub *websocket.Hub, log logger.ILogger) *AlertService {
	return &AlertService{
		subscriber: sub,
		hub:        hub,
		logger:     log,
	}
}

// Start begins listening to the event bus with a durable consumer.
func (s *AlertService) Start() {
	err := s.subscriber.Subscribe("events.>", "alert-service-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("AlertService", "Failed to start alert subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("AlertService", "Alert service started, listening to events.>", nil)
}

func (s *AlertService) handleEvent(ctx context.Context, event events.Event) error {
	// The NATS subject carries the "events." prefix
	typeCode := strings.TrimPrefix(event.EventType(), "events.")
	payload := event.Payload()

	switch typeCode {
	case events.TypeSilentFailure:
		s.relay(dto.MonitorAlertDTO{
			IntegrationPoint: asString(payload["integration_point"]),
			SessionId:        asUUID(payload["session_id"]),
			Score:            asFloat(payload["score"]),
			Threshold:        asFloat(payload["threshold"]),
			Reason:           asString(payload["reason"]),
			OccurredAt:       time.Now(),
		})

	case events.TypeReconciliationAlert:
		s.relay(dto.MonitorAlertDTO{
			IntegrationPoint: "credit_ledger",
			SessionId:        asUUID(payload["session_id"]),
			Reason:           asString(payload["reason"]),
			OccurredAt:       time.Now(),
		})
	}

	return nil
}

func (s *AlertService) relay(alert dto.MonitorAlertDTO) {
	if s.hub == nil {
		return
	}
	s.hub.BroadcastAlert(alert)
}

func asString(v interface{}) string {
	str, _ := v.(string)
	return str
}

func asFloat(v interface{}) float64 {
	f, _ := v.(float64)
	return f
}

func asUUID(v interface{}) uuid.UUID {
	str, _ := v.(string)
	id, err := uuid.Parse(str)
	if err != nil {
		return uuid.Nil
	}
	return id
}

package service

import (
	"context"
	"encoding/json"
	"time"

	"spiritual-guidance-be/internal/dto"
	"spiritual-guidance-be/internal/entity"
	"spiritual-guidance-be/internal/pkg/logger"
	"spiritual-guidance-be/internal/repository/specification"
	"spiritual-guidance-be/internal/repository/unitofwork"
	"spiritual-guidance-be/pkg/events"
	pktNats "spiritual-guidance-be/pkg/nats"
	"spiritual-guidance-be/pkg/validation"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// AlertBroadcaster pushes monitoring alerts to connected dashboard clients.
type AlertBroadcaster interface {
	BroadcastAlert(alert dto.MonitorAlertDTO)
}

type IMonitorService interface {
	// Record publishes call metadata onto the monitor bus. Best-effort and
	// non-blocking; it never returns an error to the caller.
	Record(meta *dto.CallMetadata)

	// Run consumes the bus until ctx is cancelled. Meant for one goroutine.
	Run(ctx context.Context)

	GetValidations(ctx context.Context, integrationPoint string, limit, offset int) ([]*dto.ValidationRecordResponse, error)
	GetHealth(ctx context.Context, since time.Time) ([]*dto.IntegrationHealthResponse, error)
	Prune(ctx context.Context, retentionDays int) (int64, error)

	Close() error
}

type monitorService struct {
	uowFactory       unitofwork.RepositoryFactory
	scorer           *validation.Scorer
	bus              *gochannel.GoChannel
	topic            string
	eventPublisher   *pktNats.Publisher
	hub              AlertBroadcaster
	logger           logger.ILogger
	validatorTimeout time.Duration
}

func NewMonitorService(
	uowFactory unitofwork.RepositoryFactory,
	scorer *validation.Scorer,
	topic string,
	eventPublisher *pktNats.Publisher,
	hub AlertBroadcaster,
	log logger.ILogger,
	validatorTimeout time.Duration,
) IMonitorService {
	if topic == "" {
		topic = "monitor.calls"
	}
	if validatorTimeout <= 0 {
		validatorTimeout = 20 * time.Second
	}

	// The bus delivers asynchronously, so Record returns without waiting on
	// the consumer. A stalled validator accumulates pending deliveries in
	// memory instead of back-pressuring the request path.
	bus := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: 256,
	}, watermill.NopLogger{})

	return &monitorService{
		uowFactory:       uowFactory,
		scorer:           scorer,
		bus:              bus,
		topic:            topic,
		eventPublisher:   eventPublisher,
		hub:              hub,
		logger:           log,
		validatorTimeout: validatorTimeout,
	}
}

func (s *monitorService) Record(meta *dto.CallMetadata) {
	if meta.OccurredAt.IsZero() {
		meta.OccurredAt = time.Now()
	}

	payload, err := json.Marshal(meta)
	if err != nil {
		s.logger.Error("Monitor", "Failed to marshal call metadata", map[string]interface{}{"error": err.Error()})
		return
	}

	if err := s.bus.Publish(s.topic, message.NewMessage(watermill.NewUUID(), payload)); err != nil {
		// Monitoring is best-effort, the primary request must not notice
		s.logger.Error("Monitor", "Failed to publish call metadata", map[string]interface{}{"error": err.Error()})
	}
}

func (s *monitorService) Run(ctx context.Context) {
	messages, err := s.bus.Subscribe(ctx, s.topic)
	if err != nil {
		s.logger.Error("Monitor", "Failed to subscribe to monitor bus", map[string]interface{}{"error": err.Error()})
		return
	}

	s.logger.Info("Monitor", "Validator consumer started", map[string]interface{}{"topic": s.topic})

	for msg := range messages {
		var meta dto.CallMetadata
		if err := json.Unmarshal(msg.Payload, &meta); err != nil {
			s.logger.Error("Monitor", "Malformed call metadata, dropping", map[string]interface{}{"error": err.Error()})
			msg.Ack()
			continue
		}

		s.process(ctx, &meta)
		msg.Ack()
	}
}

// process scores the call and appends a validation record. Every failure in
// here is swallowed after logging.
func (s *monitorService) process(ctx context.Context, meta *dto.CallMetadata) {
	valCtx, cancel := context.WithTimeout(ctx, s.validatorTimeout)
	defer cancel()

	result := s.scorer.Validate(valCtx, meta.IntegrationPoint, meta.Expected, meta.Actual)

	var errMsg *string
	if meta.ErrorMessage != "" {
		errMsg = &meta.ErrorMessage
	} else if result.Reason != "" {
		errMsg = &result.Reason
	}

	record := &entity.IntegrationValidation{
		Id:               uuid.New(),
		IntegrationPoint: meta.IntegrationPoint,
		SessionId:        meta.SessionId,
		Attempt:          entity.ValidationAttempt(meta.Attempt),
		Expected:         meta.Expected,
		Actual:           meta.Actual,
		Passed:           result.Passed,
		Score:            result.Score,
		ResponseTimeMs:   meta.ResponseTimeMs,
		ErrorMessage:     errMsg,
		CreatedAt:        time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(valCtx)
	if err := uow.ValidationRepository().Create(valCtx, record); err != nil {
		s.logger.Error("Monitor", "Failed to store validation record", map[string]interface{}{
			"integration_point": meta.IntegrationPoint,
			"session_id":        meta.SessionId,
			"error":             err.Error(),
		})
		// Storage failure must never degrade the core service
	}

	if !result.Passed && meta.Success {
		// The call reported success but the content is unusable
		s.raiseSilentFailureAlert(valCtx, meta, result)
	}
}

func (s *monitorService) raiseSilentFailureAlert(ctx context.Context, meta *dto.CallMetadata, result validation.Result) {
	s.logger.Warn("Monitor", "Silent failure detected", map[string]interface{}{
		"integration_point": meta.IntegrationPoint,
		"session_id":        meta.SessionId,
		"score":             result.Score,
		"threshold":         s.scorer.Threshold(),
		"reason":            result.Reason,
	})

	if s.eventPublisher != nil {
		evt := events.NewSilentFailure(meta.IntegrationPoint, meta.SessionId.String(), result.Reason, result.Score, s.scorer.Threshold())
		err := s.eventPublisher.Publish(ctx, evt)
		if err == nil {
			// The alert relay worker forwards the event to dashboards;
			// broadcasting here too would deliver every alert twice.
			return
		}
		s.logger.Error("Monitor", "Failed to publish silent-failure event, broadcasting directly", map[string]interface{}{"error": err.Error()})
	}

	if s.hub != nil {
		s.hub.BroadcastAlert(dto.MonitorAlertDTO{
			IntegrationPoint: meta.IntegrationPoint,
			SessionId:        meta.SessionId,
			Score:            result.Score,
			Threshold:        s.scorer.Threshold(),
			Reason:           result.Reason,
			OccurredAt:       time.Now(),
		})
	}
}

func (s *monitorService) GetValidations(ctx context.Context, integrationPoint string, limit, offset int) ([]*dto.ValidationRecordResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	}
	if integrationPoint != "" {
		specs = append(specs, specification.ByIntegrationPoint{Point: integrationPoint})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	records, err := uow.ValidationRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	var res []*dto.ValidationRecordResponse
	for _, r := range records {
		item := &dto.ValidationRecordResponse{
			Id:               r.Id,
			IntegrationPoint: r.IntegrationPoint,
			SessionId:        r.SessionId,
			Attempt:          string(r.Attempt),
			Passed:           r.Passed,
			Score:            r.Score,
			ResponseTimeMs:   r.ResponseTimeMs,
			CreatedAt:        r.CreatedAt,
		}
		if r.ErrorMessage != nil {
			item.ErrorMessage = *r.ErrorMessage
		}
		res = append(res, item)
	}
	return res, nil
}

func (s *monitorService) GetHealth(ctx context.Context, since time.Time) ([]*dto.IntegrationHealthResponse, error) {
	if since.IsZero() {
		since = time.Now().Add(-24 * time.Hour)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	summaries, err := uow.ValidationRepository().GetHealthSummary(ctx, since)
	if err != nil {
		return nil, err
	}

	var res []*dto.IntegrationHealthResponse
	for _, h := range summaries {
		item := &dto.IntegrationHealthResponse{
			IntegrationPoint: h.IntegrationPoint,
			TotalCalls:       h.TotalCalls,
			PassedCalls:      h.PassedCalls,
			FallbackCalls:    h.FallbackCalls,
			AverageScore:     h.AverageScore,
			AverageLatencyMs: h.AverageLatencyMs,
		}
		if h.LastFailureReason != nil {
			item.LastFailureReason = *h.LastFailureReason
		}
		res = append(res, item)
	}
	return res, nil
}

func (s *monitorService) Prune(ctx context.Context, retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		retentionDays = 30
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	deleted, err := uow.ValidationRepository().DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	s.logger.Info("Monitor", "Pruned validation records", map[string]interface{}{
		"deleted": deleted,
		"cutoff":  cutoff,
	})
	return deleted, nil
}

func (s *monitorService) Close() error {
	return s.bus.Close()
}

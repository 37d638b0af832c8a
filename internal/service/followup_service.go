package service

import (
	"context"
	"time"

	"spiritual-guidance-be/internal/dto"
	"spiritual-guidance-be/internal/entity"
	"spiritual-guidance-be/internal/pkg/logger"
	"spiritual-guidance-be/internal/pkg/mailer"
	"spiritual-guidance-be/internal/repository/specification"
	"spiritual-guidance-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const (
	maxDeliveryAttempts = 3
	dueBatchSize        = 20
)

// Backoff between delivery attempts: 1m after the first failure, then 5m,
// then 15m before the request is marked failed.
var retryBackoff = []time.Duration{time.Minute, 5 * time.Minute, 15 * time.Minute}

type IFollowUpService interface {
	// Schedule enqueues a follow-up for a completed session. Fire-and-forget
	// from the orchestrator's perspective.
	Schedule(ctx context.Context, session *entity.Session, serviceType *entity.ServiceType, recipient string) (*dto.FollowUpResponse, error)

	// Run drains due follow-ups on a fixed interval until ctx is cancelled.
	Run(ctx context.Context)

	GetBySession(ctx context.Context, sessionId uuid.UUID) ([]*dto.FollowUpResponse, error)
}

type followUpService struct {
	uowFactory   unitofwork.RepositoryFactory
	emailService mailer.IEmailService
	logger       logger.ILogger
	delay        time.Duration
	pollInterval time.Duration
}

func NewFollowUpService(uowFactory unitofwork.RepositoryFactory, emailService mailer.IEmailService, log logger.ILogger, delay time.Duration) IFollowUpService {
	if delay <= 0 {
		delay = 72 * time.Hour
	}
	return &followUpService{
		uowFactory:   uowFactory,
		emailService: emailService,
		logger:       log,
		delay:        delay,
		pollInterval: time.Minute,
	}
}

func (s *followUpService) Schedule(ctx context.Context, session *entity.Session, serviceType *entity.ServiceType, recipient string) (*dto.FollowUpResponse, error) {
	template := serviceType.FollowUpTemplate
	if template == "" {
		template = "default_followup"
	}

	req := &entity.FollowUpRequest{
		Id:          uuid.New(),
		SessionId:   session.Id,
		Recipient:   recipient,
		Channel:     entity.FollowUpChannelEmail,
		Template:    template,
		Status:      entity.FollowUpStatusPending,
		ScheduledAt: time.Now().Add(s.delay),
		CreatedAt:   time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.FollowUpRepository().Create(ctx, req); err != nil {
		return nil, err
	}

	return toFollowUpResponse(req), nil
}

func (s *followUpService) GetBySession(ctx context.Context, sessionId uuid.UUID) ([]*dto.FollowUpResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	reqs, err := uow.FollowUpRepository().FindAll(ctx,
		specification.Filter("session_id", sessionId),
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	var res []*dto.FollowUpResponse
	for _, r := range reqs {
		res = append(res, toFollowUpResponse(r))
	}
	return res, nil
}

func (s *followUpService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	s.logger.Info("FollowUp", "Delivery worker started", map[string]interface{}{"poll_interval": s.pollInterval.String()})

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.drainDue(ctx)
		}
	}
}

func (s *followUpService) drainDue(ctx context.Context) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		s.logger.Error("FollowUp", "Failed to begin worker transaction", map[string]interface{}{"error": err.Error()})
		return
	}
	defer uow.Rollback()

	due, err := uow.FollowUpRepository().FindDue(ctx, time.Now(), dueBatchSize)
	if err != nil {
		s.logger.Error("FollowUp", "Failed to load due follow-ups", map[string]interface{}{"error": err.Error()})
		return
	}

	for _, req := range due {
		s.deliver(ctx, uow, req)
	}

	if err := uow.Commit(); err != nil {
		s.logger.Error("FollowUp", "Failed to commit worker transaction", map[string]interface{}{"error": err.Error()})
	}
}

func (s *followUpService) deliver(ctx context.Context, uow unitofwork.UnitOfWork, req *entity.FollowUpRequest) {
	session, err := uow.SessionRepository().FindOne(ctx, specification.ByID{ID: req.SessionId})
	if err != nil || session == nil {
		s.fail(ctx, uow, req, "originating session not found")
		return
	}

	serviceName := req.Template
	if serviceType, err := uow.ServiceTypeRepository().FindOne(ctx, specification.ByID{ID: session.ServiceTypeId}); err == nil && serviceType != nil {
		serviceName = serviceType.Name
	}

	sendErr := s.emailService.SendFollowUp(req.Recipient, session.Question, session.Guidance, serviceName)
	req.Attempts++

	if sendErr == nil {
		req.Status = entity.FollowUpStatusSent
		req.LastError = nil
	} else {
		errText := sendErr.Error()
		req.LastError = &errText

		if req.Attempts >= maxDeliveryAttempts {
			req.Status = entity.FollowUpStatusFailed
			s.logger.Error("FollowUp", "Delivery failed permanently", map[string]interface{}{
				"follow_up_id": req.Id,
				"recipient":    req.Recipient,
				"attempts":     req.Attempts,
			})
		} else {
			req.ScheduledAt = time.Now().Add(retryBackoff[req.Attempts-1])
		}
	}

	if err := uow.FollowUpRepository().Update(ctx, req); err != nil {
		s.logger.Error("FollowUp", "Failed to update follow-up state", map[string]interface{}{
			"follow_up_id": req.Id,
			"error":        err.Error(),
		})
	}
}

func (s *followUpService) fail(ctx context.Context, uow unitofwork.UnitOfWork, req *entity.FollowUpRequest, reason string) {
	req.Status = entity.FollowUpStatusFailed
	req.LastError = &reason
	if err := uow.FollowUpRepository().Update(ctx, req); err != nil {
		s.logger.Error("FollowUp", "Failed to mark follow-up failed", map[string]interface{}{
			"follow_up_id": req.Id,
			"error":        err.Error(),
		})
	}
}

func toFollowUpResponse(req *entity.FollowUpRequest) *dto.FollowUpResponse {
	return &dto.FollowUpResponse{
		Id:          req.Id,
		SessionId:   req.SessionId,
		Recipient:   req.Recipient,
		Channel:     string(req.Channel),
		Status:      string(req.Status),
		Attempts:    req.Attempts,
		ScheduledAt: req.ScheduledAt,
	}
}

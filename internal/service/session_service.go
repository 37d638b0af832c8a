package service

import (
	"context"
	"fmt"
	"time"

	"spiritual-guidance-be/internal/constant"
	"spiritual-guidance-be/internal/dto"
	"spiritual-guidance-be/internal/entity"
	"spiritual-guidance-be/internal/pkg/logger"
	"spiritual-guidance-be/internal/repository/specification"
	"spiritual-guidance-be/internal/repository/unitofwork"
	"spiritual-guidance-be/pkg/astrology"
	"spiritual-guidance-be/pkg/events"
	"spiritual-guidance-be/pkg/guidance"
	pktNats "spiritual-guidance-be/pkg/nats"

	"github.com/google/uuid"
)

// ChartFetcher is the orchestrator's view of the birth-chart adapter.
type ChartFetcher interface {
	Fetch(ctx context.Context, details astrology.BirthDetails) astrology.ChartResult
}

// GuidanceComposer is the orchestrator's view of the composer.
type GuidanceComposer interface {
	Compose(ctx context.Context, question string, chartResult astrology.ChartResult, serviceType string) guidance.ComposeResult
}

type ISessionService interface {
	StartSession(ctx context.Context, userId uuid.UUID, req *dto.StartSessionRequest) (*dto.StartSessionResponse, error)
	GetSession(ctx context.Context, userId, sessionId uuid.UUID) (*dto.SessionDetailResponse, error)
	ListSessions(ctx context.Context, userId uuid.UUID, limit, offset int) ([]*dto.SessionSummaryResponse, error)
}

type sessionService struct {
	uowFactory     unitofwork.RepositoryFactory
	catalog        ICatalogService
	chartFetcher   ChartFetcher
	composer       GuidanceComposer
	monitor        IMonitorService
	followUp       IFollowUpService
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewSessionService(
	uowFactory unitofwork.RepositoryFactory,
	catalog ICatalogService,
	chartFetcher ChartFetcher,
	composer GuidanceComposer,
	monitor IMonitorService,
	followUp IFollowUpService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) ISessionService {
	return &sessionService{
		uowFactory:     uowFactory,
		catalog:        catalog,
		chartFetcher:   chartFetcher,
		composer:       composer,
		monitor:        monitor,
		followUp:       followUp,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

// StartSession runs the whole create-session flow:
// validate -> debit+create (one tx) -> compose -> settle (second tx).
// The debit and the session row commit together, so a session exists exactly
// when credits were taken. Compose failures never touch the ledger; the
// composer guarantees a fallback text.
func (s *sessionService) StartSession(ctx context.Context, userId uuid.UUID, req *dto.StartSessionRequest) (*dto.StartSessionResponse, error) {
	// validating
	serviceType, err := s.catalog.GetByName(ctx, req.ServiceType)
	if err != nil {
		return nil, &dto.PersistenceError{Op: "service type lookup", Err: err}
	}
	if serviceType == nil {
		return nil, &dto.ClientInputError{Message: fmt.Sprintf("unknown service type %q", req.ServiceType)}
	}
	if !serviceType.Enabled {
		return nil, &dto.ClientInputError{Message: fmt.Sprintf("service type %q is disabled", req.ServiceType)}
	}

	// credit_check + debiting: atomic with the session insert
	session, remaining, err := s.debitAndCreateSession(ctx, userId, serviceType, req.Question)
	if err != nil {
		return nil, err
	}

	// composing: no transaction open, failures degrade but never abort
	chartResult := s.fetchChart(ctx, session.Id, req.BirthDetails)
	composeResult := s.composer.Compose(ctx, req.Question, chartResult, serviceType.Name)

	s.recordGuidanceCall(session.Id, req.Question, composeResult)

	// persisting
	session.Guidance = composeResult.Text
	session.Astrology = chartResult.ToMap()
	session.Status = entity.SessionStatusCompleted

	if err := s.settleSession(ctx, session); err != nil {
		// The debit already committed. Refund rather than lose the credits.
		s.compensate(ctx, userId, session, serviceType)
		return nil, &dto.PersistenceError{Op: "session settlement", Err: err}
	}

	// completed: everything after this point is fire-and-forget
	go s.afterCompletion(session, serviceType, userId)

	return &dto.StartSessionResponse{
		SessionId:        session.Id,
		Guidance:         composeResult.Text,
		Astrology:        session.Astrology,
		CreditsDeducted:  serviceType.CreditsRequired,
		RemainingCredits: remaining,
		Metadata: dto.SessionMetadataDTO{
			ChartSource:   string(chartResult.Kind),
			GuidanceMode:  composeResult.Mode,
			ComposeTimeMs: composeResult.Elapsed.Milliseconds(),
		},
	}, nil
}

func (s *sessionService) debitAndCreateSession(ctx context.Context, userId uuid.UUID, serviceType *entity.ServiceType, question string) (*entity.Session, int, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, 0, &dto.PersistenceError{Op: "begin debit transaction", Err: err}
	}
	defer uow.Rollback()

	remaining, err := uow.UserRepository().DebitCredits(ctx, userId, serviceType.CreditsRequired)
	if err != nil {
		// Typed errors (insufficient credits, user not found) pass through
		return nil, 0, err
	}

	session := &entity.Session{
		Id:            uuid.New(),
		UserId:        userId,
		ServiceTypeId: serviceType.Id,
		Question:      question,
		CreditsUsed:   serviceType.CreditsRequired,
		OriginalPrice: serviceType.Price,
		Status:        entity.SessionStatusInProgress,
		CreatedAt:     time.Now(),
	}
	if err := uow.SessionRepository().Create(ctx, session); err != nil {
		return nil, 0, &dto.PersistenceError{Op: "create session", Err: err}
	}

	serviceUsed := serviceType.Name
	notes := constant.NoteSessionSpend
	creditTx := &entity.CreditTransaction{
		Id:              uuid.New(),
		UserId:          userId,
		TransactionType: entity.CreditTxSpend,
		Amount:          serviceType.CreditsRequired,
		ServiceUsed:     &serviceUsed,
		RelatedId:       &session.Id,
		Notes:           &notes,
		CreatedAt:       time.Now(),
	}
	if err := uow.UserRepository().CreateCreditTransaction(ctx, creditTx); err != nil {
		return nil, 0, &dto.PersistenceError{Op: "record debit", Err: err}
	}

	if err := uow.Commit(); err != nil {
		return nil, 0, &dto.PersistenceError{Op: "commit debit transaction", Err: err}
	}

	return session, remaining, nil
}

func (s *sessionService) fetchChart(ctx context.Context, sessionId uuid.UUID, details *dto.BirthDetailsDTO) astrology.ChartResult {
	if details == nil {
		return astrology.Unavailable("no birth details supplied")
	}

	result := s.chartFetcher.Fetch(ctx, astrology.BirthDetails{
		Date:      details.BirthDate,
		Time:      details.BirthTime,
		Latitude:  details.Latitude,
		Longitude: details.Longitude,
		Location:  details.Location,
	})

	attempt := string(entity.AttemptPrimary)
	if result.Kind != astrology.ChartSuccess {
		attempt = string(entity.AttemptFallback)
	}
	s.monitor.Record(&dto.CallMetadata{
		IntegrationPoint: constant.IntegrationBirthChart,
		SessionId:        sessionId,
		Attempt:          attempt,
		Success:          result.Kind == astrology.ChartSuccess,
		ResponseTimeMs:   result.ResponseTime.Milliseconds(),
		Actual:           result.ToMap(),
		ErrorMessage:     result.Reason,
		OccurredAt:       time.Now(),
	})

	return result
}

func (s *sessionService) recordGuidanceCall(sessionId uuid.UUID, question string, composeResult guidance.ComposeResult) {
	attempt := string(entity.AttemptPrimary)
	if composeResult.Mode == constant.GuidanceModeTemplate {
		attempt = string(entity.AttemptFallback)
	}
	s.monitor.Record(&dto.CallMetadata{
		IntegrationPoint: constant.IntegrationGuidance,
		SessionId:        sessionId,
		Attempt:          attempt,
		Success:          composeResult.Text != "",
		ResponseTimeMs:   composeResult.Elapsed.Milliseconds(),
		Expected:         map[string]interface{}{"question": question},
		Actual:           map[string]interface{}{"guidance": composeResult.Text},
		ErrorMessage:     composeResult.FallbackReason,
		OccurredAt:       time.Now(),
	})
}

func (s *sessionService) settleSession(ctx context.Context, session *entity.Session) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.SessionRepository().Update(ctx, session); err != nil {
		return err
	}

	return uow.Commit()
}

// compensate refunds a committed debit whose session could not be settled
// and raises a reconciliation alert for operators.
func (s *sessionService) compensate(ctx context.Context, userId uuid.UUID, session *entity.Session, serviceType *entity.ServiceType) {
	s.logger.Error("Session", "Settlement failed after debit commit, refunding", map[string]interface{}{
		"session_id": session.Id,
		"user_id":    userId,
		"credits":    serviceType.CreditsRequired,
	})

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		s.logger.Error("Session", "Refund transaction failed to begin", map[string]interface{}{"session_id": session.Id, "error": err.Error()})
		return
	}
	defer uow.Rollback()

	if _, err := uow.UserRepository().GrantCredits(ctx, userId, serviceType.CreditsRequired); err != nil {
		s.logger.Error("Session", "Refund grant failed, manual reconciliation required", map[string]interface{}{"session_id": session.Id, "error": err.Error()})
		return
	}

	notes := constant.NoteSettlementRefund
	refundTx := &entity.CreditTransaction{
		Id:              uuid.New(),
		UserId:          userId,
		TransactionType: entity.CreditTxRefund,
		Amount:          serviceType.CreditsRequired,
		RelatedId:       &session.Id,
		Notes:           &notes,
		CreatedAt:       time.Now(),
	}
	if err := uow.UserRepository().CreateCreditTransaction(ctx, refundTx); err != nil {
		s.logger.Error("Session", "Refund record failed, manual reconciliation required", map[string]interface{}{"session_id": session.Id, "error": err.Error()})
		return
	}

	if err := uow.SessionRepository().UpdateStatus(ctx, session.Id, string(entity.SessionStatusFailed)); err != nil {
		s.logger.Error("Session", "Failed to mark session failed", map[string]interface{}{"session_id": session.Id, "error": err.Error()})
	}

	if err := uow.Commit(); err != nil {
		s.logger.Error("Session", "Refund commit failed, manual reconciliation required", map[string]interface{}{"session_id": session.Id, "error": err.Error()})
		return
	}

	if s.eventPublisher != nil {
		evt := events.NewReconciliationAlert(session.Id.String(), userId.String(), serviceType.CreditsRequired, "settlement failed after debit")
		if err := s.eventPublisher.Publish(context.Background(), evt); err != nil {
			s.logger.Error("Session", "Failed to publish reconciliation alert", map[string]interface{}{"error": err.Error()})
		}
	}
}

// afterCompletion schedules the follow-up and emits the completion event.
// Runs detached; failures here never reach the caller.
func (s *sessionService) afterCompletion(session *entity.Session, serviceType *entity.ServiceType, userId uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil || user == nil {
		s.logger.Warn("Session", "Could not load user for follow-up", map[string]interface{}{"session_id": session.Id})
	} else if s.followUp != nil {
		if _, err := s.followUp.Schedule(ctx, session, serviceType, user.Email); err != nil {
			s.logger.Warn("Session", "Failed to schedule follow-up", map[string]interface{}{
				"session_id": session.Id,
				"error":      err.Error(),
			})
		}
	}

	if s.eventPublisher != nil {
		evt := events.NewSessionCompleted(session.Id.String(), userId.String(), session.CreditsUsed)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("Session", "Failed to publish completion event", map[string]interface{}{"error": err.Error()})
		}
	}
}

func (s *sessionService) GetSession(ctx context.Context, userId, sessionId uuid.UUID) (*dto.SessionDetailResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.SessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, &dto.NotFoundError{Resource: "session"}
	}

	serviceName := ""
	if serviceType, err := uow.ServiceTypeRepository().FindOne(ctx, specification.ByID{ID: session.ServiceTypeId}); err == nil && serviceType != nil {
		serviceName = serviceType.Name
	}

	return &dto.SessionDetailResponse{
		Id:          session.Id,
		ServiceType: serviceName,
		Question:    session.Question,
		Guidance:    session.Guidance,
		Astrology:   session.Astrology,
		Status:      string(session.Status),
		CreditsUsed: session.CreditsUsed,
		CreatedAt:   session.CreatedAt,
	}, nil
}

func (s *sessionService) ListSessions(ctx context.Context, userId uuid.UUID, limit, offset int) ([]*dto.SessionSummaryResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	sessions, err := uow.SessionRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	if err != nil {
		return nil, err
	}

	serviceNames := map[uuid.UUID]string{}
	if types, err := uow.ServiceTypeRepository().FindAll(ctx); err == nil {
		for _, t := range types {
			serviceNames[t.Id] = t.Name
		}
	}

	var res []*dto.SessionSummaryResponse
	for _, session := range sessions {
		res = append(res, &dto.SessionSummaryResponse{
			Id:          session.Id,
			ServiceType: serviceNames[session.ServiceTypeId],
			Question:    session.Question,
			Status:      string(session.Status),
			CreditsUsed: session.CreditsUsed,
			CreatedAt:   session.CreatedAt,
		})
	}
	return res, nil
}

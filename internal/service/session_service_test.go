package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"spiritual-guidance-be/internal/constant"
	"spiritual-guidance-be/internal/dto"
	"spiritual-guidance-be/internal/entity"
	"spiritual-guidance-be/internal/repository/contract"
	"spiritual-guidance-be/internal/repository/specification"
	"spiritual-guidance-be/internal/repository/unitofwork"
	"spiritual-guidance-be/pkg/astrology"
	"spiritual-guidance-be/pkg/guidance"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- In-memory fakes ---

// fakeStore backs the fake unit of work. Begin takes the store lock, so
// transactions serialize exactly like row locks do in the real ledger.
type fakeStore struct {
	mu        sync.Mutex
	users     map[uuid.UUID]*entity.User
	types     map[uuid.UUID]*entity.ServiceType
	sessions  map[uuid.UUID]*entity.Session
	creditTxs []*entity.CreditTransaction

	failSessionCreate bool
	failSessionUpdate bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    map[uuid.UUID]*entity.User{},
		types:    map[uuid.UUID]*entity.ServiceType{},
		sessions: map[uuid.UUID]*entity.Session{},
	}
}

type storeSnapshot struct {
	balances map[uuid.UUID]int
	sessions map[uuid.UUID]entity.Session
	txCount  int
}

func (s *fakeStore) snapshot() storeSnapshot {
	snap := storeSnapshot{
		balances: map[uuid.UUID]int{},
		sessions: map[uuid.UUID]entity.Session{},
		txCount:  len(s.creditTxs),
	}
	for id, u := range s.users {
		snap.balances[id] = u.CreditBalance
	}
	for id, sess := range s.sessions {
		snap.sessions[id] = *sess
	}
	return snap
}

func (s *fakeStore) restore(snap storeSnapshot) {
	for id, bal := range snap.balances {
		s.users[id].CreditBalance = bal
	}
	s.sessions = map[uuid.UUID]*entity.Session{}
	for id, sess := range snap.sessions {
		copied := sess
		s.sessions[id] = &copied
	}
	s.creditTxs = s.creditTxs[:snap.txCount]
}

type fakeFactory struct {
	store *fakeStore
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUOW{store: f.store}
}

type fakeUOW struct {
	store *fakeStore
	began bool
	done  bool
	snap  storeSnapshot
}

func (u *fakeUOW) Begin(ctx context.Context) error {
	u.store.mu.Lock()
	u.began = true
	u.snap = u.store.snapshot()
	return nil
}

func (u *fakeUOW) Commit() error {
	if u.began && !u.done {
		u.done = true
		u.store.mu.Unlock()
	}
	return nil
}

func (u *fakeUOW) Rollback() error {
	if u.began && !u.done {
		u.done = true
		u.store.restore(u.snap)
		u.store.mu.Unlock()
	}
	return nil
}

// lock guards non-transactional reads.
func (u *fakeUOW) lock() func() {
	if u.began {
		return func() {}
	}
	u.store.mu.Lock()
	return u.store.mu.Unlock
}

func (u *fakeUOW) UserRepository() contract.UserRepository {
	return &fakeUserRepo{uow: u}
}

func (u *fakeUOW) ServiceTypeRepository() contract.ServiceTypeRepository {
	return &fakeServiceTypeRepo{uow: u}
}

func (u *fakeUOW) SessionRepository() contract.SessionRepository {
	return &fakeSessionRepo{uow: u}
}

func (u *fakeUOW) ValidationRepository() contract.ValidationRepository { return nil }
func (u *fakeUOW) FollowUpRepository() contract.FollowUpRepository    { return nil }
func (u *fakeUOW) KnowledgeRepository() contract.KnowledgeRepository  { return nil }

type fakeUserRepo struct {
	uow *fakeUOW
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error { return nil }
func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error { return nil }

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	defer r.uow.lock()()
	for _, spec := range specs {
		if byID, ok := spec.(specification.ByID); ok {
			if u, found := r.uow.store.users[byID.ID]; found {
				copied := *u
				return &copied, nil
			}
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}

func (r *fakeUserRepo) DebitCredits(ctx context.Context, userId uuid.UUID, amount int) (int, error) {
	u, found := r.uow.store.users[userId]
	if !found {
		return 0, &dto.NotFoundError{Resource: "user"}
	}
	if u.CreditBalance < amount {
		return u.CreditBalance, &dto.InsufficientCreditsError{Required: amount, Available: u.CreditBalance}
	}
	u.CreditBalance -= amount
	return u.CreditBalance, nil
}

func (r *fakeUserRepo) GrantCredits(ctx context.Context, userId uuid.UUID, amount int) (int, error) {
	u, found := r.uow.store.users[userId]
	if !found {
		return 0, &dto.NotFoundError{Resource: "user"}
	}
	u.CreditBalance += amount
	return u.CreditBalance, nil
}

func (r *fakeUserRepo) GetCreditBalance(ctx context.Context, userId uuid.UUID) (int, error) {
	defer r.uow.lock()()
	u, found := r.uow.store.users[userId]
	if !found {
		return 0, &dto.NotFoundError{Resource: "user"}
	}
	return u.CreditBalance, nil
}

func (r *fakeUserRepo) CreateCreditTransaction(ctx context.Context, tx *entity.CreditTransaction) error {
	r.uow.store.creditTxs = append(r.uow.store.creditTxs, tx)
	return nil
}

func creditTxMatches(tx *entity.CreditTransaction, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch sp := spec.(type) {
		case specification.UserOwnedBy:
			if tx.UserId != sp.UserID {
				return false
			}
		case specification.FilterBy:
			switch sp.Field {
			case "related_id":
				id, ok := sp.Value.(uuid.UUID)
				if !ok || tx.RelatedId == nil || *tx.RelatedId != id {
					return false
				}
			case "transaction_type":
				typ, ok := sp.Value.(string)
				if !ok || string(tx.TransactionType) != typ {
					return false
				}
			}
		}
	}
	return true
}

func (r *fakeUserRepo) FindCreditTransactions(ctx context.Context, specs ...specification.Specification) ([]*entity.CreditTransaction, error) {
	defer r.uow.lock()()
	var res []*entity.CreditTransaction
	for _, tx := range r.uow.store.creditTxs {
		if creditTxMatches(tx, specs) {
			res = append(res, tx)
		}
	}
	return res, nil
}

type fakeServiceTypeRepo struct {
	uow *fakeUOW
}

func (r *fakeServiceTypeRepo) Create(ctx context.Context, t *entity.ServiceType) error { return nil }
func (r *fakeServiceTypeRepo) Update(ctx context.Context, t *entity.ServiceType) error { return nil }

func (r *fakeServiceTypeRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ServiceType, error) {
	defer r.uow.lock()()
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByName:
			for _, t := range r.uow.store.types {
				if t.Name == s.Name {
					copied := *t
					return &copied, nil
				}
			}
		case specification.ByID:
			if t, found := r.uow.store.types[s.ID]; found {
				copied := *t
				return &copied, nil
			}
		}
	}
	return nil, nil
}

func (r *fakeServiceTypeRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ServiceType, error) {
	defer r.uow.lock()()
	var res []*entity.ServiceType
	for _, t := range r.uow.store.types {
		copied := *t
		res = append(res, &copied)
	}
	return res, nil
}

type fakeSessionRepo struct {
	uow *fakeUOW
}

func (r *fakeSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	if r.uow.store.failSessionCreate {
		return errors.New("simulated insert failure")
	}
	copied := *session
	r.uow.store.sessions[session.Id] = &copied
	return nil
}

func (r *fakeSessionRepo) Update(ctx context.Context, session *entity.Session) error {
	if r.uow.store.failSessionUpdate {
		return errors.New("simulated update failure")
	}
	copied := *session
	r.uow.store.sessions[session.Id] = &copied
	return nil
}

func (r *fakeSessionRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	if s, found := r.uow.store.sessions[id]; found {
		s.Status = entity.SessionStatus(status)
	}
	return nil
}

func sessionMatches(s *entity.Session, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch sp := spec.(type) {
		case specification.ByID:
			if s.Id != sp.ID {
				return false
			}
		case specification.UserOwnedBy:
			if s.UserId != sp.UserID {
				return false
			}
		}
	}
	return true
}

func (r *fakeSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Session, error) {
	defer r.uow.lock()()
	for _, s := range r.uow.store.sessions {
		if sessionMatches(s, specs) {
			copied := *s
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeSessionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Session, error) {
	defer r.uow.lock()()
	var res []*entity.Session
	for _, s := range r.uow.store.sessions {
		if !sessionMatches(s, specs) {
			continue
		}
		copied := *s
		res = append(res, &copied)
	}
	return res, nil
}

func (r *fakeSessionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	defer r.uow.lock()()
	return int64(len(r.uow.store.sessions)), nil
}

// --- Collaborator stubs ---

type stubChartFetcher struct {
	result astrology.ChartResult
}

func (f *stubChartFetcher) Fetch(ctx context.Context, details astrology.BirthDetails) astrology.ChartResult {
	return f.result
}

type stubGuidanceComposer struct {
	result guidance.ComposeResult
}

func (c *stubGuidanceComposer) Compose(ctx context.Context, question string, chartResult astrology.ChartResult, serviceType string) guidance.ComposeResult {
	return c.result
}

type stubMonitor struct {
	mu    sync.Mutex
	calls []*dto.CallMetadata
}

func (m *stubMonitor) Record(meta *dto.CallMetadata) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, meta)
}

func (m *stubMonitor) recorded() []*dto.CallMetadata {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*dto.CallMetadata{}, m.calls...)
}

func (m *stubMonitor) Run(ctx context.Context) {}
func (m *stubMonitor) GetValidations(ctx context.Context, integrationPoint string, limit, offset int) ([]*dto.ValidationRecordResponse, error) {
	return nil, nil
}
func (m *stubMonitor) GetHealth(ctx context.Context, since time.Time) ([]*dto.IntegrationHealthResponse, error) {
	return nil, nil
}
func (m *stubMonitor) Prune(ctx context.Context, retentionDays int) (int64, error) { return 0, nil }
func (m *stubMonitor) Close() error                                                { return nil }

type stubFollowUp struct {
	mu        sync.Mutex
	scheduled []string
}

func (f *stubFollowUp) Schedule(ctx context.Context, session *entity.Session, serviceType *entity.ServiceType, recipient string) (*dto.FollowUpResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scheduled = append(f.scheduled, recipient)
	return &dto.FollowUpResponse{}, nil
}

func (f *stubFollowUp) scheduledCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.scheduled)
}

func (f *stubFollowUp) Run(ctx context.Context) {}
func (f *stubFollowUp) GetBySession(ctx context.Context, sessionId uuid.UUID) ([]*dto.FollowUpResponse, error) {
	return nil, nil
}

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

// --- Fixture ---

type sessionFixture struct {
	store    *fakeStore
	svc      ISessionService
	monitor  *stubMonitor
	followUp *stubFollowUp
	userId   uuid.UUID
	typeName string
}

func newSessionFixture(t *testing.T, balance, cost int, compose guidance.ComposeResult, chart astrology.ChartResult) *sessionFixture {
	t.Helper()

	store := newFakeStore()
	userId := uuid.New()
	store.users[userId] = &entity.User{
		Id:            userId,
		Email:         "seeker@example.com",
		FullName:      "Test Seeker",
		Status:        entity.UserStatusActive,
		CreditBalance: balance,
		CreatedAt:     time.Now(),
	}

	typeId := uuid.New()
	store.types[typeId] = &entity.ServiceType{
		Id:              typeId,
		Name:            "tarot_reading",
		Description:     "Tarot card reading",
		CreditsRequired: cost,
		Price:           25.0,
		Enabled:         true,
		CreatedAt:       time.Now(),
	}

	factory := &fakeFactory{store: store}
	monitor := &stubMonitor{}
	followUp := &stubFollowUp{}

	svc := NewSessionService(
		factory,
		NewCatalogService(factory, nil),
		&stubChartFetcher{result: chart},
		&stubGuidanceComposer{result: compose},
		monitor,
		followUp,
		nil,
		noopLogger{},
	)

	return &sessionFixture{
		store:    store,
		svc:      svc,
		monitor:  monitor,
		followUp: followUp,
		userId:   userId,
		typeName: "tarot_reading",
	}
}

func ragCompose() guidance.ComposeResult {
	return guidance.ComposeResult{
		Text:    "The cards suggest a season of quiet growth. Trust the slower pace.",
		Mode:    constant.GuidanceModeRAG,
		Elapsed: 120 * time.Millisecond,
	}
}

func successChart() astrology.ChartResult {
	return astrology.Success(&astrology.Chart{
		SunSign:   "Leo",
		MoonSign:  "Pisces",
		Nakshatra: "Magha",
		Ascendant: "Libra",
	}, "prokerala", 300*time.Millisecond)
}

func startReq(withBirth bool) *dto.StartSessionRequest {
	req := &dto.StartSessionRequest{
		ServiceType: "tarot_reading",
		Question:    "Will my career change this year?",
	}
	if withBirth {
		req.BirthDetails = &dto.BirthDetailsDTO{
			BirthDate: "1990-08-15",
			BirthTime: "14:30",
			Latitude:  -6.2,
			Longitude: 106.8,
			Location:  "Jakarta",
		}
	}
	return req
}

// --- Tests ---

func TestStartSessionHappyPath(t *testing.T) {
	f := newSessionFixture(t, 10, 5, ragCompose(), successChart())

	res, err := f.svc.StartSession(context.Background(), f.userId, startReq(true))
	require.NoError(t, err)

	assert.Equal(t, 5, res.CreditsDeducted)
	assert.Equal(t, 5, res.RemainingCredits)
	assert.NotEmpty(t, res.Guidance)
	assert.Equal(t, "success", res.Metadata.ChartSource)
	assert.Equal(t, constant.GuidanceModeRAG, res.Metadata.GuidanceMode)

	f.store.mu.Lock()
	session := f.store.sessions[res.SessionId]
	f.store.mu.Unlock()
	require.NotNil(t, session)
	assert.Equal(t, entity.SessionStatusCompleted, session.Status)
	assert.Equal(t, 5, session.CreditsUsed)
	assert.NotEmpty(t, session.Guidance)

	// One spend transaction tied to the session
	f.store.mu.Lock()
	txs := append([]*entity.CreditTransaction{}, f.store.creditTxs...)
	f.store.mu.Unlock()
	require.Len(t, txs, 1)
	assert.Equal(t, entity.CreditTxSpend, txs[0].TransactionType)
	assert.Equal(t, 5, txs[0].Amount)
	require.NotNil(t, txs[0].RelatedId)
	assert.Equal(t, res.SessionId, *txs[0].RelatedId)

	// Both integration calls were reported to the monitor
	calls := f.monitor.recorded()
	require.Len(t, calls, 2)
	assert.Equal(t, constant.IntegrationBirthChart, calls[0].IntegrationPoint)
	assert.Equal(t, constant.IntegrationGuidance, calls[1].IntegrationPoint)

	// Follow-up scheduling happens asynchronously
	assert.Eventually(t, func() bool {
		return f.followUp.scheduledCount() == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestStartSessionInsufficientCredits(t *testing.T) {
	f := newSessionFixture(t, 3, 5, ragCompose(), successChart())

	_, err := f.svc.StartSession(context.Background(), f.userId, startReq(false))
	require.Error(t, err)

	var insufficientErr *dto.InsufficientCreditsError
	require.ErrorAs(t, err, &insufficientErr)
	assert.Equal(t, 5, insufficientErr.Required)
	assert.Equal(t, 3, insufficientErr.Available)

	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	assert.Equal(t, 3, f.store.users[f.userId].CreditBalance)
	assert.Empty(t, f.store.sessions)
	assert.Empty(t, f.store.creditTxs)
}

func TestStartSessionConcurrentDebits(t *testing.T) {
	// Balance 10, cost 5, three concurrent starts: exactly two may succeed.
	f := newSessionFixture(t, 10, 5, ragCompose(), successChart())

	var wg sync.WaitGroup
	errs := make([]error, 3)
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.StartSession(context.Background(), f.userId, startReq(false))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		var insufficientErr *dto.InsufficientCreditsError
		require.ErrorAs(t, err, &insufficientErr)
		assert.Equal(t, 5, insufficientErr.Required)
		assert.Equal(t, 0, insufficientErr.Available)
	}
	assert.Equal(t, 2, succeeded)

	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	assert.Equal(t, 0, f.store.users[f.userId].CreditBalance)
	assert.Len(t, f.store.sessions, 2)
	assert.Len(t, f.store.creditTxs, 2)
}

func TestStartSessionUnknownServiceType(t *testing.T) {
	f := newSessionFixture(t, 10, 5, ragCompose(), successChart())

	req := startReq(false)
	req.ServiceType = "crystal_ball"

	_, err := f.svc.StartSession(context.Background(), f.userId, req)

	var inputErr *dto.ClientInputError
	require.ErrorAs(t, err, &inputErr)
	assert.Contains(t, inputErr.Message, "crystal_ball")

	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	assert.Equal(t, 10, f.store.users[f.userId].CreditBalance)
}

func TestStartSessionDisabledServiceType(t *testing.T) {
	f := newSessionFixture(t, 10, 5, ragCompose(), successChart())
	f.store.mu.Lock()
	for _, st := range f.store.types {
		st.Enabled = false
	}
	f.store.mu.Unlock()

	_, err := f.svc.StartSession(context.Background(), f.userId, startReq(false))

	var inputErr *dto.ClientInputError
	require.ErrorAs(t, err, &inputErr)
	assert.Contains(t, inputErr.Message, "disabled")
}

func TestStartSessionCreateFailureRollsBackDebit(t *testing.T) {
	f := newSessionFixture(t, 10, 5, ragCompose(), successChart())
	f.store.failSessionCreate = true

	_, err := f.svc.StartSession(context.Background(), f.userId, startReq(false))

	var persistErr *dto.PersistenceError
	require.ErrorAs(t, err, &persistErr)

	// Debit and session commit together or not at all
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	assert.Equal(t, 10, f.store.users[f.userId].CreditBalance)
	assert.Empty(t, f.store.sessions)
	assert.Empty(t, f.store.creditTxs)
}

func TestStartSessionSettlementFailureRefunds(t *testing.T) {
	f := newSessionFixture(t, 10, 5, ragCompose(), successChart())
	f.store.failSessionUpdate = true

	_, err := f.svc.StartSession(context.Background(), f.userId, startReq(false))

	var persistErr *dto.PersistenceError
	require.ErrorAs(t, err, &persistErr)

	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	// Refund restored the debited credits
	assert.Equal(t, 10, f.store.users[f.userId].CreditBalance)

	// Ledger shows both sides of the compensation
	require.Len(t, f.store.creditTxs, 2)
	assert.Equal(t, entity.CreditTxSpend, f.store.creditTxs[0].TransactionType)
	assert.Equal(t, entity.CreditTxRefund, f.store.creditTxs[1].TransactionType)
	assert.Equal(t, 5, f.store.creditTxs[1].Amount)

	// The stranded session is marked failed, not left in progress
	require.Len(t, f.store.sessions, 1)
	for _, s := range f.store.sessions {
		assert.Equal(t, entity.SessionStatusFailed, s.Status)
	}
}

func TestStartSessionFallbackChartStillCompletes(t *testing.T) {
	fallback := astrology.Fallback(astrology.FallbackChart(astrology.BirthDetails{Date: "1990-08-15"}), "provider timed out")
	compose := guidance.ComposeResult{
		Text:           "You asked: \"Will my career change this year?\" Reflect gently.",
		Mode:           constant.GuidanceModeTemplate,
		FallbackReason: "generation failed",
		Elapsed:        10 * time.Millisecond,
	}
	f := newSessionFixture(t, 10, 5, compose, fallback)

	res, err := f.svc.StartSession(context.Background(), f.userId, startReq(true))
	require.NoError(t, err)

	assert.Equal(t, "fallback", res.Metadata.ChartSource)
	assert.Equal(t, constant.GuidanceModeTemplate, res.Metadata.GuidanceMode)
	assert.NotEmpty(t, res.Guidance)
	assert.Equal(t, 5, res.RemainingCredits)

	// Degraded integrations were reported as fallback attempts
	calls := f.monitor.recorded()
	require.Len(t, calls, 2)
	for _, c := range calls {
		assert.Equal(t, string(entity.AttemptFallback), c.Attempt)
	}

	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	for _, s := range f.store.sessions {
		assert.Equal(t, entity.SessionStatusCompleted, s.Status)
	}
}

func TestStartSessionWithoutBirthDetails(t *testing.T) {
	f := newSessionFixture(t, 10, 5, ragCompose(), successChart())

	res, err := f.svc.StartSession(context.Background(), f.userId, startReq(false))
	require.NoError(t, err)

	assert.Equal(t, "unavailable", res.Metadata.ChartSource)

	// No provider call means only the guidance integration is monitored
	calls := f.monitor.recorded()
	require.Len(t, calls, 1)
	assert.Equal(t, constant.IntegrationGuidance, calls[0].IntegrationPoint)
}

func TestGetSessionScopedToOwner(t *testing.T) {
	f := newSessionFixture(t, 10, 5, ragCompose(), successChart())

	res, err := f.svc.StartSession(context.Background(), f.userId, startReq(false))
	require.NoError(t, err)

	detail, err := f.svc.GetSession(context.Background(), f.userId, res.SessionId)
	require.NoError(t, err)
	assert.Equal(t, res.SessionId, detail.Id)
	assert.Equal(t, "tarot_reading", detail.ServiceType)
	assert.Equal(t, "completed", detail.Status)

	_, err = f.svc.GetSession(context.Background(), f.userId, uuid.New())
	var notFound *dto.NotFoundError
	require.ErrorAs(t, err, &notFound)

	// Another user must not see the session even with the right id
	_, err = f.svc.GetSession(context.Background(), uuid.New(), res.SessionId)
	notFound = nil
	require.ErrorAs(t, err, &notFound)
}

package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"spiritual-guidance-be/internal/constant"
	"spiritual-guidance-be/internal/dto"
	"spiritual-guidance-be/internal/entity"
	"spiritual-guidance-be/internal/repository/contract"
	"spiritual-guidance-be/internal/repository/specification"
	"spiritual-guidance-be/internal/repository/unitofwork"
	"spiritual-guidance-be/pkg/guidance"
	"spiritual-guidance-be/pkg/validation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingValidationRepo captures validation records. With a gate set,
// Create parks until the gate closes, simulating a stalled store.
type recordingValidationRepo struct {
	mu      sync.Mutex
	records []*entity.IntegrationValidation

	gate    chan struct{}
	stalled chan struct{}
	once    sync.Once
}

func newRecordingValidationRepo() *recordingValidationRepo {
	return &recordingValidationRepo{stalled: make(chan struct{})}
}

func (r *recordingValidationRepo) Create(ctx context.Context, record *entity.IntegrationValidation) error {
	if r.gate != nil {
		r.once.Do(func() { close(r.stalled) })
		<-r.gate
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, record)
	return nil
}

func (r *recordingValidationRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.IntegrationValidation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*entity.IntegrationValidation{}, r.records...), nil
}

func (r *recordingValidationRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.records)), nil
}

func (r *recordingValidationRepo) GetHealthSummary(ctx context.Context, since time.Time) ([]*entity.IntegrationHealth, error) {
	return nil, nil
}

func (r *recordingValidationRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var kept []*entity.IntegrationValidation
	var deleted int64
	for _, rec := range r.records {
		if rec.CreatedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, rec)
	}
	r.records = kept
	return deleted, nil
}

func (r *recordingValidationRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

func (r *recordingValidationRepo) bySession(id uuid.UUID) []*entity.IntegrationValidation {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []*entity.IntegrationValidation
	for _, rec := range r.records {
		if rec.SessionId == id {
			res = append(res, rec)
		}
	}
	return res
}

type monitorUOW struct {
	validations contract.ValidationRepository
}

func (u *monitorUOW) Begin(ctx context.Context) error { return nil }
func (u *monitorUOW) Commit() error                   { return nil }
func (u *monitorUOW) Rollback() error                 { return nil }

func (u *monitorUOW) UserRepository() contract.UserRepository               { return nil }
func (u *monitorUOW) ServiceTypeRepository() contract.ServiceTypeRepository { return nil }
func (u *monitorUOW) SessionRepository() contract.SessionRepository         { return nil }
func (u *monitorUOW) ValidationRepository() contract.ValidationRepository   { return u.validations }
func (u *monitorUOW) FollowUpRepository() contract.FollowUpRepository       { return nil }
func (u *monitorUOW) KnowledgeRepository() contract.KnowledgeRepository     { return nil }

type monitorFactory struct {
	validations contract.ValidationRepository
}

func (f *monitorFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &monitorUOW{validations: f.validations}
}

type stubBroadcaster struct {
	mu     sync.Mutex
	alerts []dto.MonitorAlertDTO
}

func (b *stubBroadcaster) BroadcastAlert(alert dto.MonitorAlertDTO) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.alerts = append(b.alerts, alert)
}

func (b *stubBroadcaster) broadcasted() []dto.MonitorAlertDTO {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]dto.MonitorAlertDTO{}, b.alerts...)
}

func newMonitorFixture(t *testing.T, repo *recordingValidationRepo) (IMonitorService, *stubBroadcaster) {
	t.Helper()

	broadcaster := &stubBroadcaster{}
	svc := NewMonitorService(
		&monitorFactory{validations: repo},
		validation.NewScorer(nil, validation.DefaultThreshold),
		"monitor.calls.test",
		nil,
		broadcaster,
		noopLogger{},
		time.Second,
	)

	ctx, cancel := context.WithCancel(context.Background())
	go svc.Run(ctx)
	t.Cleanup(func() {
		cancel()
		svc.Close()
	})

	return svc, broadcaster
}

// attachConsumer records throwaway metadata until the consumer has picked
// one up, so later recordings are guaranteed a live subscription.
func attachConsumer(t *testing.T, svc IMonitorService, repo *recordingValidationRepo) {
	t.Helper()
	require.Eventually(t, func() bool {
		svc.Record(&dto.CallMetadata{
			IntegrationPoint: constant.IntegrationGuidance,
			Success:          false,
			Actual:           map[string]interface{}{"guidance": ""},
		})
		return repo.count() > 0
	}, 2*time.Second, 20*time.Millisecond)
}

func TestRecordReturnsPromptlyWhileValidatorStalls(t *testing.T) {
	repo := newRecordingValidationRepo()
	repo.gate = make(chan struct{})

	svc, _ := newMonitorFixture(t, repo)

	// Opens the gate before the fixture tears the bus down, so the parked
	// consumer can drain instead of wedging Close
	t.Cleanup(func() { close(repo.gate) })

	// Park the consumer inside the stalled validation store
	require.Eventually(t, func() bool {
		svc.Record(&dto.CallMetadata{
			IntegrationPoint: constant.IntegrationGuidance,
			Success:          false,
			Actual:           map[string]interface{}{"guidance": ""},
		})
		select {
		case <-repo.stalled:
			return true
		default:
			return false
		}
	}, 2*time.Second, 20*time.Millisecond)

	// A burst of recordings must still return while the consumer is stuck
	done := make(chan struct{})
	go func() {
		for i := 0; i < 400; i++ {
			svc.Record(&dto.CallMetadata{
				IntegrationPoint: constant.IntegrationGuidance,
				SessionId:        uuid.New(),
				Attempt:          string(entity.AttemptPrimary),
				Success:          true,
				Expected:         map[string]interface{}{"question": "Will my career change this year?"},
				Actual:           map[string]interface{}{"guidance": "The cards favor patience."},
			})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Record blocked while the validator was stalled")
	}
}

func TestSilentFailureRaisesSingleAlert(t *testing.T) {
	repo := newRecordingValidationRepo()
	svc, broadcaster := newMonitorFixture(t, repo)

	attachConsumer(t, svc, repo)

	// Reported failures are never silent failures
	assert.Empty(t, broadcaster.broadcasted())

	silentId := uuid.New()
	healthyId := uuid.New()
	question := "Will my career change this year?"

	// The call reported success but the payload is unusable
	svc.Record(&dto.CallMetadata{
		IntegrationPoint: constant.IntegrationGuidance,
		SessionId:        silentId,
		Attempt:          string(entity.AttemptPrimary),
		Success:          true,
		Expected:         map[string]interface{}{"question": question},
		Actual:           map[string]interface{}{"guidance": ""},
	})

	// A healthy call for contrast
	text := guidance.TemplateGuidance(question, successChart().Chart, "tarot_reading")
	svc.Record(&dto.CallMetadata{
		IntegrationPoint: constant.IntegrationGuidance,
		SessionId:        healthyId,
		Attempt:          string(entity.AttemptPrimary),
		Success:          true,
		Expected:         map[string]interface{}{"question": question},
		Actual:           map[string]interface{}{"guidance": text},
	})

	require.Eventually(t, func() bool {
		return len(repo.bySession(silentId)) == 1 && len(repo.bySession(healthyId)) == 1
	}, 2*time.Second, 20*time.Millisecond)

	alerts := broadcaster.broadcasted()
	require.Len(t, alerts, 1)
	assert.Equal(t, constant.IntegrationGuidance, alerts[0].IntegrationPoint)
	assert.Equal(t, silentId, alerts[0].SessionId)
	assert.Less(t, alerts[0].Score, alerts[0].Threshold)
	assert.NotEmpty(t, alerts[0].Reason)

	// Both calls were persisted with their scores
	silent := repo.bySession(silentId)
	require.Len(t, silent, 1)
	assert.False(t, silent[0].Passed)

	healthy := repo.bySession(healthyId)
	require.Len(t, healthy, 1)
	assert.True(t, healthy[0].Passed)
}

package service

import (
	"context"
	"crypto/sha512"
	"fmt"
	"strconv"
	"testing"
	"time"

	"spiritual-guidance-be/internal/constant"
	"spiritual-guidance-be/internal/dto"
	"spiritual-guidance-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMidtransKey = "test-server-key"

func newCreditFixture(balance int) (*fakeStore, ICreditService, uuid.UUID) {
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

	svc := NewCreditService(&fakeFactory{store: store}, testMidtransKey, false)
	return store, svc, userId
}

func signedWebhook(orderId, userId uuid.UUID, credits int, status string) *dto.MidtransWebhookRequest {
	req := &dto.MidtransWebhookRequest{
		OrderId:           orderId.String(),
		TransactionStatus: status,
		StatusCode:        "200",
		GrossAmount:       "50000.00",
		CustomField1:      userId.String(),
		CustomField2:      strconv.Itoa(credits),
	}
	input := req.OrderId + req.StatusCode + req.GrossAmount + testMidtransKey
	req.SignatureKey = fmt.Sprintf("%x", sha512.Sum512([]byte(input)))
	return req
}

func TestTopUpWebhookGrantsOnce(t *testing.T) {
	store, svc, userId := newCreditFixture(0)
	orderId := uuid.New()

	err := svc.HandleTopUpNotification(context.Background(), signedWebhook(orderId, userId, 10, "settlement"))
	require.NoError(t, err)

	store.mu.Lock()
	assert.Equal(t, 10, store.users[userId].CreditBalance)
	require.Len(t, store.creditTxs, 1)
	tx := store.creditTxs[0]
	store.mu.Unlock()

	assert.Equal(t, entity.CreditTxGrant, tx.TransactionType)
	assert.Equal(t, 10, tx.Amount)
	require.NotNil(t, tx.RelatedId)
	assert.Equal(t, orderId, *tx.RelatedId)
	require.NotNil(t, tx.Notes)
	assert.Equal(t, constant.NoteTopUp, *tx.Notes)

	// Midtrans retries notifications; a replay must not grant twice
	err = svc.HandleTopUpNotification(context.Background(), signedWebhook(orderId, userId, 10, "settlement"))
	require.NoError(t, err)

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Equal(t, 10, store.users[userId].CreditBalance)
	assert.Len(t, store.creditTxs, 1)
}

func TestTopUpWebhookRejectsBadSignature(t *testing.T) {
	store, svc, userId := newCreditFixture(0)

	req := signedWebhook(uuid.New(), userId, 10, "settlement")
	req.SignatureKey = "forged"

	err := svc.HandleTopUpNotification(context.Background(), req)
	require.Error(t, err)

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Equal(t, 0, store.users[userId].CreditBalance)
	assert.Empty(t, store.creditTxs)
}

func TestTopUpWebhookIgnoresPending(t *testing.T) {
	store, svc, userId := newCreditFixture(0)

	err := svc.HandleTopUpNotification(context.Background(), signedWebhook(uuid.New(), userId, 10, "pending"))
	require.NoError(t, err)

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Equal(t, 0, store.users[userId].CreditBalance)
	assert.Empty(t, store.creditTxs)
}

func TestGetTransactionsScopedToUser(t *testing.T) {
	store, svc, userId := newCreditFixture(0)

	otherId := uuid.New()
	store.users[otherId] = &entity.User{Id: otherId, Email: "other@example.com", Status: entity.UserStatusActive}

	require.NoError(t, svc.HandleTopUpNotification(context.Background(), signedWebhook(uuid.New(), userId, 10, "settlement")))
	require.NoError(t, svc.HandleTopUpNotification(context.Background(), signedWebhook(uuid.New(), otherId, 25, "settlement")))

	txs, err := svc.GetTransactions(context.Background(), userId, 20, 0)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, 10, txs[0].Amount)
}

func TestCheckoutUnknownPackage(t *testing.T) {
	_, svc, userId := newCreditFixture(0)

	_, err := svc.Checkout(context.Background(), userId, &dto.TopUpCheckoutRequest{Package: "galactic"})

	var inputErr *dto.ClientInputError
	require.ErrorAs(t, err, &inputErr)
	assert.Contains(t, inputErr.Message, "galactic")
}

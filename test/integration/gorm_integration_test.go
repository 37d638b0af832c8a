package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"spiritual-guidance-be/internal/entity"
	"spiritual-guidance-be/internal/repository/unitofwork"
	"spiritual-guidance-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.SessionRepository())
	assert.NotNil(t, uow.ValidationRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Check User Repository", func(t *testing.T) {
		count, err := uow.UserRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("User count: %d", count)
	})

	t.Run("Check Knowledge Repository", func(t *testing.T) {
		count, err := uow.KnowledgeRepository().CountPassages(context.Background())
		assert.NoError(t, err)
		t.Logf("Knowledge passage count: %d", count)
	})

	t.Run("Check Credit Ledger Round Trip", func(t *testing.T) {
		ctx := context.Background()

		userId := uuid.New()
		user := &entity.User{
			Id:       userId,
			Email:    "test-integration-" + uuid.New().String() + "@example.com",
			FullName: "Integration Test User",
			Status:   entity.UserStatusActive,
		}
		err := uow.UserRepository().Create(ctx, user)
		assert.NoError(t, err)

		// Grant then debit inside one transaction
		txUow := uowFactory.NewUnitOfWork(ctx)
		err = txUow.Begin(ctx)
		assert.NoError(t, err)
		defer txUow.Rollback()

		remaining, err := txUow.UserRepository().GrantCredits(ctx, userId, 10)
		assert.NoError(t, err)
		assert.Equal(t, 10, remaining)

		remaining, err = txUow.UserRepository().DebitCredits(ctx, userId, 4)
		assert.NoError(t, err)
		assert.Equal(t, 6, remaining)

		err = txUow.Commit()
		assert.NoError(t, err)

		balance, err := uow.UserRepository().GetCreditBalance(ctx, userId)
		assert.NoError(t, err)
		assert.Equal(t, 6, balance)

		t.Log("Successfully granted and debited credits in a transaction")
	})
}

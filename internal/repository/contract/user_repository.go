package contract

import (
	"context"

	"spiritual-guidance-be/internal/entity"
	"spiritual-guidance-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// Ledger operations. These are the only writers of credit_balance and
	// must run inside the caller's transaction.
	DebitCredits(ctx context.Context, userId uuid.UUID, amount int) (remaining int, err error)
	GrantCredits(ctx context.Context, userId uuid.UUID, amount int) (remaining int, err error)
	GetCreditBalance(ctx context.Context, userId uuid.UUID) (int, error)

	CreateCreditTransaction(ctx context.Context, tx *entity.CreditTransaction) error
	FindCreditTransactions(ctx context.Context, specs ...specification.Specification) ([]*entity.CreditTransaction, error)
}

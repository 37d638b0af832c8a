package implementation

import (
	"context"
	"errors"

	"spiritual-guidance-be/internal/dto"
	"spiritual-guidance-be/internal/entity"
	"spiritual-guidance-be/internal/mapper"
	"spiritual-guidance-be/internal/model"
	"spiritual-guidance-be/internal/repository/contract"
	"spiritual-guidance-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UserMapper
}

func NewUserRepository(db *gorm.DB) contract.UserRepository {
	return &UserRepositoryImpl{
		db:     db,
		mapper: mapper.NewUserMapper(),
	}
}

func (r *UserRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *entity.User) error {
	modelUser := r.mapper.ToModel(user)
	if err := r.db.WithContext(ctx).Create(modelUser).Error; err != nil {
		return err
	}
	*user = *r.mapper.ToEntity(modelUser)
	return nil
}

func (r *UserRepositoryImpl) Update(ctx context.Context, user *entity.User) error {
	modelUser := r.mapper.ToModel(user)
	if err := r.db.WithContext(ctx).Save(modelUser).Error; err != nil {
		return err
	}
	*user = *r.mapper.ToEntity(modelUser)
	return nil
}

func (r *UserRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	var modelUser model.User
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&modelUser).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ToEntity(&modelUser), nil
}

func (r *UserRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	var modelUsers []*model.User
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&modelUsers).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(modelUsers), nil
}

func (r *UserRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.User{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ledger Implementations

// DebitCredits locks the balance row, checks sufficiency, then applies a
// guarded decrement. The WHERE clause re-checks the balance so a concurrent
// writer can never push it negative even if the lock semantics change.
func (r *UserRepositoryImpl) DebitCredits(ctx context.Context, userId uuid.UUID, amount int) (int, error) {
	tx := r.db.WithContext(ctx)

	var balances []int
	err := tx.Raw(`
		SELECT credit_balance FROM users
		WHERE id = ? AND deleted_at IS NULL
		FOR UPDATE
	`, userId).Scan(&balances).Error
	if err != nil {
		return 0, err
	}
	if len(balances) == 0 {
		return 0, &dto.NotFoundError{Resource: "user"}
	}

	balance := balances[0]
	if balance < amount {
		return balance, &dto.InsufficientCreditsError{Required: amount, Available: balance}
	}

	result := tx.Exec(`
		UPDATE users
		SET credit_balance = credit_balance - ?, updated_at = now()
		WHERE id = ? AND credit_balance >= ?
	`, amount, userId, amount)
	if result.Error != nil {
		return balance, result.Error
	}
	if result.RowsAffected == 0 {
		return balance, &dto.InsufficientCreditsError{Required: amount, Available: balance}
	}

	return balance - amount, nil
}

func (r *UserRepositoryImpl) GrantCredits(ctx context.Context, userId uuid.UUID, amount int) (int, error) {
	var balances []int
	err := r.db.WithContext(ctx).Raw(`
		UPDATE users
		SET credit_balance = credit_balance + ?, updated_at = now()
		WHERE id = ? AND deleted_at IS NULL
		RETURNING credit_balance
	`, amount, userId).Scan(&balances).Error
	if err != nil {
		return 0, err
	}
	if len(balances) == 0 {
		return 0, &dto.NotFoundError{Resource: "user"}
	}
	return balances[0], nil
}

func (r *UserRepositoryImpl) GetCreditBalance(ctx context.Context, userId uuid.UUID) (int, error) {
	var modelUser model.User
	err := r.db.WithContext(ctx).Select("credit_balance").Where("id = ?", userId).First(&modelUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, &dto.NotFoundError{Resource: "user"}
		}
		return 0, err
	}
	return modelUser.CreditBalance, nil
}

func (r *UserRepositoryImpl) CreateCreditTransaction(ctx context.Context, creditTx *entity.CreditTransaction) error {
	m := r.mapper.CreditTransactionToModel(creditTx)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*creditTx = *r.mapper.CreditTransactionToEntity(m)
	return nil
}

func (r *UserRepositoryImpl) FindCreditTransactions(ctx context.Context, specs ...specification.Specification) ([]*entity.CreditTransaction, error) {
	var models []*model.CreditTransaction
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.CreditTransactionsToEntities(models), nil
}

package mapper

import (
	"spiritual-guidance-be/internal/entity"
	"spiritual-guidance-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	return &entity.User{
		Id:            u.Id,
		Email:         u.Email,
		FullName:      u.FullName,
		Phone:         u.Phone,
		Status:        entity.UserStatus(u.Status),
		CreditBalance: u.CreditBalance,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	return &model.User{
		Id:            u.Id,
		Email:         u.Email,
		FullName:      u.FullName,
		Phone:         u.Phone,
		Status:        string(u.Status),
		CreditBalance: u.CreditBalance,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func (m *UserMapper) ToEntities(users []*model.User) []*entity.User {
	entities := make([]*entity.User, len(users))
	for i, u := range users {
		entities[i] = m.ToEntity(u)
	}
	return entities
}

// Credit Transaction Mappers

func (m *UserMapper) CreditTransactionToEntity(t *model.CreditTransaction) *entity.CreditTransaction {
	if t == nil {
		return nil
	}
	return &entity.CreditTransaction{
		Id:              t.Id,
		UserId:          t.UserId,
		TransactionType: entity.CreditTransactionType(t.TransactionType),
		Amount:          t.Amount,
		ServiceUsed:     t.ServiceUsed,
		RelatedId:       t.RelatedId,
		Notes:           t.Notes,
		CreatedAt:       t.CreatedAt,
	}
}

func (m *UserMapper) CreditTransactionToModel(t *entity.CreditTransaction) *model.CreditTransaction {
	if t == nil {
		return nil
	}
	return &model.CreditTransaction{
		Id:              t.Id,
		UserId:          t.UserId,
		TransactionType: string(t.TransactionType),
		Amount:          t.Amount,
		ServiceUsed:     t.ServiceUsed,
		RelatedId:       t.RelatedId,
		Notes:           t.Notes,
		CreatedAt:       t.CreatedAt,
	}
}

func (m *UserMapper) CreditTransactionsToEntities(txs []*model.CreditTransaction) []*entity.CreditTransaction {
	entities := make([]*entity.CreditTransaction, len(txs))
	for i, t := range txs {
		entities[i] = m.CreditTransactionToEntity(t)
	}
	return entities
}

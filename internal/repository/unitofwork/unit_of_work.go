package unitofwork

import (
	"context"

	"spiritual-guidance-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	ServiceTypeRepository() contract.ServiceTypeRepository
	SessionRepository() contract.SessionRepository
	ValidationRepository() contract.ValidationRepository
	FollowUpRepository() contract.FollowUpRepository
	KnowledgeRepository() contract.KnowledgeRepository
}

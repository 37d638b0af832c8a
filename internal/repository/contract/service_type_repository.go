package contract

import (
	"context"

	"spiritual-guidance-be/internal/entity"
	"spiritual-guidance-be/internal/repository/specification"
)

type ServiceTypeRepository interface {
	Create(ctx context.Context, serviceType *entity.ServiceType) error
	Update(ctx context.Context, serviceType *entity.ServiceType) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ServiceType, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ServiceType, error)
}

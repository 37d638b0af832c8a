package service

import (
	"context"

	"spiritual-guidance-be/internal/dto"
	"spiritual-guidance-be/internal/entity"
	"spiritual-guidance-be/internal/repository/memory"
	"spiritual-guidance-be/internal/repository/specification"
	"spiritual-guidance-be/internal/repository/unitofwork"
)

type ICatalogService interface {
	GetServiceTypes(ctx context.Context) ([]*dto.ServiceTypeResponse, error)
	GetByName(ctx context.Context, name string) (*entity.ServiceType, error)
	Invalidate()
}

type catalogService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *memory.CatalogCache
}

func NewCatalogService(uowFactory unitofwork.RepositoryFactory, cache *memory.CatalogCache) ICatalogService {
	return &catalogService{
		uowFactory: uowFactory,
		cache:      cache,
	}
}

func (s *catalogService) loadEnabled(ctx context.Context) ([]*entity.ServiceType, error) {
	if s.cache != nil {
		if types, found := s.cache.GetAll(); found {
			return types, nil
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	types, err := uow.ServiceTypeRepository().FindAll(ctx,
		specification.EnabledOnly{},
		specification.OrderBy{Field: "credits_required", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.SaveAll(types)
	}
	return types, nil
}

func (s *catalogService) GetServiceTypes(ctx context.Context) ([]*dto.ServiceTypeResponse, error) {
	types, err := s.loadEnabled(ctx)
	if err != nil {
		return nil, err
	}

	var res []*dto.ServiceTypeResponse
	for _, t := range types {
		res = append(res, &dto.ServiceTypeResponse{
			Id:              t.Id,
			Name:            t.Name,
			Description:     t.Description,
			CreditsRequired: t.CreditsRequired,
			Price:           t.Price,
		})
	}
	return res, nil
}

// GetByName returns the service type whether or not it is enabled; the
// caller decides how a disabled one is treated.
func (s *catalogService) GetByName(ctx context.Context, name string) (*entity.ServiceType, error) {
	if s.cache != nil {
		if t, found := s.cache.GetByName(name); found {
			return t, nil
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.ServiceTypeRepository().FindOne(ctx, specification.ByName{Name: name})
}

func (s *catalogService) Invalidate() {
	if s.cache != nil {
		s.cache.Invalidate()
	}
}

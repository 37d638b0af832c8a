package implementation

import (
	"context"
	"errors"

	"spiritual-guidance-be/internal/entity"
	"spiritual-guidance-be/internal/mapper"
	"spiritual-guidance-be/internal/model"
	"spiritual-guidance-be/internal/repository/contract"
	"spiritual-guidance-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ServiceTypeRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SessionMapper
}

func NewServiceTypeRepository(db *gorm.DB) contract.ServiceTypeRepository {
	return &ServiceTypeRepositoryImpl{
		db:     db,
		mapper: mapper.NewSessionMapper(),
	}
}

func (r *ServiceTypeRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ServiceTypeRepositoryImpl) Create(ctx context.Context, serviceType *entity.ServiceType) error {
	m := r.mapper.ServiceTypeToModel(serviceType)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*serviceType = *r.mapper.ServiceTypeToEntity(m)
	return nil
}

func (r *ServiceTypeRepositoryImpl) Update(ctx context.Context, serviceType *entity.ServiceType) error {
	m := r.mapper.ServiceTypeToModel(serviceType)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*serviceType = *r.mapper.ServiceTypeToEntity(m)
	return nil
}

func (r *ServiceTypeRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ServiceType, error) {
	var m model.ServiceType
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ServiceTypeToEntity(&m), nil
}

func (r *ServiceTypeRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ServiceType, error) {
	var models []*model.ServiceType
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	return r.mapper.ServiceTypesToEntities(models), nil
}

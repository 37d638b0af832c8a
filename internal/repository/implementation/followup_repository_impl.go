package implementation

import (
	"context"
	"errors"
	"time"

	"spiritual-guidance-be/internal/entity"
	"spiritual-guidance-be/internal/mapper"
	"spiritual-guidance-be/internal/model"
	"spiritual-guidance-be/internal/repository/contract"
	"spiritual-guidance-be/internal/repository/specification"

	"gorm.io/gorm"
)

type FollowUpRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.FollowUpMapper
}

func NewFollowUpRepository(db *gorm.DB) contract.FollowUpRepository {
	return &FollowUpRepositoryImpl{
		db:     db,
		mapper: mapper.NewFollowUpMapper(),
	}
}

func (r *FollowUpRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *FollowUpRepositoryImpl) Create(ctx context.Context, req *entity.FollowUpRequest) error {
	m := r.mapper.ToModel(req)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*req = *r.mapper.ToEntity(m)
	return nil
}

func (r *FollowUpRepositoryImpl) Update(ctx context.Context, req *entity.FollowUpRequest) error {
	m := r.mapper.ToModel(req)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*req = *r.mapper.ToEntity(m)
	return nil
}

func (r *FollowUpRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.FollowUpRequest, error) {
	var m model.FollowUpRequest
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ToEntity(&m), nil
}

func (r *FollowUpRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FollowUpRequest, error) {
	var models []*model.FollowUpRequest
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(models), nil
}

// FindDue locks claimed rows with SKIP LOCKED so concurrent workers never
// deliver the same follow-up twice.
func (r *FollowUpRepositoryImpl) FindDue(ctx context.Context, now time.Time, limit int) ([]*entity.FollowUpRequest, error) {
	var models []*model.FollowUpRequest
	err := r.db.WithContext(ctx).Raw(`
		SELECT * FROM follow_up_requests
		WHERE status = 'pending' AND scheduled_at <= ?
		ORDER BY scheduled_at ASC
		LIMIT ?
		FOR UPDATE SKIP LOCKED
	`, now, limit).Scan(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

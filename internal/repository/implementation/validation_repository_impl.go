package implementation

import (
	"context"
	"time"

	"spiritual-guidance-be/internal/entity"
	"spiritual-guidance-be/internal/mapper"
	"spiritual-guidance-be/internal/model"
	"spiritual-guidance-be/internal/repository/contract"
	"spiritual-guidance-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ValidationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ValidationMapper
}

func NewValidationRepository(db *gorm.DB) contract.ValidationRepository {
	return &ValidationRepositoryImpl{
		db:     db,
		mapper: mapper.NewValidationMapper(),
	}
}

func (r *ValidationRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ValidationRepositoryImpl) Create(ctx context.Context, record *entity.IntegrationValidation) error {
	m := r.mapper.ToModel(record)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*record = *r.mapper.ToEntity(m)
	return nil
}

func (r *ValidationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.IntegrationValidation, error) {
	var models []*model.IntegrationValidation
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(models), nil
}

func (r *ValidationRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.IntegrationValidation{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ValidationRepositoryImpl) GetHealthSummary(ctx context.Context, since time.Time) ([]*entity.IntegrationHealth, error) {
	var rows []struct {
		IntegrationPoint  string
		TotalCalls        int64
		PassedCalls       int64
		FallbackCalls     int64
		AverageScore      float64
		AverageLatencyMs  float64
		LastFailureReason *string
	}

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			integration_point,
			COUNT(*) AS total_calls,
			COUNT(*) FILTER (WHERE passed) AS passed_calls,
			COUNT(*) FILTER (WHERE attempt = 'fallback') AS fallback_calls,
			COALESCE(AVG(score), 0) AS average_score,
			COALESCE(AVG(response_time_ms), 0) AS average_latency_ms,
			(
				SELECT error_message FROM integration_validations iv2
				WHERE iv2.integration_point = iv.integration_point
					AND iv2.passed = false AND iv2.error_message IS NOT NULL
				ORDER BY iv2.created_at DESC
				LIMIT 1
			) AS last_failure_reason
		FROM integration_validations iv
		WHERE created_at >= ?
		GROUP BY integration_point
		ORDER BY integration_point ASC
	`, since).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	summaries := make([]*entity.IntegrationHealth, len(rows))
	for i, row := range rows {
		summaries[i] = &entity.IntegrationHealth{
			IntegrationPoint:  row.IntegrationPoint,
			TotalCalls:        row.TotalCalls,
			PassedCalls:       row.PassedCalls,
			FallbackCalls:     row.FallbackCalls,
			AverageScore:      row.AverageScore,
			AverageLatencyMs:  row.AverageLatencyMs,
			LastFailureReason: row.LastFailureReason,
		}
	}
	return summaries, nil
}

func (r *ValidationRepositoryImpl) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&model.IntegrationValidation{})
	return result.RowsAffected, result.Error
}

package contract

import (
	"context"
	"time"

	"spiritual-guidance-be/internal/entity"
	"spiritual-guidance-be/internal/repository/specification"
)

type ValidationRepository interface {
	// Create appends one validation record. Records are never updated.
	Create(ctx context.Context, record *entity.IntegrationValidation) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.IntegrationValidation, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// GetHealthSummary aggregates per integration point.
	GetHealthSummary(ctx context.Context, since time.Time) ([]*entity.IntegrationHealth, error)

	// DeleteOlderThan prunes records past the retention window.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

package contract

import (
	"context"
	"time"

	"spiritual-guidance-be/internal/entity"
	"spiritual-guidance-be/internal/repository/specification"
)

type FollowUpRepository interface {
	Create(ctx context.Context, req *entity.FollowUpRequest) error
	Update(ctx context.Context, req *entity.FollowUpRequest) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.FollowUpRequest, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FollowUpRequest, error)

	// FindDue returns pending follow-ups whose scheduled time has passed.
	FindDue(ctx context.Context, now time.Time, limit int) ([]*entity.FollowUpRequest, error)
}

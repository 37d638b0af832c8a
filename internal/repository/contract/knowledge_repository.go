package contract

import (
	"context"

	"spiritual-guidance-be/internal/entity"
)

type KnowledgeRepository interface {
	CreatePassage(ctx context.Context, passage *entity.KnowledgePassage, embedding []float32) error
	CountPassages(ctx context.Context) (int64, error)

	// SearchSimilar returns the top-k passages by cosine distance to the
	// query embedding.
	SearchSimilar(ctx context.Context, embedding []float32, limit int) ([]*entity.KnowledgePassage, error)
}

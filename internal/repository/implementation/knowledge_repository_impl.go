package implementation

import (
	"context"

	"spiritual-guidance-be/internal/entity"
	"spiritual-guidance-be/internal/mapper"
	"spiritual-guidance-be/internal/model"
	"spiritual-guidance-be/internal/repository/contract"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type KnowledgeRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ValidationMapper
}

func NewKnowledgeRepository(db *gorm.DB) contract.KnowledgeRepository {
	return &KnowledgeRepositoryImpl{
		db:     db,
		mapper: mapper.NewValidationMapper(),
	}
}

func (r *KnowledgeRepositoryImpl) CreatePassage(ctx context.Context, passage *entity.KnowledgePassage, embedding []float32) error {
	m := &model.KnowledgePassage{
		Id:        passage.Id,
		Topic:     passage.Topic,
		Content:   passage.Content,
		Embedding: pgvector.NewVector(embedding),
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*passage = *r.mapper.KnowledgePassageToEntity(m)
	return nil
}

func (r *KnowledgeRepositoryImpl) CountPassages(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.KnowledgePassage{}).Count(&count).Error
	return count, err
}

func (r *KnowledgeRepositoryImpl) SearchSimilar(ctx context.Context, embedding []float32, limit int) ([]*entity.KnowledgePassage, error) {
	var models []*model.KnowledgePassage
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, topic, content, created_at
		FROM knowledge_passages
		ORDER BY embedding <=> ?
		LIMIT ?
	`, pgvector.NewVector(embedding), limit).Scan(&models).Error
	if err != nil {
		return nil, err
	}

	passages := make([]*entity.KnowledgePassage, len(models))
	for i, m := range models {
		passages[i] = r.mapper.KnowledgePassageToEntity(m)
	}
	return passages, nil
}

package knowledge

import (
	"context"
	"fmt"

	"spiritual-guidance-be/internal/entity"
	"spiritual-guidance-be/internal/repository/unitofwork"
	"spiritual-guidance-be/pkg/embedding"
)

const DefaultTopK = 4

// Retriever embeds a query and pulls the closest knowledge passages from the
// vector store.
type Retriever struct {
	embedder   embedding.EmbeddingProvider
	uowFactory unitofwork.RepositoryFactory
}

func NewRetriever(embedder embedding.EmbeddingProvider, uowFactory unitofwork.RepositoryFactory) *Retriever {
	return &Retriever{
		embedder:   embedder,
		uowFactory: uowFactory,
	}
}

func (r *Retriever) Retrieve(ctx context.Context, query string, topK int) ([]*entity.KnowledgePassage, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}

	resp, err := r.embedder.Generate(query, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(resp.Embedding.Values) == 0 {
		return nil, fmt.Errorf("embed query: empty embedding")
	}

	uow := r.uowFactory.NewUnitOfWork(ctx)
	passages, err := uow.KnowledgeRepository().SearchSimilar(ctx, resp.Embedding.Values, topK)
	if err != nil {
		return nil, fmt.Errorf("search passages: %w", err)
	}

	return passages, nil
}

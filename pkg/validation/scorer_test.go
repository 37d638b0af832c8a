package validation

import (
	"context"
	"errors"
	"testing"

	"spiritual-guidance-be/pkg/astrology"
	"spiritual-guidance-be/pkg/embedding"
	"spiritual-guidance-be/pkg/guidance"

	"github.com/stretchr/testify/assert"
)

type stubEmbedder struct {
	vectors map[string][]float32
	err     error
}

func (s *stubEmbedder) Generate(text string, taskType string) (*embedding.EmbeddingResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: s.vectors[text]},
	}, nil
}

func TestScoreGuidance(t *testing.T) {
	ctx := context.Background()
	scorer := NewScorer(nil, DefaultThreshold)

	t.Run("template guidance passes threshold", func(t *testing.T) {
		question := "Will my career improve this year?"
		text := guidance.TemplateGuidance(question, &astrology.Chart{SunSign: "Leo"}, "vedic_astrology")

		result := scorer.Validate(ctx, "guidance_rag",
			map[string]interface{}{"question": question},
			map[string]interface{}{"guidance": text},
		)

		assert.True(t, result.Passed, "score %v sub %v", result.Score, result.SubScores)
		assert.GreaterOrEqual(t, result.Score, DefaultThreshold)
	})

	t.Run("empty guidance scores zero", func(t *testing.T) {
		result := scorer.Validate(ctx, "guidance_rag",
			map[string]interface{}{"question": "anything"},
			map[string]interface{}{"guidance": "   "},
		)

		assert.False(t, result.Passed)
		assert.Zero(t, result.Score)
		assert.Equal(t, "guidance text is empty", result.Reason)
	})

	t.Run("off-topic technical text fails", func(t *testing.T) {
		result := scorer.Validate(ctx, "guidance_rag",
			map[string]interface{}{"question": "Will I find peace in my family life?"},
			map[string]interface{}{"guidance": "Error: null undefined. As an AI language model I cannot help with that request at all."},
		)

		assert.False(t, result.Passed)
		assert.Equal(t, "guidance scored below threshold", result.Reason)
	})

	t.Run("scores are clamped to three decimals", func(t *testing.T) {
		result := scorer.Validate(ctx, "guidance_rag",
			map[string]interface{}{"question": "Will I find peace?"},
			map[string]interface{}{"guidance": "Peace begins with daily meditation practice. Reflect on your intention each morning. The inner path rewards patience."},
		)

		for name, v := range result.SubScores {
			assert.GreaterOrEqual(t, v, 0.0, name)
			assert.LessOrEqual(t, v, 1.0, name)
		}
	})
}

func TestScoreChart(t *testing.T) {
	ctx := context.Background()
	scorer := NewScorer(nil, DefaultThreshold)

	t.Run("complete chart passes", func(t *testing.T) {
		result := scorer.Validate(ctx, "birth_chart", nil, map[string]interface{}{
			"sun_sign":  "Leo",
			"moon_sign": "Aries",
			"nakshatra": "Bharani",
			"ascendant": "Libra",
		})

		assert.True(t, result.Passed)
		assert.Equal(t, 1.0, result.Score)
	})

	t.Run("fallback chart with unknown fields fails", func(t *testing.T) {
		result := scorer.Validate(ctx, "birth_chart", nil, map[string]interface{}{
			"sun_sign":  "Leo",
			"moon_sign": "Unable to calculate",
			"nakshatra": "Unable to calculate",
			"ascendant": "Unable to calculate",
		})

		assert.False(t, result.Passed)
		assert.Equal(t, 0.25, result.Score)
		assert.Equal(t, "chart payload structurally incomplete", result.Reason)
	})
}

func TestSemanticSimilarity(t *testing.T) {
	t.Run("uses embedding cosine when available", func(t *testing.T) {
		embedder := &stubEmbedder{vectors: map[string][]float32{
			"a": {1, 0, 0},
			"b": {1, 0, 0},
		}}
		scorer := NewScorer(embedder, DefaultThreshold)

		sim := scorer.semanticSimilarity(context.Background(), "a", "b")
		assert.InDelta(t, 1.0, sim, 0.001)
	})

	t.Run("falls back to lexical on embedder failure", func(t *testing.T) {
		scorer := NewScorer(&stubEmbedder{err: errors.New("quota exceeded")}, DefaultThreshold)

		sim := scorer.semanticSimilarity(context.Background(), "career improve", "your career will improve")
		assert.Greater(t, sim, 0.0)
	})
}

func TestCosine(t *testing.T) {
	assert.InDelta(t, 1.0, cosine([]float32{1, 2, 3}, []float32{1, 2, 3}), 0.001)
	assert.InDelta(t, 0.0, cosine([]float32{1, 0}, []float32{0, 1}), 0.001)
	assert.True(t, cosine(nil, nil) != cosine(nil, nil), "mismatched vectors yield NaN")
}

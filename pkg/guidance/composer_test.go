package guidance

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"spiritual-guidance-be/internal/entity"
	"spiritual-guidance-be/pkg/astrology"
	"spiritual-guidance-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLLM struct {
	response string
	err      error
}

func (s *stubLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return s.response, s.err
}

func (s *stubLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return s.response, s.err
}

type stubRetriever struct {
	passages []*entity.KnowledgePassage
	err      error
}

func (s *stubRetriever) Retrieve(ctx context.Context, query string, topK int) ([]*entity.KnowledgePassage, error) {
	return s.passages, s.err
}

func containsAnyRemedy(t *testing.T, text string) bool {
	t.Helper()
	for _, phrase := range RemedyPhrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}

func TestComposePrimaryPath(t *testing.T) {
	composer := NewComposer(
		&stubLLM{response: "The stars suggest patience."},
		&stubRetriever{passages: []*entity.KnowledgePassage{{Topic: "karma", Content: "What is given returns."}}},
		time.Second,
	)

	result := composer.Compose(context.Background(), "Will I find peace?", astrology.ChartResult{}, "spiritual_qa")

	assert.Equal(t, "rag", result.Mode)
	assert.Equal(t, "The stars suggest patience.", result.Text)
	assert.Equal(t, 1, result.PassagesUsed)
	assert.Empty(t, result.FallbackReason)
}

func TestComposeFallback(t *testing.T) {
	question := "Will my career improve this year?"

	tests := []struct {
		name       string
		llm        llm.LLMProvider
		wantReason string
	}{
		{"generation error", &stubLLM{err: errors.New("model overloaded")}, "generation failed"},
		{"empty response", &stubLLM{response: "   "}, "empty text"},
		{"no provider", nil, "no llm provider"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			composer := NewComposer(tt.llm, &stubRetriever{}, time.Second)

			result := composer.Compose(context.Background(), question, astrology.ChartResult{}, "spiritual_qa")

			assert.Equal(t, "template", result.Mode)
			assert.Contains(t, result.FallbackReason, tt.wantReason)
			require.NotEmpty(t, result.Text)
			assert.Contains(t, result.Text, question)
			assert.True(t, containsAnyRemedy(t, result.Text), "fallback must include a remedy phrase")
		})
	}
}

func TestComposeFallbackUsesSurvivingChartFields(t *testing.T) {
	chart := &astrology.Chart{
		SunSign:   "Leo",
		MoonSign:  astrology.FieldUnknown,
		Nakshatra: astrology.FieldUnknown,
		Ascendant: astrology.FieldUnknown,
	}
	composer := NewComposer(&stubLLM{err: errors.New("down")}, nil, time.Second)

	result := composer.Compose(context.Background(), "What should I focus on?",
		astrology.ChartResult{Kind: astrology.ChartFallback, Chart: chart}, "vedic_astrology")

	assert.Contains(t, result.Text, "Leo")
	assert.NotContains(t, result.Text, astrology.FieldUnknown)
}

func TestComposeRetrieverFailureStillUsesPrimary(t *testing.T) {
	composer := NewComposer(
		&stubLLM{response: "Guidance without passages."},
		&stubRetriever{err: errors.New("vector store down")},
		time.Second,
	)

	result := composer.Compose(context.Background(), "Am I on the right path?", astrology.ChartResult{}, "spiritual_qa")

	assert.Equal(t, "rag", result.Mode)
	assert.Equal(t, 0, result.PassagesUsed)
}

func TestTemplateGuidanceDeterministic(t *testing.T) {
	question := "Will I find love?"
	first := TemplateGuidance(question, nil, "tarot_reading")
	second := TemplateGuidance(question, nil, "tarot_reading")
	assert.Equal(t, first, second)
}

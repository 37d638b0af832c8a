package guidance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"spiritual-guidance-be/internal/entity"
	"spiritual-guidance-be/pkg/astrology"
	"spiritual-guidance-be/pkg/llm"
)

// PassageRetriever supplies knowledge passages relevant to a question.
type PassageRetriever interface {
	Retrieve(ctx context.Context, query string, topK int) ([]*entity.KnowledgePassage, error)
}

// ComposeResult reports which path produced the guidance. Text is never empty.
type ComposeResult struct {
	Text           string
	Mode           string // "rag" or "template"
	FallbackReason string
	PassagesUsed   int
	Elapsed        time.Duration
}

// Composer produces guidance text. The primary path is knowledge-augmented
// generation; the fallback is a static template. Failures never escape
// Compose: a debited session always gets a non-empty answer.
type Composer struct {
	llm       llm.LLMProvider
	retriever PassageRetriever
	timeout   time.Duration
}

func NewComposer(provider llm.LLMProvider, retriever PassageRetriever, timeout time.Duration) *Composer {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Composer{
		llm:       provider,
		retriever: retriever,
		timeout:   timeout,
	}
}

const systemPrompt = `You are a compassionate spiritual guide versed in vedic astrology, tarot symbolism, and contemplative practice.
Answer the seeker's question warmly and concretely in 3-5 short paragraphs.
Ground your answer in the provided chart details and knowledge passages when they are present.
If a chart field reads "Unable to calculate", acknowledge the limit honestly instead of inventing planetary positions.
Always close with one practical suggested practice.`

func (c *Composer) buildPrompt(question string, chart *astrology.Chart, passages []*entity.KnowledgePassage) []llm.Message {
	var b strings.Builder

	if chart != nil {
		b.WriteString("Birth chart:\n")
		b.WriteString(fmt.Sprintf("- Sun sign: %s\n- Moon sign: %s\n- Nakshatra: %s\n- Ascendant: %s\n",
			chart.SunSign, chart.MoonSign, chart.Nakshatra, chart.Ascendant))
		b.WriteString("\n")
	}

	if len(passages) > 0 {
		b.WriteString("Knowledge passages:\n")
		for i, p := range passages {
			b.WriteString(fmt.Sprintf("[%d] (%s) %s\n", i+1, p.Topic, p.Content))
		}
		b.WriteString("\n")
	}

	b.WriteString("Question: ")
	b.WriteString(question)

	return []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: b.String()},
	}
}

// Compose runs the primary path and falls back to the template on any
// failure or empty output.
func (c *Composer) Compose(ctx context.Context, question string, chartResult astrology.ChartResult, serviceType string) ComposeResult {
	start := time.Now()

	chart := chartResult.Chart

	text, passagesUsed, reason := c.tryPrimary(ctx, question, chart)
	if reason == "" {
		return ComposeResult{
			Text:         text,
			Mode:         "rag",
			PassagesUsed: passagesUsed,
			Elapsed:      time.Since(start),
		}
	}

	return ComposeResult{
		Text:           TemplateGuidance(question, chart, serviceType),
		Mode:           "template",
		FallbackReason: reason,
		Elapsed:        time.Since(start),
	}
}

// tryPrimary returns a non-empty reason when the fallback must take over.
func (c *Composer) tryPrimary(ctx context.Context, question string, chart *astrology.Chart) (string, int, string) {
	if c.llm == nil {
		return "", 0, "no llm provider configured"
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var passages []*entity.KnowledgePassage
	if c.retriever != nil {
		retrieved, err := c.retriever.Retrieve(callCtx, question, 0)
		if err == nil {
			passages = retrieved
		}
		// Retrieval failure is tolerable, generation proceeds without context
	}

	text, err := c.llm.Chat(callCtx, c.buildPrompt(question, chart, passages), llm.WithTemperature(0.7))
	if err != nil {
		return "", 0, "generation failed: " + err.Error()
	}
	if strings.TrimSpace(text) == "" {
		return "", 0, "generation returned empty text"
	}

	return text, len(passages), ""
}

package validation

import (
	"context"
	"math"
	"strings"

	"spiritual-guidance-be/pkg/embedding"
)

const DefaultThreshold = 0.65

// Result is the outcome of scoring one integration call. Score is in [0,1];
// Passed is Score >= threshold. A failed score on a call that reported HTTP
// success is a silent failure.
type Result struct {
	Score     float64
	Passed    bool
	SubScores map[string]float64
	Reason    string
}

// Scorer validates external call payloads against business-rule expectations.
// The embedder is optional; without one, semantic similarity degrades to a
// lexical approximation.
type Scorer struct {
	embedder  embedding.EmbeddingProvider
	threshold float64
}

func NewScorer(embedder embedding.EmbeddingProvider, threshold float64) *Scorer {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	return &Scorer{
		embedder:  embedder,
		threshold: threshold,
	}
}

func (s *Scorer) Threshold() float64 {
	return s.threshold
}

// Validate scores the actual payload for one integration point. It never
// returns an error: scoring problems surface as a low score with a reason.
func (s *Scorer) Validate(ctx context.Context, integrationPoint string, expected, actual map[string]interface{}) Result {
	switch integrationPoint {
	case "birth_chart":
		return s.scoreChart(expected, actual)
	default:
		return s.scoreGuidance(ctx, expected, actual)
	}
}

// scoreChart checks structural completeness of a chart payload. Fields that
// read "Unable to calculate" count as missing: the fallback is honest about
// them, and the score should be too.
func (s *Scorer) scoreChart(expected, actual map[string]interface{}) Result {
	fields := []string{"sun_sign", "moon_sign", "nakshatra", "ascendant"}

	var present int
	for _, f := range fields {
		v, ok := actual[f].(string)
		if ok && v != "" && v != "Unable to calculate" {
			present++
		}
	}

	score := float64(present) / float64(len(fields))
	result := Result{
		Score:     round3(score),
		Passed:    score >= s.threshold,
		SubScores: map[string]float64{"structural_completeness": round3(score)},
	}
	if !result.Passed {
		result.Reason = "chart payload structurally incomplete"
	}
	return result
}

var subScoreWeights = map[string]float64{
	"keyword_overlap":         0.20,
	"domain_relevance":        0.20,
	"structural_completeness": 0.20,
	"semantic_similarity":     0.25,
	"cultural_consistency":    0.15,
}

func (s *Scorer) scoreGuidance(ctx context.Context, expected, actual map[string]interface{}) Result {
	question, _ := expected["question"].(string)
	text, _ := actual["guidance"].(string)

	if strings.TrimSpace(text) == "" {
		return Result{
			Score:     0,
			Passed:    false,
			SubScores: map[string]float64{},
			Reason:    "guidance text is empty",
		}
	}

	sub := map[string]float64{
		"keyword_overlap":         keywordOverlap(question, text),
		"domain_relevance":        domainRelevance(text),
		"structural_completeness": structuralCompleteness(text),
		"semantic_similarity":     s.semanticSimilarity(ctx, question, text),
		"cultural_consistency":    culturalConsistency(text),
	}

	var score float64
	for name, weight := range subScoreWeights {
		sub[name] = round3(sub[name])
		score += weight * sub[name]
	}
	score = round3(score)

	result := Result{
		Score:     score,
		Passed:    score >= s.threshold,
		SubScores: sub,
	}
	if !result.Passed {
		result.Reason = "guidance scored below threshold"
	}
	return result
}

var stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "is": true,
	"are": true, "was": true, "will": true, "my": true, "i": true, "me": true,
	"to": true, "of": true, "in": true, "on": true, "for": true, "this": true,
	"that": true, "what": true, "when": true, "how": true, "do": true,
	"does": true, "should": true, "can": true, "be": true, "it": true,
}

func tokenize(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == ' ' {
			return r
		}
		return ' '
	}, strings.ToLower(text))

	var tokens []string
	for _, w := range strings.Fields(cleaned) {
		if !stopwords[w] && len(w) > 1 {
			tokens = append(tokens, w)
		}
	}
	return tokens
}

// keywordOverlap measures what fraction of the question's content words
// appear in the response.
func keywordOverlap(question, text string) float64 {
	keywords := tokenize(question)
	if len(keywords) == 0 {
		return 1
	}

	responseWords := make(map[string]bool)
	for _, w := range tokenize(text) {
		responseWords[w] = true
	}

	var hits int
	for _, k := range keywords {
		if responseWords[k] {
			hits++
		}
	}
	return float64(hits) / float64(len(keywords))
}

var domainLexicon = []string{
	"spiritual", "chart", "sign", "moon", "sun", "nakshatra", "karma",
	"mantra", "meditation", "practice", "energy", "path", "blessing",
	"intention", "reflect", "guidance", "soul", "inner", "breath", "diya",
	"tarot", "planet", "ascendant",
}

// domainRelevance saturates at four lexicon hits so long answers are not
// unfairly favored.
func domainRelevance(text string) float64 {
	lower := strings.ToLower(text)
	var hits int
	for _, term := range domainLexicon {
		if strings.Contains(lower, term) {
			hits++
		}
	}
	return math.Min(float64(hits)/4.0, 1)
}

// structuralCompleteness expects a substantive, multi-sentence answer.
func structuralCompleteness(text string) float64 {
	var score float64
	words := len(strings.Fields(text))

	switch {
	case words >= 60:
		score += 0.5
	case words >= 25:
		score += 0.35
	case words >= 10:
		score += 0.2
	}

	sentences := strings.Count(text, ".") + strings.Count(text, "?") + strings.Count(text, "!")
	if sentences >= 3 {
		score += 0.3
	} else if sentences >= 1 {
		score += 0.15
	}

	// A closing suggested practice is part of the response contract
	lower := strings.ToLower(text)
	if strings.Contains(lower, "practice") || strings.Contains(lower, "suggest") || strings.Contains(lower, "ritual") {
		score += 0.2
	}

	return math.Min(score, 1)
}

// semanticSimilarity uses embedding cosine when available, otherwise a
// lexical dice coefficient over content words.
func (s *Scorer) semanticSimilarity(ctx context.Context, question, text string) float64 {
	if s.embedder != nil {
		if sim, ok := s.embeddingSimilarity(question, text); ok {
			return sim
		}
	}
	return lexicalSimilarity(question, text)
}

func (s *Scorer) embeddingSimilarity(question, text string) (float64, bool) {
	qResp, err := s.embedder.Generate(question, "SEMANTIC_SIMILARITY")
	if err != nil {
		return 0, false
	}
	tResp, err := s.embedder.Generate(text, "SEMANTIC_SIMILARITY")
	if err != nil {
		return 0, false
	}

	sim := cosine(qResp.Embedding.Values, tResp.Embedding.Values)
	if math.IsNaN(sim) {
		return 0, false
	}
	// Map [-1,1] to [0,1]
	return (sim + 1) / 2, true
}

func cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return math.NaN()
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return math.NaN()
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func lexicalSimilarity(question, text string) float64 {
	qTokens := tokenize(question)
	tTokens := tokenize(text)
	if len(qTokens) == 0 || len(tTokens) == 0 {
		return 0
	}

	qSet := make(map[string]bool, len(qTokens))
	for _, w := range qTokens {
		qSet[w] = true
	}
	tSet := make(map[string]bool, len(tTokens))
	for _, w := range tTokens {
		tSet[w] = true
	}

	var common int
	for w := range qSet {
		if tSet[w] {
			common++
		}
	}
	return 2 * float64(common) / float64(len(qSet)+len(tSet))
}

var forbiddenPhrases = []string{
	"as an ai", "language model", "i cannot help", "error:", "null",
	"undefined", "lorem ipsum", "traceback",
}

// culturalConsistency penalizes leaked technical or off-brand text.
func culturalConsistency(text string) float64 {
	lower := strings.ToLower(text)
	score := 1.0
	for _, phrase := range forbiddenPhrases {
		if strings.Contains(lower, phrase) {
			score -= 0.5
		}
	}
	return math.Max(score, 0)
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

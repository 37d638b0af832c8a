package main

import (
	"context"
	"fmt"

	"spiritual-guidance-be/pkg/astrology"
	"spiritual-guidance-be/pkg/guidance"
	"spiritual-guidance-be/pkg/validation"

	"github.com/fatih/color"
)

// Offline walkthrough of the validation pipeline: compose guidance the way
// the fallback path does, then score it the way the monitor does. Useful for
// tuning the threshold without a running server.
func main() {
	title := color.New(color.FgCyan, color.Bold)
	pass := color.New(color.FgGreen)
	fail := color.New(color.FgRed)
	dim := color.New(color.Faint)

	title.Println("=== Guidance Validation Walkthrough ===")

	scorer := validation.NewScorer(nil, validation.DefaultThreshold)
	fmt.Printf("Threshold: %.2f (lexical similarity only, no embedder)\n\n", scorer.Threshold())

	chart := astrology.Fallback(
		astrology.FallbackChart(astrology.BirthDetails{Date: "1990-08-15"}),
		"provider unavailable",
	)

	cases := []struct {
		name     string
		question string
		text     func(question string) string
	}{
		{
			name:     "template fallback",
			question: "Will my career change this year?",
			text: func(q string) string {
				return guidance.TemplateGuidance(q, chart.Chart, "tarot_reading")
			},
		},
		{
			name:     "empty response",
			question: "What does my dream mean?",
			text:     func(q string) string { return "" },
		},
		{
			name:     "off-topic output",
			question: "Should I move abroad?",
			text: func(q string) string {
				return "ERROR 502 upstream timeout. Please retry your request later."
			},
		},
	}

	for _, tc := range cases {
		title.Printf("--- %s ---\n", tc.name)
		fmt.Printf("Question: %s\n", tc.question)

		text := tc.text(tc.question)
		if text != "" {
			dim.Printf("Guidance: %.120s...\n", text)
		} else {
			dim.Println("Guidance: <empty>")
		}

		result := scorer.Validate(context.Background(), "guidance_rag",
			map[string]interface{}{"question": tc.question},
			map[string]interface{}{"guidance": text},
		)

		fmt.Printf("Score: %.3f\n", result.Score)
		for name, sub := range result.SubScores {
			dim.Printf("  %-25s %.3f\n", name, sub)
		}
		if result.Passed {
			pass.Println("PASSED")
		} else {
			fail.Printf("FAILED: %s\n", result.Reason)
		}
		fmt.Println()
	}

	// Chart payloads are scored structurally
	title.Println("--- birth chart payloads ---")
	for _, cr := range []struct {
		label  string
		result astrology.ChartResult
	}{
		{"complete provider chart", astrology.Success(&astrology.Chart{SunSign: "Leo", MoonSign: "Pisces", Nakshatra: "Magha", Ascendant: "Libra"}, "prokerala", 0)},
		{"date-only fallback chart", chart},
	} {
		result := scorer.Validate(context.Background(), "birth_chart", nil, cr.result.ToMap())
		fmt.Printf("%-28s score %.2f ", cr.label, result.Score)
		if result.Passed {
			pass.Println("PASSED")
		} else {
			fail.Printf("FAILED: %s\n", result.Reason)
		}
	}
}

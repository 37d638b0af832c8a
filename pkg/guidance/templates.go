package guidance

import (
	"fmt"
	"hash/fnv"
	"strings"

	"spiritual-guidance-be/pkg/astrology"
)

// RemedyPhrases is the static remedy pool for template guidance. Every
// fallback response includes at least one of these verbatim.
var RemedyPhrases = []string{
	"Light a diya at sunrise and sit quietly for eleven breaths before speaking your intention aloud.",
	"Chant the Gayatri mantra 108 times over the coming nine days to steady your inner compass.",
	"Offer water to the rising sun each morning this week and observe what thoughts surface unbidden.",
	"Keep a small piece of tulsi near your workspace and revisit your question at the same hour each day.",
	"Practice ten minutes of pranayama before any important decision until the next full moon.",
}

var openingByService = map[string]string{
	"tarot_reading":   "The cards respond to the sincerity of the question, and yours carries real weight.",
	"vedic_astrology": "The planetary story written at your birth offers a lens, never a verdict.",
	"dream_analysis":  "Dreams speak in symbols, and the symbols you carry deserve patient attention.",
	"spiritual_qa":    "Questions asked with an open heart already contain part of their answer.",
}

const defaultOpening = "Every sincere question is a doorway, and you have already stepped through it."

// pickRemedy selects deterministically so the same question always receives
// the same remedy. No randomness in the fallback path.
func pickRemedy(question string) string {
	h := fnv.New32a()
	h.Write([]byte(question))
	return RemedyPhrases[int(h.Sum32())%len(RemedyPhrases)]
}

func chartInsight(chart *astrology.Chart) string {
	if chart == nil {
		return ""
	}

	var lines []string
	if chart.SunSign != "" && chart.SunSign != astrology.FieldUnknown {
		lines = append(lines, fmt.Sprintf("Your sun sign %s speaks to the core of how you meet the world.", chart.SunSign))
	}
	if chart.MoonSign != "" && chart.MoonSign != astrology.FieldUnknown {
		lines = append(lines, fmt.Sprintf("With the moon in %s, your emotional currents run deeper than they appear.", chart.MoonSign))
	}
	if chart.Nakshatra != "" && chart.Nakshatra != astrology.FieldUnknown {
		lines = append(lines, fmt.Sprintf("Born under the %s nakshatra, you carry its particular blessing into this question.", chart.Nakshatra))
	}
	if len(lines) == 0 {
		return "A complete birth chart was not available for this reading, so the guidance leans on timeless principles rather than planetary specifics."
	}
	return strings.Join(lines, " ")
}

// TemplateGuidance composes the fallback response from static content and
// whatever chart fields survived. It is a pure function and never returns an
// empty string.
func TemplateGuidance(question string, chart *astrology.Chart, serviceType string) string {
	opening, ok := openingByService[serviceType]
	if !ok {
		opening = defaultOpening
	}

	var b strings.Builder
	b.WriteString(opening)
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("You asked: %q. ", question))
	b.WriteString("Reflect on what outcome you are truly hoping for, because clarity of desire is the first step toward any answer.")

	if insight := chartInsight(chart); insight != "" {
		b.WriteString("\n\n")
		b.WriteString(insight)
	}

	b.WriteString("\n\nSuggested practice: ")
	b.WriteString(pickRemedy(question))

	return b.String()
}

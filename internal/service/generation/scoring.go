package generation

import (
	"strings"

	"signalscout/internal/domain/content"
)

var engagementWords = []string{"how", "why", "what", "when"}

var hookWords = []string{"secret", "revealed", "shocking", "amazing"}

// QualityScore rates generated text on a 0-100 scale from cheap textual
// signals: length fit for the target format, engagement elements, and hook
// strength of the opening sentence.
func QualityScore(text string, contentType content.Type) float64 {
	score := 50.0

	switch contentType {
	case content.TypeTweet:
		if len(text) >= 100 && len(text) <= 280 {
			score += 20
		}
	case content.TypeLinkedIn:
		if len(text) >= 500 && len(text) <= 1300 {
			score += 20
		}
	}

	lower := strings.ToLower(text)
	if strings.Contains(text, "?") {
		score += 10
	}
	if strings.Contains(text, "#") {
		score += 5
	}
	for _, word := range engagementWords {
		if strings.Contains(lower, word) {
			score += 10
			break
		}
	}

	first := firstSentence(text)
	if len(first) < 50 {
		firstLower := strings.ToLower(first)
		for _, word := range hookWords {
			if strings.Contains(firstLower, word) {
				score += 15
				break
			}
		}
	}

	if score > 100 {
		score = 100
	}
	return score
}

// PerformancePrediction estimates how generated text will perform, seeded
// from the virality of its inspiration trend.
func PerformancePrediction(sourceVirality float64, text string) float64 {
	score := sourceVirality * 0.6

	if len(text) > 50 {
		score += 10
	}
	if strings.Contains(text, "?") {
		score += 5
	}
	if strings.Contains(text, "#") {
		score += 5
	}

	if score > 100 {
		score = 100
	}
	return score
}

// firstSentence cuts at the first period, falling back to the first line.
func firstSentence(text string) string {
	if idx := strings.Index(text, "."); idx >= 0 {
		return text[:idx]
	}
	if idx := strings.Index(text, "\n"); idx >= 0 {
		return text[:idx]
	}
	return text
}

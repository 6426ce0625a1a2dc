package generation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"signalscout/internal/domain/content"
)

func TestQualityScore(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		contentType content.Type
		want        float64
	}{
		{
			name:        "well formed tweet",
			text:        "How do top investors pick stocks? " + strings.Repeat("Insight. ", 12) + "#investing",
			contentType: content.TypeTweet,
			want:        95.0, // base + length + question + hashtag + engagement word
		},
		{
			name:        "bare short text",
			text:        "hello there",
			contentType: content.TypeScript,
			want:        50.0,
		},
		{
			name:        "tweet too short for length bonus",
			text:        "Quick note",
			contentType: content.TypeTweet,
			want:        50.0,
		},
		{
			name:        "hook bonus on short opening sentence",
			text:        "The secret is out. Everyone is talking about it now.",
			contentType: content.TypeScript,
			want:        65.0,
		},
		{
			name:        "hook word in long opening sentence earns nothing",
			text:        "The secret behind this strategy is something nobody on the entire internet had noticed before. More text.",
			contentType: content.TypeScript,
			want:        50.0,
		},
		{
			name:        "clamped at 100",
			text:        "Amazing secret revealed! How? " + strings.Repeat("Why it works. ", 10) + "#growth ?",
			contentType: content.TypeTweet,
			want:        100.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, QualityScore(tt.text, tt.contentType))
		})
	}
}

func TestQualityScoreLinkedInLengthWindow(t *testing.T) {
	inside := strings.Repeat("z", 600)
	outside := strings.Repeat("z", 1400)

	assert.Equal(t, 70.0, QualityScore(inside, content.TypeLinkedIn))
	assert.Equal(t, 50.0, QualityScore(outside, content.TypeLinkedIn))
}

func TestPerformancePrediction(t *testing.T) {
	tests := []struct {
		name     string
		virality float64
		text     string
		want     float64
	}{
		{
			name:     "inherits source virality",
			virality: 80,
			text:     strings.Repeat("a", 60) + " #tag",
			want:     63.0, // 48 + length + hashtag
		},
		{
			name:     "short plain text",
			virality: 50,
			text:     "tiny",
			want:     30.0,
		},
		{
			name:     "all bonuses",
			virality: 100,
			text:     strings.Repeat("a", 60) + "? #tag",
			want:     80.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PerformancePrediction(tt.virality, tt.text))
		})
	}
}

func TestParseVoiceAnalysis(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		got := parseVoiceAnalysis("nothing recognizable here")
		assert.Equal(t, "conversational", got["style"])
		assert.Equal(t, "friendly", got["personality"])
		assert.Equal(t, "moderate", got["technical_level"])
	})

	t.Run("detected traits", func(t *testing.T) {
		got := parseVoiceAnalysis("A formal, authoritative voice with highly technical vocabulary.")
		assert.Equal(t, "formal", got["style"])
		assert.Equal(t, "authoritative", got["personality"])
		assert.Equal(t, "high", got["technical_level"])
	})
}

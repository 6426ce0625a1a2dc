package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"signalscout/internal/domain/trend"
)

func TestKeywordSentiment(t *testing.T) {
	classifier := NewKeywordSentiment(redditPositiveWords, redditNegativeWords)

	tests := []struct {
		name string
		text string
		want trend.Sentiment
	}{
		{name: "positive wins", text: "This is awesome and amazing", want: trend.SentimentPositive},
		{name: "negative wins", text: "terrible, just the worst", want: trend.SentimentNegative},
		{name: "tie is neutral", text: "great but awful", want: trend.SentimentNeutral},
		{name: "no hits is neutral", text: "a plain statement", want: trend.SentimentNeutral},
		{name: "case insensitive", text: "AWESOME result", want: trend.SentimentPositive},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, classifier.Classify(tc.text))
		})
	}
}

func TestKeywordTopicsPriorityOrder(t *testing.T) {
	classifier := NewKeywordTopics(redditTopicTable)

	// "ai" and "money" both match; technology comes first in the table.
	assert.Equal(t, "technology", classifier.Classify("ai tools that make money"))
	assert.Equal(t, "finance", classifier.Classify("crypto winter is over"))
	assert.Equal(t, trend.TopicGeneral, classifier.Classify("nothing in particular"))
}

func TestKeywordTagger(t *testing.T) {
	tagger := NewKeywordTagger(contentTagRules)

	tags := tagger.Tags("viral hack goes popular, breaking update, so funny lol")
	assert.Equal(t, []string{"trending", "educational", "humor", "news"}, tags)

	assert.Empty(t, tagger.Tags("quiet ordinary text"))
}

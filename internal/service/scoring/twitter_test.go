package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"signalscout/internal/domain/trend"
)

func TestTwitterCalculator(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	calc := NewTwitterCalculator()
	calc.now = fixedClock(now)

	record := calc.Calculate(Tweet{
		ID:             "1900",
		Text:           "breaking news about the startup scene",
		AuthorUsername: "reporter",
		CreatedAt:      now.Add(-2 * time.Hour),
		Likes:          200,
		Replies:        40,
		Retweets:       60,
	})

	// engagement: (40+60)/200*100 = 50
	assert.InDelta(t, 50.0, record.EngagementRate, 0.0001)
	// virality: 200/2*0.7 + (100/200)*100*0.3 = 70 + 15 = 85
	assert.InDelta(t, 85.0, record.ViralityScore, 0.0001)
	assert.Equal(t, trend.PlatformTwitter, record.Platform)
	assert.Equal(t, "business", record.TopicCluster)
	assert.Contains(t, record.Tags, "news")
	assert.Equal(t, "https://twitter.com/reporter/status/1900", record.URL)
}

func TestTwitterZeroLikesZeroEngagement(t *testing.T) {
	assert.Equal(t, 0.0, twitterEngagementRate(0, 10, 10))
	assert.Equal(t, 0.0, twitterEngagementRate(-1, 10, 10))
}

func TestTwitterViralityClamp(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	score := twitterViralityScore(100000, 5000, 5000, now.Add(-time.Hour), now)
	assert.Equal(t, 100.0, score)
}

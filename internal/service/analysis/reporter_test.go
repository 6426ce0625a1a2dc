package analysis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signalscout/internal/domain/trend"
)

func TestViralityAnalyticsEmptyWindow(t *testing.T) {
	reporter := NewReporter(&memTrends{}, 0, 0)

	report, err := reporter.ViralityAnalytics(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "no recent content", report.Message)
	assert.Equal(t, 7, report.PeriodDays)
	assert.Zero(t, report.TotalContent)
}

func TestViralityAnalyticsDefaultsWindow(t *testing.T) {
	reporter := NewReporter(&memTrends{}, 0, 0)

	report, err := reporter.ViralityAnalytics(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultReportWindowDays, report.PeriodDays)
}

func TestViralityAnalyticsConfiguredWindowAndThreshold(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	store := &memTrends{records: []trend.Record{
		{ID: 1, Platform: trend.PlatformReddit, ViralityScore: 80, FetchedAt: now.Add(-24 * time.Hour)},
		{ID: 2, Platform: trend.PlatformReddit, ViralityScore: 90, FetchedAt: now.Add(-24 * time.Hour)},
	}}

	reporter := NewReporter(store, 3, 85)
	reporter.now = func() time.Time { return now }

	report, err := reporter.ViralityAnalytics(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 3, report.PeriodDays)
	assert.Equal(t, 1, report.ViralContentCount, "only the record above the configured threshold counts")
}

func TestViralityAnalyticsRollup(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	recent := now.Add(-24 * time.Hour)
	stale := now.Add(-10 * 24 * time.Hour)

	store := &memTrends{records: []trend.Record{
		{
			ID: 1, Platform: trend.PlatformReddit, ViralityScore: 80,
			EngagementRate: 10, TopicCluster: "finance",
			Sentiment: trend.SentimentPositive, FetchedAt: recent,
		},
		{
			ID: 2, Platform: trend.PlatformReddit, ViralityScore: 40,
			EngagementRate: 2, TopicCluster: "finance",
			Sentiment: trend.SentimentNeutral, FetchedAt: recent,
		},
		{
			ID: 3, Platform: trend.PlatformYouTube, ViralityScore: 90,
			EngagementRate: 6, TopicCluster: "technology",
			Sentiment: trend.SentimentPositive, FetchedAt: recent,
		},
		// Outside the window, must not count.
		{
			ID: 4, Platform: trend.PlatformTwitter, ViralityScore: 99,
			EngagementRate: 50, TopicCluster: "sports",
			Sentiment: trend.SentimentNegative, FetchedAt: stale,
		},
	}}

	reporter := NewReporter(store, 0, 0)
	reporter.now = func() time.Time { return now }

	report, err := reporter.ViralityAnalytics(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, 3, report.TotalContent)
	assert.Equal(t, 70.0, report.AvgViralityScore)
	assert.Equal(t, 2, report.ViralContentCount)
	assert.Empty(t, report.Message)

	reddit := report.PlatformBreakdown[trend.PlatformReddit]
	assert.Equal(t, 2, reddit.Count)
	assert.Equal(t, 60.0, reddit.AvgVirality)
	youtube := report.PlatformBreakdown[trend.PlatformYouTube]
	assert.Equal(t, 1, youtube.Count)
	assert.Equal(t, 90.0, youtube.AvgVirality)
	assert.NotContains(t, report.PlatformBreakdown, trend.PlatformTwitter)

	require.Len(t, report.TopTopics, 2)
	assert.Equal(t, TopicFrequency{Topic: "finance", Count: 2}, report.TopTopics[0])
	assert.Equal(t, TopicFrequency{Topic: "technology", Count: 1}, report.TopTopics[1])

	require.NotNil(t, report.Engagement)
	assert.Equal(t, 6.0, report.Engagement.Avg)
	assert.Equal(t, 10.0, report.Engagement.Max)
	assert.Equal(t, 2.0, report.Engagement.Min)

	assert.Equal(t, 2, report.SentimentDistribution[trend.SentimentPositive])
	assert.Equal(t, 1, report.SentimentDistribution[trend.SentimentNeutral])
	assert.NotContains(t, report.SentimentDistribution, trend.SentimentNegative)
}

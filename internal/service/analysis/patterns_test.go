package analysis

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signalscout/internal/domain/pattern"
	"signalscout/internal/domain/trend"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestAnalyzeViralPatternsEmptySet(t *testing.T) {
	patterns := &memPatterns{}
	analyzer := NewPatternAnalyzer(&memTrends{}, patterns, 0, testLogger())

	report, err := analyzer.AnalyzeViralPatterns(context.Background(), 70)
	require.NoError(t, err)
	assert.Equal(t, "no viral content found", report.Message)
	assert.Nil(t, report.Patterns)
	assert.Zero(t, patterns.total(), "empty result must not persist anything")
}

func TestAnalyzeViralPatternsConfiguredThreshold(t *testing.T) {
	store := &memTrends{records: []trend.Record{
		{ID: 1, Platform: trend.PlatformReddit, Title: "steady gains", ViralityScore: 90},
	}}
	patterns := &memPatterns{}
	analyzer := NewPatternAnalyzer(store, patterns, 95, testLogger())

	report, err := analyzer.AnalyzeViralPatterns(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, "no viral content found", report.Message, "record sits below the configured floor")
	assert.Zero(t, patterns.total())
}

func TestAnalyzeViralPatternsPersistsSixRecords(t *testing.T) {
	created := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC) // Tuesday 14:00
	store := &memTrends{records: []trend.Record{
		{
			ID: 1, Platform: trend.PlatformReddit, Title: "How to invest wisely?",
			ViralityScore: 85, EngagementRate: 12, Score: 500,
			Sentiment: trend.SentimentPositive, TopicCluster: "finance",
			CreatedAt: created, Description: "short",
		},
		{
			ID: 2, Platform: trend.PlatformYouTube, Title: "5 shocking secrets revealed",
			ViralityScore: 90, EngagementRate: 8, Score: 1200,
			Sentiment: trend.SentimentNeutral, TopicCluster: "technology",
			CreatedAt: created.Add(3 * time.Hour), Description: "short",
		},
	}}
	patterns := &memPatterns{}
	analyzer := NewPatternAnalyzer(store, patterns, 0, testLogger())

	report, err := analyzer.AnalyzeViralPatterns(context.Background(), 70)
	require.NoError(t, err)

	assert.Equal(t, 2, report.TotalViralContent)
	assert.Equal(t, 70.0, report.AnalysisThreshold)
	require.NotNil(t, report.Patterns)

	require.Len(t, patterns.batches, 1, "all six patterns go in one batch")
	batch := patterns.batches[0]
	require.Len(t, batch, 6)

	types := make(map[pattern.Type]pattern.Record, len(batch))
	for _, rec := range batch {
		types[rec.PatternType] = rec
		assert.Equal(t, []trend.Platform{trend.PlatformReddit, trend.PlatformYouTube}, rec.Platforms)
	}
	require.Len(t, types, 6)

	// Aggregate payloads carry avg_virality, the rest use the base rate.
	assert.Equal(t, 75.0, types[pattern.TypeTopic].SuccessRate)
	assert.Equal(t, 75.0, types[pattern.TypePlatform].SuccessRate)
	assert.Equal(t, 50.0, types[pattern.TypeHook].SuccessRate)
	assert.Equal(t, 50.0, types[pattern.TypeTiming].SuccessRate)
}

func TestAnalyzeHooks(t *testing.T) {
	viral := []trend.Record{
		{Title: "How to retire at 40?"},          // question + how-to
		{Title: "7 ways to save money"},          // number + list
		{Title: "Breaking: markets crash today"}, // urgency (x2 words)
		{Title: "A calm ordinary headline"},      // nothing
	}

	hooks := analyzeHooks(viral)
	assert.Equal(t, 25.0, hooks.QuestionHooks)
	assert.Equal(t, 50.0, hooks.NumberHooks, "digits in titles one and two")
	assert.Equal(t, 25.0, hooks.HowToHooks)
	assert.Equal(t, 25.0, hooks.ListHooks)
	assert.Equal(t, 25.0, hooks.UrgencyHooks)
	assert.Equal(t, 0.0, hooks.EmotionalHooks)
}

func TestAnalyzeHooksQuestionNeedsBothSignals(t *testing.T) {
	// A question word without "?" is not a question hook, and vice versa.
	viral := []trend.Record{
		{Title: "How I built this"},
		{Title: "Really?"},
	}
	hooks := analyzeHooks(viral)
	assert.Equal(t, 0.0, hooks.QuestionHooks)
}

func TestAnalyzeTimingBuckets(t *testing.T) {
	monday := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)
	viral := []trend.Record{
		{ViralityScore: 90, CreatedAt: monday},                     // Monday 09
		{ViralityScore: 70, CreatedAt: monday},                     // Monday 09
		{ViralityScore: 95, CreatedAt: monday.Add(26 * time.Hour)}, // Tuesday 11
	}

	timing := analyzeTiming(viral)
	require.NotEmpty(t, timing.BestHours)
	assert.Equal(t, 11, timing.BestHours[0].Hour)
	assert.Equal(t, 95.0, timing.BestHours[0].Score)
	assert.Equal(t, 9, timing.BestHours[1].Hour)
	assert.Equal(t, 80.0, timing.BestHours[1].Score)

	require.NotEmpty(t, timing.BestDays)
	assert.Equal(t, "Tuesday", timing.BestDays[0].Day)

	require.Len(t, timing.Insights, 2)
	assert.Equal(t, "Peak performance hour: 11:00", timing.Insights[0])
	assert.Equal(t, "Best day for virality: Tuesday", timing.Insights[1])
}

func TestAnalyzeEmotions(t *testing.T) {
	viral := []trend.Record{
		{ViralityScore: 80, Sentiment: trend.SentimentPositive},
		{ViralityScore: 90, Sentiment: trend.SentimentPositive},
		{ViralityScore: 72, Sentiment: trend.SentimentNeutral},
	}

	emotions := analyzeEmotions(viral)
	assert.Equal(t, trend.SentimentPositive, emotions.BestSentiment)
	assert.Equal(t, 85.0, emotions.SentimentPerformance[trend.SentimentPositive])
	assert.Contains(t, emotions.Insights, "Positive content performs significantly better")
}

func TestAnalyzeFormats(t *testing.T) {
	long := make([]byte, 150)
	for i := range long {
		long[i] = 'd'
	}
	viral := []trend.Record{
		{Platform: trend.PlatformYouTube, Description: "anything"},
		{Platform: trend.PlatformReddit, Description: "short"},
		{Platform: trend.PlatformReddit, Description: string(long)},
	}

	formats := analyzeFormats(viral)
	assert.Equal(t, 1, formats.Platforms[trend.PlatformYouTube].Visual)
	assert.Equal(t, 1, formats.Platforms[trend.PlatformReddit].ShortForm)
	assert.Equal(t, 1, formats.Platforms[trend.PlatformReddit].LongForm)
}

func TestAnalyzeTopicTrends(t *testing.T) {
	viral := []trend.Record{
		{TopicCluster: "finance", ViralityScore: 90, EngagementRate: 10},
		{TopicCluster: "finance", ViralityScore: 80, EngagementRate: 6},
		{TopicCluster: "technology", ViralityScore: 95, EngagementRate: 4},
	}

	topics := analyzeTopicTrends(viral)
	require.Len(t, topics.TopTopics, 2)
	assert.Equal(t, "technology", topics.TopTopics[0].Topic)
	assert.Equal(t, 95.0, topics.TopTopics[0].AvgVirality)
	assert.Equal(t, "finance", topics.TopTopics[1].Topic)
	assert.Equal(t, 85.0, topics.TopTopics[1].AvgVirality)
	assert.Equal(t, 8.0, topics.TopTopics[1].AvgEngagement)
	assert.Contains(t, topics.Insights, "'technology' is the highest performing topic cluster")
}

func TestAnalyzePlatformPerformance(t *testing.T) {
	viral := []trend.Record{
		{Platform: trend.PlatformReddit, ViralityScore: 80, EngagementRate: 10, Score: 400},
		{Platform: trend.PlatformReddit, ViralityScore: 90, EngagementRate: 20, Score: 600},
	}

	platforms := analyzePlatformPerformance(viral)
	stat := platforms.Platforms[trend.PlatformReddit]
	assert.Equal(t, 2, stat.Count)
	assert.Equal(t, 85.0, stat.AvgVirality)
	assert.Equal(t, 15.0, stat.AvgEngagement)
	assert.Equal(t, 500.0, stat.AvgScore)
}

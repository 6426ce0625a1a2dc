package analysis

import (
	"context"
	"fmt"
	"sort"
	"time"

	"signalscout/internal/domain/trend"
)

// DefaultReportWindowDays is the analytics lookback when none is given.
const DefaultReportWindowDays = 7

// noRecentContentMessage is the defined empty-window response.
const noRecentContentMessage = "no recent content"

// PlatformBreakdown summarizes one platform inside an analytics report.
type PlatformBreakdown struct {
	Count       int     `json:"count"`
	AvgVirality float64 `json:"avg_virality"`
}

// TopicFrequency is a topic cluster with its occurrence count in the window.
type TopicFrequency struct {
	Topic string `json:"topic"`
	Count int    `json:"count"`
}

// EngagementStats holds the engagement-rate spread over the window.
type EngagementStats struct {
	Avg float64 `json:"avg"`
	Max float64 `json:"max"`
	Min float64 `json:"min"`
}

// Report is a time-windowed analytics rollup over stored trend records.
type Report struct {
	PeriodDays            int                                 `json:"period_days"`
	TotalContent          int                                 `json:"total_content,omitempty"`
	AvgViralityScore      float64                             `json:"avg_virality_score,omitempty"`
	ViralContentCount     int                                 `json:"viral_content_count,omitempty"`
	PlatformBreakdown     map[trend.Platform]PlatformBreakdown `json:"platform_breakdown,omitempty"`
	TopTopics             []TopicFrequency                    `json:"top_topics,omitempty"`
	Engagement            *EngagementStats                    `json:"engagement_stats,omitempty"`
	SentimentDistribution map[trend.Sentiment]int             `json:"sentiment_distribution,omitempty"`
	Message               string                              `json:"message,omitempty"`
}

// Reporter computes analytics rollups from stored trend records.
type Reporter struct {
	trends     TrendReader
	windowDays int
	threshold  float64
	now        func() time.Time
}

// NewReporter creates a reporter backed by the given trend reader.
// Non-positive window or threshold values fall back to the defaults.
func NewReporter(trends TrendReader, windowDays int, threshold float64) *Reporter {
	if windowDays <= 0 {
		windowDays = DefaultReportWindowDays
	}
	if threshold <= 0 {
		threshold = DefaultViralThreshold
	}
	return &Reporter{trends: trends, windowDays: windowDays, threshold: threshold, now: time.Now}
}

// ViralityAnalytics rolls up the records fetched in the last days days.
// A non-positive window falls back to the configured one.
func (r *Reporter) ViralityAnalytics(ctx context.Context, days int) (*Report, error) {
	if days <= 0 {
		days = r.windowDays
	}

	cutoff := r.now().AddDate(0, 0, -days)
	records, err := r.trends.ListSince(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("loading recent content: %w", err)
	}

	if len(records) == 0 {
		return &Report{PeriodDays: days, Message: noRecentContentMessage}, nil
	}

	report := &Report{
		PeriodDays:            days,
		TotalContent:          len(records),
		PlatformBreakdown:     make(map[trend.Platform]PlatformBreakdown),
		SentimentDistribution: make(map[trend.Sentiment]int),
	}

	platformVirality := make(map[trend.Platform]float64)
	topicCounts := make(map[string]int)
	engagement := EngagementStats{Min: records[0].EngagementRate, Max: records[0].EngagementRate}

	var viralitySum, engagementSum float64
	for _, record := range records {
		viralitySum += record.ViralityScore
		if record.ViralityScore >= r.threshold {
			report.ViralContentCount++
		}

		breakdown := report.PlatformBreakdown[record.Platform]
		breakdown.Count++
		report.PlatformBreakdown[record.Platform] = breakdown
		platformVirality[record.Platform] += record.ViralityScore

		topicCounts[record.TopicCluster]++
		report.SentimentDistribution[record.Sentiment]++

		engagementSum += record.EngagementRate
		if record.EngagementRate > engagement.Max {
			engagement.Max = record.EngagementRate
		}
		if record.EngagementRate < engagement.Min {
			engagement.Min = record.EngagementRate
		}
	}

	report.AvgViralityScore = viralitySum / float64(len(records))
	engagement.Avg = engagementSum / float64(len(records))
	report.Engagement = &engagement

	for platform, breakdown := range report.PlatformBreakdown {
		breakdown.AvgVirality = platformVirality[platform] / float64(breakdown.Count)
		report.PlatformBreakdown[platform] = breakdown
	}

	topics := make([]TopicFrequency, 0, len(topicCounts))
	for topic, count := range topicCounts {
		topics = append(topics, TopicFrequency{Topic: topic, Count: count})
	}
	sort.Slice(topics, func(i, j int) bool {
		if topics[i].Count != topics[j].Count {
			return topics[i].Count > topics[j].Count
		}
		return topics[i].Topic < topics[j].Topic
	})
	if len(topics) > 10 {
		topics = topics[:10]
	}
	report.TopTopics = topics

	return report, nil
}

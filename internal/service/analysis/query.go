package analysis

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"signalscout/internal/domain/content"
	"signalscout/internal/domain/trend"
)

// TrendReader defines the read access the analysis services need from storage.
type TrendReader interface {
	ListAll(ctx context.Context) ([]trend.Record, error)
	ListByVirality(ctx context.Context, minScore float64, platform *trend.Platform) ([]trend.Record, error)
	ListByTopic(ctx context.Context, topic string, minScore float64) ([]trend.Record, error)
	ListSince(ctx context.Context, cutoff time.Time) ([]trend.Record, error)
}

// recommendMinVirality is the floor for content recommendations.
const recommendMinVirality = 60.0

// recommendLimit caps one recommendation response.
const recommendLimit = 10

// Recommendation is a trend record annotated with why it was suggested.
type Recommendation struct {
	trend.Record
	RecommendationReason string `json:"recommendation_reason"`
}

// QueryService serves ranked read-side views over stored trend records.
type QueryService struct {
	trends TrendReader
}

// NewQueryService creates a query service over the given reader.
func NewQueryService(trends TrendReader) *QueryService {
	return &QueryService{trends: trends}
}

// ListTrending returns up to limit records sorted by virality descending,
// optionally restricted to one platform. Ties keep insertion order, so the
// ranking is deterministic.
func (s *QueryService) ListTrending(ctx context.Context, limit int, platform *trend.Platform) ([]trend.Record, error) {
	records, err := s.trends.ListByVirality(ctx, 0, platform)
	if err != nil {
		return nil, fmt.Errorf("listing trends: %w", err)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].ViralityScore > records[j].ViralityScore
	})

	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// Recommend returns up to ten high-virality records in the given topic
// cluster, each with a human-readable reason.
func (s *QueryService) Recommend(ctx context.Context, topic string, contentType content.Type) ([]Recommendation, error) {
	records, err := s.trends.ListByTopic(ctx, topic, recommendMinVirality)
	if err != nil {
		return nil, fmt.Errorf("listing topic trends: %w", err)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].ViralityScore > records[j].ViralityScore
	})

	if len(records) > recommendLimit {
		records = records[:recommendLimit]
	}

	recommendations := make([]Recommendation, 0, len(records))
	for _, record := range records {
		recommendations = append(recommendations, Recommendation{
			Record:               record,
			RecommendationReason: recommendationReason(record, contentType),
		})
	}
	return recommendations, nil
}

// recommendationReason assembles the matched reason clauses, or a fallback.
func recommendationReason(record trend.Record, contentType content.Type) string {
	var reasons []string

	if record.ViralityScore >= 90 {
		reasons = append(reasons, "Extremely viral content")
	} else if record.ViralityScore >= 80 {
		reasons = append(reasons, "High viral potential")
	}

	if record.EngagementRate > 5 {
		reasons = append(reasons, "High engagement rate")
	}

	if (contentType == content.TypeTweet || contentType == content.TypeLinkedIn) && len(record.Title) < 100 {
		reasons = append(reasons, "Good length for social media")
	}

	if len(reasons) == 0 {
		return "Similar topic performance"
	}
	return strings.Join(reasons, " | ")
}

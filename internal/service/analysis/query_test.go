package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signalscout/internal/domain/content"
	"signalscout/internal/domain/trend"
)

func TestListTrendingOrdersAndLimits(t *testing.T) {
	store := &memTrends{records: []trend.Record{
		{ID: 1, Platform: trend.PlatformReddit, ViralityScore: 40},
		{ID: 2, Platform: trend.PlatformYouTube, ViralityScore: 95},
		{ID: 3, Platform: trend.PlatformReddit, ViralityScore: 95},
		{ID: 4, Platform: trend.PlatformTwitter, ViralityScore: 70},
	}}
	svc := NewQueryService(store)

	got, err := svc.ListTrending(context.Background(), 3, nil)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, int64(2), got[0].ID)
	assert.Equal(t, int64(3), got[1].ID, "ties keep id order")
	assert.Equal(t, int64(4), got[2].ID)
}

func TestListTrendingPlatformFilter(t *testing.T) {
	store := &memTrends{records: []trend.Record{
		{ID: 1, Platform: trend.PlatformReddit, ViralityScore: 50},
		{ID: 2, Platform: trend.PlatformYouTube, ViralityScore: 90},
	}}
	svc := NewQueryService(store)

	platform := trend.PlatformReddit
	got, err := svc.ListTrending(context.Background(), 10, &platform)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, trend.PlatformReddit, got[0].Platform)
}

func TestListTrendingStoreError(t *testing.T) {
	wantErr := errors.New("connection refused")
	svc := NewQueryService(&memTrends{err: wantErr})

	_, err := svc.ListTrending(context.Background(), 10, nil)
	require.ErrorIs(t, err, wantErr)
}

func TestRecommendFiltersAndCaps(t *testing.T) {
	records := make([]trend.Record, 0, 12)
	for i := 0; i < 12; i++ {
		records = append(records, trend.Record{
			ID:            int64(i + 1),
			TopicCluster:  "finance",
			ViralityScore: 65,
		})
	}
	// Below the recommendation floor, never returned.
	records = append(records, trend.Record{ID: 99, TopicCluster: "finance", ViralityScore: 40})
	svc := NewQueryService(&memTrends{records: records})

	got, err := svc.Recommend(context.Background(), "finance", content.TypeTweet)
	require.NoError(t, err)
	assert.Len(t, got, 10)
	for _, rec := range got {
		assert.GreaterOrEqual(t, rec.ViralityScore, 60.0)
	}
}

func TestRecommendationReasons(t *testing.T) {
	tests := []struct {
		name        string
		record      trend.Record
		contentType content.Type
		want        string
	}{
		{
			name:        "extremely viral",
			record:      trend.Record{ViralityScore: 92, Title: strings100()},
			contentType: content.TypeScript,
			want:        "Extremely viral content",
		},
		{
			name:        "high potential",
			record:      trend.Record{ViralityScore: 85, Title: strings100()},
			contentType: content.TypeScript,
			want:        "High viral potential",
		},
		{
			name:        "engagement and length for tweet",
			record:      trend.Record{ViralityScore: 65, EngagementRate: 8.5, Title: "Short title"},
			contentType: content.TypeTweet,
			want:        "High engagement rate | Good length for social media",
		},
		{
			name:        "linkedin length",
			record:      trend.Record{ViralityScore: 70, Title: "Short title"},
			contentType: content.TypeLinkedIn,
			want:        "Good length for social media",
		},
		{
			name:        "fallback",
			record:      trend.Record{ViralityScore: 65, Title: strings100()},
			contentType: content.TypeCarousel,
			want:        "Similar topic performance",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, recommendationReason(tt.record, tt.contentType))
		})
	}
}

// strings100 returns a title long enough to miss the length bonus.
func strings100() string {
	s := make([]byte, 120)
	for i := range s {
		s[i] = 'x'
	}
	return string(s)
}

package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signalscout/internal/domain/trend"
)

func TestYouTubeCalculator(t *testing.T) {
	now := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	calc := NewYouTubeCalculator()
	calc.now = fixedClock(now)

	video := YouTubeVideo{
		ID:           "vid1",
		Title:        "Epic gameplay moments",
		Description:  "short",
		ChannelTitle: "SomeChannel",
		Tags:         []string{"gaming", "fps"},
		ViewCount:    "10000",
		LikeCount:    "500",
		CommentCount: "100",
		PublishedAt:  now.Add(-48 * time.Hour).Format(time.RFC3339),
	}

	record, err := calc.Calculate(video)
	require.NoError(t, err)

	// engagement: (500 + 100*2)/10000*100 = 7
	assert.InDelta(t, 7.0, record.EngagementRate, 0.0001)
	// virality: 10000/2/1000 + (500+300)/10000*50 = 5 + 4 = 9
	assert.InDelta(t, 9.0, record.ViralityScore, 0.0001)
	assert.Equal(t, "gaming", record.TopicCluster)
	assert.Equal(t, trend.PlatformYouTube, record.Platform)
	assert.Equal(t, 10000, record.Score)
	assert.Equal(t, "https://www.youtube.com/watch?v=vid1", record.URL)
}

func TestYouTubeZeroViewsZeroEngagement(t *testing.T) {
	now := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	calc := NewYouTubeCalculator()
	calc.now = fixedClock(now)

	record, err := calc.Calculate(YouTubeVideo{
		ID:          "vid0",
		Title:       "nobody watched this",
		PublishedAt: now.Add(-24 * time.Hour).Format(time.RFC3339),
	})
	require.NoError(t, err)

	assert.Equal(t, 0.0, record.EngagementRate)
	assert.Equal(t, 0.0, record.ViralityScore)
}

func TestYouTubeMissingCountersAreZero(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int
		wantErr bool
	}{
		{name: "missing", raw: "", want: 0},
		{name: "valid", raw: "42", want: 42},
		{name: "garbage", raw: "lots", wantErr: true},
		{name: "negative", raw: "-3", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			n, err := parseCount(tc.raw)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, n)
		})
	}
}

func TestYouTubeInvalidInputFailsSingleRecord(t *testing.T) {
	calc := NewYouTubeCalculator()

	_, err := calc.Calculate(YouTubeVideo{ID: "bad", ViewCount: "many", PublishedAt: "2025-06-01T00:00:00Z"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = calc.Calculate(YouTubeVideo{ID: "bad2", PublishedAt: "yesterday"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestYouTubeTagsTruncatedToTen(t *testing.T) {
	now := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	calc := NewYouTubeCalculator()
	calc.now = fixedClock(now)

	tags := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"}

	record, err := calc.Calculate(YouTubeVideo{
		ID:          "tagged",
		Title:       "video",
		Tags:        tags,
		PublishedAt: now.Add(-24 * time.Hour).Format(time.RFC3339),
	})
	require.NoError(t, err)

	assert.Len(t, record.Tags, trend.MaxTags)
	assert.Equal(t, tags[:10], record.Tags)
}

func TestYouTubeFreshVideoUsesDayFloor(t *testing.T) {
	now := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	calc := NewYouTubeCalculator()
	calc.now = fixedClock(now)

	record, err := calc.Calculate(YouTubeVideo{
		ID:          "new",
		Title:       "published an hour ago",
		ViewCount:   "2000",
		PublishedAt: now.Add(-1 * time.Hour).Format(time.RFC3339),
	})
	require.NoError(t, err)

	// day floor: 2000/1/1000 = 2
	assert.InDelta(t, 2.0, record.ViralityScore, 0.0001)
}

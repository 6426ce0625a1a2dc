package scoring

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"signalscout/internal/domain/trend"
)

// ErrInvalidInput marks a raw record the calculators cannot score. Callers
// are expected to skip the single record, log it, and continue the batch.
var ErrInvalidInput = errors.New("invalid raw record")

// YouTubeVideo is one item from the Data API with statistics attached.
// Counter fields keep the API's string form; absent counters are empty.
type YouTubeVideo struct {
	ID           string
	Title        string
	Description  string
	ChannelTitle string
	Tags         []string
	ViewCount    string
	LikeCount    string
	CommentCount string
	PublishedAt  string
}

// YouTubeCalculator maps raw videos to normalized trend records.
type YouTubeCalculator struct {
	sentiment trend.SentimentClassifier
	topics    trend.TopicClassifier
	now       func() time.Time
}

// NewYouTubeCalculator creates a calculator with the youtube keyword tables.
func NewYouTubeCalculator() *YouTubeCalculator {
	return &YouTubeCalculator{
		sentiment: NewKeywordSentiment(youtubePositiveWords, youtubeNegativeWords),
		topics:    NewKeywordTopics(youtubeTopicTable),
		now:       time.Now,
	}
}

// Calculate scores one video. A malformed counter or publish timestamp fails
// that single record with ErrInvalidInput.
func (c *YouTubeCalculator) Calculate(v YouTubeVideo) (trend.Record, error) {
	views, err := parseCount(v.ViewCount)
	if err != nil {
		return trend.Record{}, fmt.Errorf("%w: viewCount %q", ErrInvalidInput, v.ViewCount)
	}
	likes, err := parseCount(v.LikeCount)
	if err != nil {
		return trend.Record{}, fmt.Errorf("%w: likeCount %q", ErrInvalidInput, v.LikeCount)
	}
	comments, err := parseCount(v.CommentCount)
	if err != nil {
		return trend.Record{}, fmt.Errorf("%w: commentCount %q", ErrInvalidInput, v.CommentCount)
	}

	publishedAt, err := time.Parse(time.RFC3339, v.PublishedAt)
	if err != nil {
		return trend.Record{}, fmt.Errorf("%w: publishedAt %q", ErrInvalidInput, v.PublishedAt)
	}

	now := c.now().UTC()

	// Topic matching sees the title, description and the channel's own tags.
	topicText := v.Title + " " + v.Description + " " + strings.Join(v.Tags, " ")

	tags := v.Tags
	if len(tags) > trend.MaxTags {
		tags = tags[:trend.MaxTags]
	}

	record := trend.Record{
		Platform:       trend.PlatformYouTube,
		ContentID:      v.ID,
		Title:          v.Title,
		Description:    trend.TruncateDescription(v.Description),
		URL:            fmt.Sprintf("https://www.youtube.com/watch?v=%s", v.ID),
		Author:         v.ChannelTitle,
		Score:          views,
		CommentsCount:  comments,
		EngagementRate: youtubeEngagementRate(views, likes, comments),
		ViralityScore:  youtubeViralityScore(views, likes, comments, publishedAt, now),
		Tags:           tags,
		Sentiment:      c.sentiment.Classify(v.Title),
		TopicCluster:   c.topics.Classify(topicText),
		CreatedAt:      publishedAt.UTC(),
		FetchedAt:      now,
	}
	return record, nil
}

// youtubeEngagementRate weights comments double against likes, relative to
// views. Zero-view videos rate exactly zero. The weighting differs from the
// reddit formula, so rates are not comparable across platforms.
func youtubeEngagementRate(views, likes, comments int) float64 {
	if views == 0 {
		return 0
	}
	return float64(likes+comments*2) / float64(views) * 100
}

// youtubeViralityScore combines daily view velocity with an engagement factor
// that weights comments triple, capped at 100. Age is floored at one day.
func youtubeViralityScore(views, likes, comments int, publishedAt, now time.Time) float64 {
	daysOld := now.Sub(publishedAt).Hours() / 24
	if daysOld < 1 {
		daysOld = 1
	}

	viewsPerDay := float64(views) / daysOld
	engagementFactor := float64(likes+comments*3) / float64(maxInt(views, 1))

	return clampScore(viewsPerDay/1000 + engagementFactor*50)
}

// parseCount reads a non-negative API counter; missing counters count as zero.
func parseCount(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("not a non-negative integer: %q", s)
	}
	return n, nil
}

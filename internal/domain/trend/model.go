package trend

import (
	"time"
	"unicode/utf8"
)

// Platform identifies the source platform of a trend record.
type Platform string

const (
	PlatformReddit  Platform = "reddit"
	PlatformYouTube Platform = "youtube"
	PlatformTwitter Platform = "twitter"
)

// Sentiment is a coarse sentiment label derived from keyword heuristics.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// TopicGeneral is the fallback topic cluster when no category keyword matches.
const TopicGeneral = "general"

// MaxTags caps the number of tags stored per record.
const MaxTags = 10

// MaxDescriptionLen is the truncation point for descriptions at ingestion.
const MaxDescriptionLen = 500

// Record is a normalized cross-platform trend observation. Records are
// immutable after insertion; re-fetching the same (platform, content_id)
// is a no-op, never an update.
type Record struct {
	ID             int64     `json:"id"`
	Platform       Platform  `json:"platform"`
	ContentID      string    `json:"content_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	URL            string    `json:"url"`
	Author         string    `json:"author"`
	Score          int       `json:"score"`
	CommentsCount  int       `json:"comments_count"`
	EngagementRate float64   `json:"engagement_rate"`
	ViralityScore  float64   `json:"virality_score"`
	Tags           []string  `json:"tags"`
	Sentiment      Sentiment `json:"sentiment"`
	TopicCluster   string    `json:"topic_cluster"`
	CreatedAt      time.Time `json:"created_at"`
	FetchedAt      time.Time `json:"fetched_at"`
}

// TruncateDescription applies the ingestion-time description limit. The
// limit counts characters, so a cut can never split a multi-byte rune.
func TruncateDescription(s string) string {
	if utf8.RuneCountInString(s) <= MaxDescriptionLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:MaxDescriptionLen])
}

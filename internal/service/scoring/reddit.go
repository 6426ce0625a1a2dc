package scoring

import (
	"fmt"
	"time"

	"signalscout/internal/domain/trend"
)

// RedditPost is the raw reddit listing item handed to the calculator.
type RedditPost struct {
	ID          string
	Title       string
	SelfText    string
	Permalink   string
	Author      string
	Score       int
	NumComments int
	CreatedUTC  float64
	Stickied    bool
}

// RedditCalculator maps raw reddit posts to normalized trend records.
// It is stateless and deterministic for a fixed clock.
type RedditCalculator struct {
	sentiment trend.SentimentClassifier
	topics    trend.TopicClassifier
	tagger    trend.Tagger
	now       func() time.Time
}

// NewRedditCalculator creates a calculator with the reddit keyword tables.
func NewRedditCalculator() *RedditCalculator {
	return &RedditCalculator{
		sentiment: NewKeywordSentiment(redditPositiveWords, redditNegativeWords),
		topics:    NewKeywordTopics(redditTopicTable),
		tagger:    NewKeywordTagger(contentTagRules),
		now:       time.Now,
	}
}

// Calculate scores one post. Stickied posts are filtered, not scored: the
// second return is false and the record must be discarded.
func (c *RedditCalculator) Calculate(p RedditPost) (trend.Record, bool) {
	if p.Stickied {
		return trend.Record{}, false
	}

	createdAt := time.Unix(int64(p.CreatedUTC), 0).UTC()
	now := c.now().UTC()

	author := p.Author
	if author == "" {
		author = "unknown"
	}

	record := trend.Record{
		Platform:       trend.PlatformReddit,
		ContentID:      p.ID,
		Title:          p.Title,
		Description:    trend.TruncateDescription(p.SelfText),
		URL:            fmt.Sprintf("https://reddit.com%s", p.Permalink),
		Author:         author,
		Score:          p.Score,
		CommentsCount:  p.NumComments,
		EngagementRate: redditEngagementRate(p.Score, p.NumComments),
		ViralityScore:  redditViralityScore(p.Score, p.NumComments, createdAt, now),
		Tags:           c.tagger.Tags(p.Title + " " + p.SelfText),
		Sentiment:      c.sentiment.Classify(p.Title),
		TopicCluster:   c.topics.Classify(p.Title + " " + p.SelfText),
		CreatedAt:      createdAt,
		FetchedAt:      now,
	}
	return record, true
}

// redditEngagementRate is comments per upvote as a percentage; posts at or
// below zero score have no meaningful denominator and rate zero.
func redditEngagementRate(score, comments int) float64 {
	if score <= 0 {
		return 0
	}
	return float64(comments) / float64(score) * 100
}

// redditViralityScore combines recency-normalized upvote velocity with the
// comment ratio, capped at 100. Age is floored at one hour so brand-new posts
// never divide by zero.
func redditViralityScore(score, comments int, createdAt, now time.Time) float64 {
	ageHours := now.Sub(createdAt).Hours()
	if ageHours < 1 {
		ageHours = 1
	}

	scorePerHour := float64(score) / ageHours
	commentRatio := float64(comments) / float64(maxInt(score, 1))

	virality := scorePerHour*0.7 + commentRatio*100*0.3
	return clampScore(virality)
}

// clampScore bounds a derived score to [0, 100].
func clampScore(v float64) float64 {
	if v > 100 {
		return 100
	}
	if v < 0 {
		return 0
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

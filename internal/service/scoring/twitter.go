package scoring

import (
	"fmt"
	"time"

	"signalscout/internal/domain/trend"
)

// Tweet is a raw tweet with public metrics, as returned by recent search.
type Tweet struct {
	ID             string
	Text           string
	AuthorUsername string
	CreatedAt      time.Time
	Likes          int
	Replies        int
	Retweets       int
}

// TwitterCalculator maps tweets to normalized trend records. It follows the
// reddit shape of the formulas with likes standing in for score and replies
// for comments; retweets fold into the engagement numerator. It implements
// the same output contract as the other calculators and nothing downstream
// knows it exists.
type TwitterCalculator struct {
	sentiment trend.SentimentClassifier
	topics    trend.TopicClassifier
	tagger    trend.Tagger
	now       func() time.Time
}

// NewTwitterCalculator creates a calculator reusing the reddit keyword tables.
func NewTwitterCalculator() *TwitterCalculator {
	return &TwitterCalculator{
		sentiment: NewKeywordSentiment(redditPositiveWords, redditNegativeWords),
		topics:    NewKeywordTopics(redditTopicTable),
		tagger:    NewKeywordTagger(contentTagRules),
		now:       time.Now,
	}
}

// Calculate scores one tweet.
func (c *TwitterCalculator) Calculate(t Tweet) trend.Record {
	now := c.now().UTC()

	return trend.Record{
		Platform:       trend.PlatformTwitter,
		ContentID:      t.ID,
		Title:          t.Text,
		Description:    "",
		URL:            fmt.Sprintf("https://twitter.com/%s/status/%s", t.AuthorUsername, t.ID),
		Author:         t.AuthorUsername,
		Score:          t.Likes,
		CommentsCount:  t.Replies,
		EngagementRate: twitterEngagementRate(t.Likes, t.Replies, t.Retweets),
		ViralityScore:  twitterViralityScore(t.Likes, t.Replies, t.Retweets, t.CreatedAt, now),
		Tags:           c.tagger.Tags(t.Text),
		Sentiment:      c.sentiment.Classify(t.Text),
		TopicCluster:   c.topics.Classify(t.Text),
		CreatedAt:      t.CreatedAt.UTC(),
		FetchedAt:      now,
	}
}

// twitterEngagementRate is replies plus retweets per like as a percentage.
func twitterEngagementRate(likes, replies, retweets int) float64 {
	if likes <= 0 {
		return 0
	}
	return float64(replies+retweets) / float64(likes) * 100
}

// twitterViralityScore mirrors the reddit formula: like velocity per hour plus
// the interaction ratio, capped at 100, age floored at one hour.
func twitterViralityScore(likes, replies, retweets int, createdAt, now time.Time) float64 {
	ageHours := now.Sub(createdAt).Hours()
	if ageHours < 1 {
		ageHours = 1
	}

	likesPerHour := float64(likes) / ageHours
	interactionRatio := float64(replies+retweets) / float64(maxInt(likes, 1))

	return clampScore(likesPerHour*0.7 + interactionRatio*100*0.3)
}

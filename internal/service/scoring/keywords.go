package scoring

import (
	"strings"

	"signalscout/internal/domain/trend"
)

// KeywordSentiment is a keyword-vote sentiment classifier: the side with more
// word hits wins, ties are neutral.
type KeywordSentiment struct {
	positive []string
	negative []string
}

// NewKeywordSentiment creates a sentiment classifier over the given word lists.
func NewKeywordSentiment(positive, negative []string) *KeywordSentiment {
	return &KeywordSentiment{positive: positive, negative: negative}
}

// Classify implements trend.SentimentClassifier.
func (k *KeywordSentiment) Classify(text string) trend.Sentiment {
	lower := strings.ToLower(text)

	var positive, negative int
	for _, word := range k.positive {
		if strings.Contains(lower, word) {
			positive++
		}
	}
	for _, word := range k.negative {
		if strings.Contains(lower, word) {
			negative++
		}
	}

	switch {
	case positive > negative:
		return trend.SentimentPositive
	case negative > positive:
		return trend.SentimentNegative
	default:
		return trend.SentimentNeutral
	}
}

// TopicCategory is one entry in a priority-ordered topic taxonomy.
type TopicCategory struct {
	Name     string
	Keywords []string
}

// KeywordTopics assigns the first category whose keyword set matches the text.
type KeywordTopics struct {
	categories []TopicCategory
}

// NewKeywordTopics creates a topic classifier over a priority-ordered table.
func NewKeywordTopics(categories []TopicCategory) *KeywordTopics {
	return &KeywordTopics{categories: categories}
}

// Classify implements trend.TopicClassifier.
func (k *KeywordTopics) Classify(text string) string {
	lower := strings.ToLower(text)
	for _, category := range k.categories {
		for _, keyword := range category.Keywords {
			if strings.Contains(lower, keyword) {
				return category.Name
			}
		}
	}
	return trend.TopicGeneral
}

// TagRule maps a tag label to its trigger keywords.
type TagRule struct {
	Tag      string
	Keywords []string
}

// KeywordTagger derives independent labels from trigger keywords; output order
// is rule order and may be empty.
type KeywordTagger struct {
	rules []TagRule
}

// NewKeywordTagger creates a tagger over the given rules.
func NewKeywordTagger(rules []TagRule) *KeywordTagger {
	return &KeywordTagger{rules: rules}
}

// Tags implements trend.Tagger.
func (k *KeywordTagger) Tags(text string) []string {
	lower := strings.ToLower(text)
	var tags []string
	for _, rule := range k.rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(lower, keyword) {
				tags = append(tags, rule.Tag)
				break
			}
		}
	}
	return tags
}

// redditSentimentWords / youtubeSentimentWords are the fixed per-platform
// sentiment vocabularies.
var (
	redditPositiveWords = []string{"great", "awesome", "amazing", "love", "best", "incredible"}
	redditNegativeWords = []string{"bad", "terrible", "awful", "hate", "worst", "horrible"}

	youtubePositiveWords = []string{"amazing", "incredible", "best", "awesome", "love", "great", "fantastic"}
	youtubeNegativeWords = []string{"worst", "terrible", "bad", "awful", "hate", "horrible", "disaster"}
)

// redditTopicTable is the reddit taxonomy, in match-priority order.
var redditTopicTable = []TopicCategory{
	{Name: "technology", Keywords: []string{"tech", "ai", "software", "coding", "programming"}},
	{Name: "business", Keywords: []string{"business", "startup", "marketing", "sales", "entrepreneur"}},
	{Name: "lifestyle", Keywords: []string{"life", "health", "fitness", "food", "travel"}},
	{Name: "entertainment", Keywords: []string{"movie", "music", "game", "tv", "celebrity"}},
	{Name: "education", Keywords: []string{"learn", "study", "course", "tutorial", "guide"}},
	{Name: "finance", Keywords: []string{"money", "investing", "crypto", "stock", "finance"}},
}

// youtubeTopicTable extends the taxonomy with video-native categories.
var youtubeTopicTable = []TopicCategory{
	{Name: "technology", Keywords: []string{"tech", "ai", "software", "coding", "programming", "gadget"}},
	{Name: "business", Keywords: []string{"business", "startup", "marketing", "entrepreneur", "money"}},
	{Name: "lifestyle", Keywords: []string{"lifestyle", "health", "fitness", "beauty", "fashion", "food"}},
	{Name: "entertainment", Keywords: []string{"entertainment", "movie", "music", "comedy", "funny", "celebrity"}},
	{Name: "education", Keywords: []string{"tutorial", "how to", "learn", "education", "course", "guide"}},
	{Name: "gaming", Keywords: []string{"gaming", "game", "gameplay", "review", "playthrough"}},
	{Name: "travel", Keywords: []string{"travel", "vacation", "trip", "destination", "explore"}},
	{Name: "sports", Keywords: []string{"sports", "football", "basketball", "soccer", "workout", "training"}},
}

// contentTagRules are the shared derived-label rules.
var contentTagRules = []TagRule{
	{Tag: "trending", Keywords: []string{"trending", "viral", "popular"}},
	{Tag: "educational", Keywords: []string{"tips", "hack", "secret"}},
	{Tag: "humor", Keywords: []string{"funny", "lol", "humor"}},
	{Tag: "news", Keywords: []string{"breaking", "news", "update"}},
}

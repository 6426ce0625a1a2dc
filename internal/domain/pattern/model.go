package pattern

import (
	"time"

	"signalscout/internal/domain/trend"
)

// Type tags the shape of a pattern payload.
type Type string

const (
	TypeHook     Type = "hook"
	TypeTiming   Type = "timing"
	TypeEmotion  Type = "emotion"
	TypeFormat   Type = "format"
	TypeTopic    Type = "topic"
	TypePlatform Type = "platform"
)

// Data is the tagged-union payload of a virality pattern. Each pattern type
// has its own well-typed payload; the store serializes whichever variant it
// receives to JSON.
type Data interface {
	PatternType() Type
}

// HookData holds the share of viral titles matching each hook category,
// in percent. Categories are independent: one title may count toward several.
type HookData struct {
	QuestionHooks  float64 `json:"question_hooks"`
	NumberHooks    float64 `json:"number_hooks"`
	EmotionalHooks float64 `json:"emotional_hooks"`
	HowToHooks     float64 `json:"how_to_hooks"`
	ListHooks      float64 `json:"list_hooks"`
	UrgencyHooks   float64 `json:"urgency_hooks"`
}

func (HookData) PatternType() Type { return TypeHook }

// HourPerformance is the average virality of records created in one hour
// of the day.
type HourPerformance struct {
	Hour  int     `json:"hour"`
	Score float64 `json:"score"`
}

// DayPerformance is the average virality of records created on one weekday.
type DayPerformance struct {
	Day   string  `json:"day"`
	Score float64 `json:"score"`
}

// TimingData reports the best-performing creation hours and weekdays.
type TimingData struct {
	BestHours []HourPerformance `json:"best_hours"`
	BestDays  []DayPerformance  `json:"best_days"`
	Insights  []string          `json:"timing_insights"`
}

func (TimingData) PatternType() Type { return TypeTiming }

// EmotionData reports average virality per sentiment label.
type EmotionData struct {
	SentimentPerformance map[trend.Sentiment]float64 `json:"sentiment_performance"`
	BestSentiment        trend.Sentiment             `json:"best_sentiment"`
	Insights             []string                    `json:"emotion_insights"`
}

func (EmotionData) PatternType() Type { return TypeEmotion }

// FormatCounts tallies content formats observed on one platform.
type FormatCounts struct {
	ShortForm int `json:"short_form"`
	LongForm  int `json:"long_form"`
	Visual    int `json:"visual"`
}

// FormatData is the per-platform format count table.
type FormatData struct {
	Platforms map[trend.Platform]FormatCounts `json:"platform_formats"`
}

func (FormatData) PatternType() Type { return TypeFormat }

// TopicStat aggregates one topic cluster over the viral set.
type TopicStat struct {
	Topic         string  `json:"topic"`
	Count         int     `json:"count"`
	AvgVirality   float64 `json:"avg_virality"`
	AvgEngagement float64 `json:"avg_engagement"`
}

// TopicData holds the top topic clusters by average virality.
type TopicData struct {
	TopTopics []TopicStat `json:"top_topics"`
	Insights  []string    `json:"topic_insights"`
}

func (TopicData) PatternType() Type { return TypeTopic }

// PlatformStat aggregates one platform over the viral set.
type PlatformStat struct {
	Count         int     `json:"count"`
	AvgVirality   float64 `json:"avg_virality"`
	AvgEngagement float64 `json:"avg_engagement"`
	AvgScore      float64 `json:"avg_score"`
}

// PlatformData is the per-platform performance table.
type PlatformData struct {
	Platforms map[trend.Platform]PlatformStat `json:"platform_stats"`
}

func (PlatformData) PatternType() Type { return TypePlatform }

// Record is one persisted virality pattern. Pattern records are append-only:
// every analysis run inserts fresh rows, preserving history.
type Record struct {
	ID            int64            `json:"id"`
	PatternType   Type             `json:"pattern_type"`
	Data          Data             `json:"pattern_data"`
	SuccessRate   float64          `json:"success_rate"`
	Platforms     []trend.Platform `json:"platforms"`
	TopicClusters []string         `json:"topic_clusters"`
	CreatedAt     time.Time        `json:"created_at"`
}

// Set bundles the six sub-analyses of one analyzer run.
type Set struct {
	Hooks     HookData     `json:"hook_patterns"`
	Timing    TimingData   `json:"timing_patterns"`
	Emotions  EmotionData  `json:"emotion_patterns"`
	Formats   FormatData   `json:"format_patterns"`
	Topics    TopicData    `json:"topic_trends"`
	Platforms PlatformData `json:"platform_insights"`
}

// Report is the full analyzer output. When no record clears the threshold,
// Message is set and Patterns is nil.
type Report struct {
	TotalViralContent int     `json:"total_viral_content,omitempty"`
	AnalysisThreshold float64 `json:"analysis_threshold,omitempty"`
	Message           string  `json:"message,omitempty"`
	Patterns          *Set    `json:"patterns,omitempty"`
}

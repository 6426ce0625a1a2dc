package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"signalscout/internal/domain/pattern"
	"signalscout/internal/domain/trend"
)

// PatternStore appends pattern records. The whole batch must commit
// atomically: a failure midway leaves no partial rows behind.
type PatternStore interface {
	AppendPatterns(ctx context.Context, records []pattern.Record) error
}

// DefaultViralThreshold is the virality floor for pattern analysis.
const DefaultViralThreshold = 70.0

// noViralContentMessage is the defined empty-result response.
const noViralContentMessage = "no viral content found"

var digitPattern = regexp.MustCompile(`\d+`)

// Hook trigger vocabularies.
var (
	questionWords  = []string{"how", "why", "what", "when", "where", "which", "who"}
	emotionalWords = []string{"amazing", "shocking", "incredible", "secret", "revealed", "exposed"}
	listWords      = []string{"ways", "tips", "reasons", "things"}
	urgencyWords   = []string{"now", "today", "urgent", "breaking", "just", "finally"}
)

// PatternAnalyzer runs the batch pattern analysis over viral records and
// persists each sub-analysis as an append-only pattern record.
type PatternAnalyzer struct {
	trends    TrendReader
	patterns  PatternStore
	threshold float64
	log       *logrus.Logger
}

// NewPatternAnalyzer creates a pattern analyzer. A non-positive threshold
// falls back to the default.
func NewPatternAnalyzer(trends TrendReader, patterns PatternStore, threshold float64, log *logrus.Logger) *PatternAnalyzer {
	if threshold <= 0 {
		threshold = DefaultViralThreshold
	}
	return &PatternAnalyzer{trends: trends, patterns: patterns, threshold: threshold, log: log}
}

// AnalyzeViralPatterns analyzes every stored record at or above minScore.
// An empty qualifying set is not an error: the report carries the defined
// message and no pattern rows are written.
func (a *PatternAnalyzer) AnalyzeViralPatterns(ctx context.Context, minScore float64) (*pattern.Report, error) {
	if minScore <= 0 {
		minScore = a.threshold
	}

	viral, err := a.trends.ListByVirality(ctx, minScore, nil)
	if err != nil {
		return nil, fmt.Errorf("loading viral content: %w", err)
	}

	if len(viral) == 0 {
		return &pattern.Report{Message: noViralContentMessage}, nil
	}

	set := &pattern.Set{
		Hooks:     analyzeHooks(viral),
		Timing:    analyzeTiming(viral),
		Emotions:  analyzeEmotions(viral),
		Formats:   analyzeFormats(viral),
		Topics:    analyzeTopicTrends(viral),
		Platforms: analyzePlatformPerformance(viral),
	}

	if err := a.storePatterns(ctx, viral, set); err != nil {
		return nil, err
	}

	return &pattern.Report{
		TotalViralContent: len(viral),
		AnalysisThreshold: minScore,
		Patterns:          set,
	}, nil
}

// analyzeHooks computes the percentage of titles matching each hook category.
// Categories are independent; one title may count toward several.
func analyzeHooks(viral []trend.Record) pattern.HookData {
	var data pattern.HookData
	total := float64(len(viral))

	for _, record := range viral {
		title := record.Title
		lower := strings.ToLower(title)

		if containsAny(lower, questionWords) && strings.Contains(title, "?") {
			data.QuestionHooks++
		}
		if digitPattern.MatchString(title) {
			data.NumberHooks++
		}
		if containsAny(lower, emotionalWords) {
			data.EmotionalHooks++
		}
		if strings.Contains(lower, "how to") {
			data.HowToHooks++
		}
		if containsAny(lower, listWords) {
			data.ListHooks++
		}
		if containsAny(lower, urgencyWords) {
			data.UrgencyHooks++
		}
	}

	data.QuestionHooks = data.QuestionHooks / total * 100
	data.NumberHooks = data.NumberHooks / total * 100
	data.EmotionalHooks = data.EmotionalHooks / total * 100
	data.HowToHooks = data.HowToHooks / total * 100
	data.ListHooks = data.ListHooks / total * 100
	data.UrgencyHooks = data.UrgencyHooks / total * 100
	return data
}

// analyzeTiming buckets virality by creation hour and weekday, reporting the
// top five hours and top three days by average.
func analyzeTiming(viral []trend.Record) pattern.TimingData {
	hourScores := make(map[int][]float64)
	dayScores := make(map[string][]float64)

	for _, record := range viral {
		hour := record.CreatedAt.Hour()
		day := record.CreatedAt.Weekday().String()

		hourScores[hour] = append(hourScores[hour], record.ViralityScore)
		dayScores[day] = append(dayScores[day], record.ViralityScore)
	}

	bestHours := make([]pattern.HourPerformance, 0, len(hourScores))
	for hour, scores := range hourScores {
		bestHours = append(bestHours, pattern.HourPerformance{Hour: hour, Score: mean(scores)})
	}
	sort.Slice(bestHours, func(i, j int) bool {
		if bestHours[i].Score != bestHours[j].Score {
			return bestHours[i].Score > bestHours[j].Score
		}
		return bestHours[i].Hour < bestHours[j].Hour
	})
	if len(bestHours) > 5 {
		bestHours = bestHours[:5]
	}

	bestDays := make([]pattern.DayPerformance, 0, len(dayScores))
	for day, scores := range dayScores {
		bestDays = append(bestDays, pattern.DayPerformance{Day: day, Score: mean(scores)})
	}
	sort.Slice(bestDays, func(i, j int) bool {
		if bestDays[i].Score != bestDays[j].Score {
			return bestDays[i].Score > bestDays[j].Score
		}
		return bestDays[i].Day < bestDays[j].Day
	})
	if len(bestDays) > 3 {
		bestDays = bestDays[:3]
	}

	var insights []string
	if len(bestHours) > 0 {
		insights = append(insights, fmt.Sprintf("Peak performance hour: %d:00", bestHours[0].Hour))
	}
	if len(bestDays) > 0 {
		insights = append(insights, fmt.Sprintf("Best day for virality: %s", bestDays[0].Day))
	}

	return pattern.TimingData{BestHours: bestHours, BestDays: bestDays, Insights: insights}
}

// analyzeEmotions averages virality per sentiment label.
func analyzeEmotions(viral []trend.Record) pattern.EmotionData {
	scores := make(map[trend.Sentiment][]float64)
	for _, record := range viral {
		scores[record.Sentiment] = append(scores[record.Sentiment], record.ViralityScore)
	}

	performance := make(map[trend.Sentiment]float64, len(scores))
	var best trend.Sentiment
	bestScore := -1.0
	for sentiment, values := range scores {
		avg := mean(values)
		performance[sentiment] = avg
		if avg > bestScore || (avg == bestScore && sentiment < best) {
			best = sentiment
			bestScore = avg
		}
	}

	var insights []string
	if positive, ok := performance[trend.SentimentPositive]; ok && positive > 70 {
		insights = append(insights, "Positive content performs significantly better")
	}
	if negative, ok := performance[trend.SentimentNegative]; ok && negative > performance[trend.SentimentPositive] {
		insights = append(insights, "Negative content generates higher engagement")
	}

	return pattern.EmotionData{SentimentPerformance: performance, BestSentiment: best, Insights: insights}
}

// analyzeFormats classifies each record as visual, short-form or long-form
// per platform.
func analyzeFormats(viral []trend.Record) pattern.FormatData {
	formats := make(map[trend.Platform]pattern.FormatCounts)

	for _, record := range viral {
		counts := formats[record.Platform]
		switch {
		case record.Platform == trend.PlatformYouTube:
			counts.Visual++
		case len(record.Description) < 100:
			counts.ShortForm++
		default:
			counts.LongForm++
		}
		formats[record.Platform] = counts
	}

	return pattern.FormatData{Platforms: formats}
}

// analyzeTopicTrends aggregates count, average virality and average
// engagement per topic cluster, keeping the top ten by average virality.
func analyzeTopicTrends(viral []trend.Record) pattern.TopicData {
	type accumulator struct {
		count      int
		virality   float64
		engagement float64
	}
	byTopic := make(map[string]*accumulator)

	for _, record := range viral {
		acc := byTopic[record.TopicCluster]
		if acc == nil {
			acc = &accumulator{}
			byTopic[record.TopicCluster] = acc
		}
		acc.count++
		acc.virality += record.ViralityScore
		acc.engagement += record.EngagementRate
	}

	topics := make([]pattern.TopicStat, 0, len(byTopic))
	for topic, acc := range byTopic {
		topics = append(topics, pattern.TopicStat{
			Topic:         topic,
			Count:         acc.count,
			AvgVirality:   acc.virality / float64(acc.count),
			AvgEngagement: acc.engagement / float64(acc.count),
		})
	}
	sort.Slice(topics, func(i, j int) bool {
		if topics[i].AvgVirality != topics[j].AvgVirality {
			return topics[i].AvgVirality > topics[j].AvgVirality
		}
		return topics[i].Topic < topics[j].Topic
	})
	if len(topics) > 10 {
		topics = topics[:10]
	}

	var insights []string
	if len(topics) > 0 {
		insights = append(insights, fmt.Sprintf("'%s' is the highest performing topic cluster", topics[0].Topic))
	}
	if len(topics) >= 3 {
		names := []string{topics[0].Topic, topics[1].Topic, topics[2].Topic}
		insights = append(insights, fmt.Sprintf("Trending topics: %s", strings.Join(names, ", ")))
	}

	return pattern.TopicData{TopTopics: topics, Insights: insights}
}

// analyzePlatformPerformance aggregates per-platform averages.
func analyzePlatformPerformance(viral []trend.Record) pattern.PlatformData {
	type accumulator struct {
		count      int
		virality   float64
		engagement float64
		score      float64
	}
	byPlatform := make(map[trend.Platform]*accumulator)

	for _, record := range viral {
		acc := byPlatform[record.Platform]
		if acc == nil {
			acc = &accumulator{}
			byPlatform[record.Platform] = acc
		}
		acc.count++
		acc.virality += record.ViralityScore
		acc.engagement += record.EngagementRate
		acc.score += float64(record.Score)
	}

	stats := make(map[trend.Platform]pattern.PlatformStat, len(byPlatform))
	for platform, acc := range byPlatform {
		stats[platform] = pattern.PlatformStat{
			Count:         acc.count,
			AvgVirality:   acc.virality / float64(acc.count),
			AvgEngagement: acc.engagement / float64(acc.count),
			AvgScore:      acc.score / float64(acc.count),
		}
	}

	return pattern.PlatformData{Platforms: stats}
}

// storePatterns appends one record per sub-analysis in a single atomic batch.
func (a *PatternAnalyzer) storePatterns(ctx context.Context, viral []trend.Record, set *pattern.Set) error {
	platforms := distinctPlatforms(viral)
	clusters := make([]string, 0, len(set.Topics.TopTopics))
	for _, stat := range set.Topics.TopTopics {
		clusters = append(clusters, stat.Topic)
	}

	payloads := []pattern.Data{
		set.Hooks, set.Timing, set.Emotions, set.Formats, set.Topics, set.Platforms,
	}

	records := make([]pattern.Record, 0, len(payloads))
	for _, payload := range payloads {
		records = append(records, pattern.Record{
			PatternType:   payload.PatternType(),
			Data:          payload,
			SuccessRate:   patternSuccessRate(payload),
			Platforms:     platforms,
			TopicClusters: clusters,
		})
	}

	if err := a.patterns.AppendPatterns(ctx, records); err != nil {
		return fmt.Errorf("storing virality patterns: %w", err)
	}

	a.log.WithFields(logrus.Fields{
		"patterns":      len(records),
		"viral_records": len(viral),
	}).Info("Stored virality patterns")
	return nil
}

// patternSuccessRate is a deliberate placeholder policy, not a statistic:
// payloads that carry average-virality aggregates rate 75, the rest 50.
func patternSuccessRate(data pattern.Data) float64 {
	raw, err := json.Marshal(data)
	if err != nil {
		return 50.0
	}
	if strings.Contains(string(raw), "avg_virality") {
		return 75.0
	}
	return 50.0
}

func distinctPlatforms(records []trend.Record) []trend.Platform {
	seen := make(map[trend.Platform]bool)
	var platforms []trend.Platform
	for _, record := range records {
		if !seen[record.Platform] {
			seen[record.Platform] = true
			platforms = append(platforms, record.Platform)
		}
	}
	sort.Slice(platforms, func(i, j int) bool { return platforms[i] < platforms[j] })
	return platforms
}

func containsAny(text string, words []string) bool {
	for _, word := range words {
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

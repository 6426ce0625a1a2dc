package generation

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"signalscout/internal/adapter/openai"
	"signalscout/internal/adapter/storage"
	"signalscout/internal/domain/content"
	"signalscout/internal/domain/trend"
)

// ErrTrendNotFound is returned when the inspiring trend does not exist.
var ErrTrendNotFound = errors.New("trend not found")

// TrendGetter looks up single trend records.
type TrendGetter interface {
	GetByID(ctx context.Context, id int64) (*trend.Record, error)
}

// ContentStore persists and serves generated content.
type ContentStore interface {
	InsertGenerated(ctx context.Context, g *content.Generated) error
	ListGenerated(ctx context.Context, topic string, limit int) ([]content.Generated, error)
	MarkUsed(ctx context.Context, id int64) error
}

// VoiceReader looks up trained brand voice profiles.
type VoiceReader interface {
	GetByName(ctx context.Context, brandName string) (*content.BrandVoice, error)
}

// Request describes one content generation attempt.
type Request struct {
	TrendID        int64        `json:"trend_id"`
	ContentType    content.Type `json:"content_type"`
	BrandVoice     string       `json:"brand_voice"`
	TargetAudience string       `json:"target_audience"`
}

// InspirationSource summarizes the trend a generation was seeded from.
type InspirationSource struct {
	Title         string         `json:"title"`
	Platform      trend.Platform `json:"platform"`
	ViralityScore float64        `json:"virality_score"`
}

// Result is a completed generation with its inspiration.
type Result struct {
	ID                    int64             `json:"id"`
	Content               string            `json:"content"`
	QualityScore          float64           `json:"quality_score"`
	PerformancePrediction float64           `json:"performance_prediction"`
	InspirationSource     InspirationSource `json:"inspiration_source"`
}

// Generator turns trend records into original content drafts via the LLM.
type Generator struct {
	trends TrendGetter
	store  ContentStore
	voices VoiceReader
	llm    openai.Generator
	log    *logrus.Logger
}

// NewGenerator creates a content generator.
func NewGenerator(trends TrendGetter, store ContentStore, voices VoiceReader, llm openai.Generator, log *logrus.Logger) *Generator {
	return &Generator{trends: trends, store: store, voices: voices, llm: llm, log: log}
}

// Generate produces, scores and persists one content draft inspired by the
// requested trend.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	if !req.ContentType.Valid() {
		return nil, fmt.Errorf("unsupported content type: %s", req.ContentType)
	}

	t, err := g.trends.GetByID(ctx, req.TrendID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrTrendNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading trend: %w", err)
	}

	// The brand profile is optional: an untrained voice still generates.
	profile, err := g.voices.GetByName(ctx, req.BrandVoice)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("loading brand voice: %w", err)
	}

	promptContext := buildContext(t, req.BrandVoice, req.TargetAudience, profile)
	prompt, err := buildPrompt(req.ContentType, promptContext)
	if err != nil {
		return nil, err
	}

	text, err := g.llm.GenerateText(ctx, generationSystemPrompt, prompt)
	if err != nil {
		return nil, fmt.Errorf("generating content: %w", err)
	}

	generated := &content.Generated{
		TrendID:               t.ID,
		ContentType:           req.ContentType,
		GeneratedText:         text,
		BrandVoice:            req.BrandVoice,
		TargetAudience:        req.TargetAudience,
		QualityScore:          QualityScore(text, req.ContentType),
		TopicCluster:          t.TopicCluster,
		PerformancePrediction: PerformancePrediction(t.ViralityScore, text),
	}
	if err := g.store.InsertGenerated(ctx, generated); err != nil {
		return nil, fmt.Errorf("storing generated content: %w", err)
	}

	g.log.WithFields(logrus.Fields{
		"content_id":   generated.ID,
		"trend_id":     t.ID,
		"content_type": req.ContentType,
	}).Info("Generated content")

	return &Result{
		ID:                    generated.ID,
		Content:               text,
		QualityScore:          generated.QualityScore,
		PerformancePrediction: generated.PerformancePrediction,
		InspirationSource: InspirationSource{
			Title:         t.Title,
			Platform:      t.Platform,
			ViralityScore: t.ViralityScore,
		},
	}, nil
}

// VaultItem is one stored generation with its inspiration resolved.
type VaultItem struct {
	content.Generated
	InspirationSource VaultSource `json:"inspiration_source"`
}

// VaultSource is the resolved inspiration of a vault item. A dangling trend
// reference reports as Unknown rather than failing the listing.
type VaultSource struct {
	Title         string  `json:"title"`
	Platform      string  `json:"platform"`
	ViralityScore float64 `json:"virality_score"`
}

// Vault lists stored generations, best predicted performance first, with
// each item's inspiration trend resolved.
func (g *Generator) Vault(ctx context.Context, topic string, limit int) ([]VaultItem, error) {
	items, err := g.store.ListGenerated(ctx, topic, limit)
	if err != nil {
		return nil, fmt.Errorf("listing generated content: %w", err)
	}

	vault := make([]VaultItem, 0, len(items))
	for _, item := range items {
		source := VaultSource{Title: "Unknown", Platform: "Unknown"}
		if t, err := g.trends.GetByID(ctx, item.TrendID); err == nil {
			source = VaultSource{
				Title:         t.Title,
				Platform:      string(t.Platform),
				ViralityScore: t.ViralityScore,
			}
		} else if !errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("resolving inspiration trend: %w", err)
		}
		vault = append(vault, VaultItem{Generated: item, InspirationSource: source})
	}
	return vault, nil
}

// MarkUsed flags one stored generation as used.
func (g *Generator) MarkUsed(ctx context.Context, id int64) error {
	return g.store.MarkUsed(ctx, id)
}

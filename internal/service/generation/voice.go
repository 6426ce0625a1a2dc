package generation

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"signalscout/internal/adapter/openai"
	"signalscout/internal/domain/content"
)

// VoiceStore persists brand voice profiles.
type VoiceStore interface {
	Upsert(ctx context.Context, v *content.BrandVoice) error
	GetByName(ctx context.Context, brandName string) (*content.BrandVoice, error)
}

// TrainingResult reports one brand voice training run.
type TrainingResult struct {
	BrandName       string            `json:"brand_name"`
	Characteristics map[string]string `json:"characteristics"`
	TrainingSamples int               `json:"training_samples"`
	Status          string            `json:"status"`
}

// VoiceTrainer builds brand voice profiles from content samples.
type VoiceTrainer struct {
	store VoiceStore
	llm   openai.Generator
	log   *logrus.Logger
}

// NewVoiceTrainer creates a brand voice trainer.
func NewVoiceTrainer(store VoiceStore, llm openai.Generator, log *logrus.Logger) *VoiceTrainer {
	return &VoiceTrainer{store: store, llm: llm, log: log}
}

// Train analyzes the samples with the LLM, derives a characteristics map and
// upserts the profile under the brand name.
func (t *VoiceTrainer) Train(ctx context.Context, brandName, tone string, samples []string) (*TrainingResult, error) {
	if brandName == "" {
		return nil, fmt.Errorf("brand name is required")
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("at least one content sample is required")
	}

	analysis, err := t.llm.GenerateText(ctx, voiceSystemPrompt, buildVoicePrompt(brandName, tone, samples))
	if err != nil {
		return nil, fmt.Errorf("analyzing brand voice: %w", err)
	}

	voice := &content.BrandVoice{
		BrandName:       brandName,
		Tone:            tone,
		Characteristics: parseVoiceAnalysis(analysis),
		SampleContent:   samples,
	}
	if err := t.store.Upsert(ctx, voice); err != nil {
		return nil, fmt.Errorf("storing brand voice: %w", err)
	}

	t.log.WithField("brand_name", brandName).Info("Trained brand voice")

	return &TrainingResult{
		BrandName:       brandName,
		Characteristics: voice.Characteristics,
		TrainingSamples: len(samples),
		Status:          "trained",
	}, nil
}

// parseVoiceAnalysis reduces the free-text analysis to a keyword-derived
// characteristics map with sensible defaults.
func parseVoiceAnalysis(analysis string) map[string]string {
	characteristics := map[string]string{
		"style":           "conversational",
		"vocabulary":      "accessible",
		"personality":     "friendly",
		"technical_level": "moderate",
		"humor":           "light",
		"formality":       "casual",
	}

	lower := strings.ToLower(analysis)

	if strings.Contains(lower, "formal") {
		characteristics["style"] = "formal"
	} else if strings.Contains(lower, "casual") {
		characteristics["style"] = "casual"
	}

	if strings.Contains(lower, "professional") {
		characteristics["personality"] = "professional"
	} else if strings.Contains(lower, "playful") {
		characteristics["personality"] = "playful"
	} else if strings.Contains(lower, "authoritative") {
		characteristics["personality"] = "authoritative"
	}

	if strings.Contains(lower, "technical") || strings.Contains(lower, "expert") {
		characteristics["technical_level"] = "high"
	} else if strings.Contains(lower, "beginner") || strings.Contains(lower, "simple") {
		characteristics["technical_level"] = "low"
	}

	return characteristics
}

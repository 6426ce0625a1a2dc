package content

import (
	"time"
)

// Type identifies the target format of a generation attempt.
type Type string

const (
	TypeTweet    Type = "tweet"
	TypeLinkedIn Type = "linkedin"
	TypeScript   Type = "script"
	TypeCarousel Type = "carousel"
)

// Valid reports whether t is a known content type.
func (t Type) Valid() bool {
	switch t {
	case TypeTweet, TypeLinkedIn, TypeScript, TypeCarousel:
		return true
	}
	return false
}

// Generated is one content generation attempt. TrendID is a weak reference to
// the inspiring trend record: it is a lookup key only and may dangle if the
// trend is later removed, in which case consumers report the source as unknown.
type Generated struct {
	ID                    int64     `json:"id"`
	TrendID               int64     `json:"trend_id"`
	ContentType           Type      `json:"content_type"`
	GeneratedText         string    `json:"generated_text"`
	BrandVoice            string    `json:"brand_voice"`
	TargetAudience        string    `json:"target_audience"`
	QualityScore          float64   `json:"quality_score"`
	TopicCluster          string    `json:"topic_cluster"`
	IsUsed                bool      `json:"is_used"`
	PerformancePrediction float64   `json:"performance_prediction"`
	CreatedAt             time.Time `json:"created_at"`
}

// BrandVoice is a trained brand voice profile, upserted by brand name.
type BrandVoice struct {
	ID              int64             `json:"id"`
	BrandName       string            `json:"brand_name"`
	Tone            string            `json:"tone"`
	Characteristics map[string]string `json:"characteristics"`
	SampleContent   []string          `json:"sample_content"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

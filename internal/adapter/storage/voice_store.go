package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"signalscout/internal/domain/content"
)

// VoiceStore implements Postgres storage for brand voice profiles.
type VoiceStore struct {
	db *pgxpool.Pool
}

// NewVoiceStore creates a new brand voice store.
func NewVoiceStore(db *pgxpool.Pool) *VoiceStore {
	return &VoiceStore{db: db}
}

// Upsert saves a brand voice, replacing any existing profile for the same
// brand name.
func (s *VoiceStore) Upsert(ctx context.Context, v *content.BrandVoice) error {
	query := `
		INSERT INTO brand_voices (
			brand_name, tone, characteristics, sample_content, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (brand_name) DO UPDATE
		SET
			tone = $2,
			characteristics = $3,
			sample_content = $4,
			updated_at = $6
		RETURNING id
	`

	now := time.Now()
	if v.CreatedAt.IsZero() {
		v.CreatedAt = now
	}
	v.UpdatedAt = now

	characteristicsJSON, err := json.Marshal(v.Characteristics)
	if err != nil {
		return fmt.Errorf("error marshaling characteristics: %w", err)
	}

	err = s.db.QueryRow(
		ctx,
		query,
		v.BrandName,
		v.Tone,
		characteristicsJSON,
		v.SampleContent,
		v.CreatedAt,
		v.UpdatedAt,
	).Scan(&v.ID)

	if err != nil {
		return fmt.Errorf("error upserting brand voice: %w", err)
	}
	return nil
}

// GetByName retrieves a brand voice profile, or ErrNotFound.
func (s *VoiceStore) GetByName(ctx context.Context, brandName string) (*content.BrandVoice, error) {
	query := `
		SELECT id, brand_name, tone, characteristics, sample_content, created_at, updated_at
		FROM brand_voices
		WHERE brand_name = $1
	`

	var v content.BrandVoice
	var characteristicsJSON []byte

	err := s.db.QueryRow(ctx, query, brandName).Scan(
		&v.ID,
		&v.BrandName,
		&v.Tone,
		&characteristicsJSON,
		&v.SampleContent,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error querying brand voice: %w", err)
	}

	if err := json.Unmarshal(characteristicsJSON, &v.Characteristics); err != nil {
		return nil, fmt.Errorf("error unmarshaling characteristics: %w", err)
	}
	return &v, nil
}

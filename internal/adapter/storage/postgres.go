package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// NewPool connects a pgx pool to the given database URL.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.Connect(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return pool, nil
}

// InitSchema creates the tables if they don't exist. In an ideal world this
// would be a migration run once per environment.
func InitSchema(ctx context.Context, db *pgxpool.Pool) error {
	schema := `
	CREATE TABLE IF NOT EXISTS trends (
		id BIGSERIAL PRIMARY KEY,
		platform TEXT NOT NULL,
		content_id TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		url TEXT NOT NULL DEFAULT '',
		author TEXT NOT NULL DEFAULT 'unknown',
		score INTEGER NOT NULL DEFAULT 0,
		comments_count INTEGER NOT NULL DEFAULT 0,
		engagement_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
		virality_score DOUBLE PRECISION NOT NULL DEFAULT 0,
		tags TEXT[] NOT NULL DEFAULT '{}',
		sentiment TEXT NOT NULL DEFAULT 'neutral',
		topic_cluster TEXT NOT NULL DEFAULT 'general',
		created_at TIMESTAMPTZ NOT NULL,
		fetched_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (platform, content_id)
	);

	CREATE INDEX IF NOT EXISTS idx_trends_virality ON trends (virality_score DESC, id ASC);
	CREATE INDEX IF NOT EXISTS idx_trends_topic ON trends (topic_cluster);
	CREATE INDEX IF NOT EXISTS idx_trends_fetched ON trends (fetched_at);

	CREATE TABLE IF NOT EXISTS virality_patterns (
		id BIGSERIAL PRIMARY KEY,
		pattern_type TEXT NOT NULL,
		pattern_data JSONB NOT NULL,
		success_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
		platforms TEXT[] NOT NULL DEFAULT '{}',
		topic_clusters TEXT[] NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS generated_content (
		id BIGSERIAL PRIMARY KEY,
		trend_id BIGINT NOT NULL DEFAULT 0,
		content_type TEXT NOT NULL,
		generated_text TEXT NOT NULL,
		brand_voice TEXT NOT NULL DEFAULT '',
		target_audience TEXT NOT NULL DEFAULT '',
		quality_score DOUBLE PRECISION NOT NULL DEFAULT 0,
		topic_cluster TEXT NOT NULL DEFAULT 'general',
		is_used BOOLEAN NOT NULL DEFAULT FALSE,
		performance_prediction DOUBLE PRECISION NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS brand_voices (
		id BIGSERIAL PRIMARY KEY,
		brand_name TEXT NOT NULL UNIQUE,
		tone TEXT NOT NULL DEFAULT '',
		characteristics JSONB NOT NULL DEFAULT '{}',
		sample_content TEXT[] NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	`

	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

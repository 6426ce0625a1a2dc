package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"signalscout/internal/domain/pattern"
)

// PatternStore implements Postgres storage for virality patterns. Patterns
// are append-only: every analysis run inserts fresh rows.
type PatternStore struct {
	db *pgxpool.Pool
}

// NewPatternStore creates a new pattern store.
func NewPatternStore(db *pgxpool.Pool) *PatternStore {
	return &PatternStore{db: db}
}

// AppendPatterns inserts a batch of pattern records in one transaction, so
// a failure midway leaves no partial analysis behind.
func (s *PatternStore) AppendPatterns(ctx context.Context, records []pattern.Record) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO virality_patterns (
			pattern_type, pattern_data, success_rate, platforms, topic_clusters, created_at
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	now := time.Now()
	for i := range records {
		r := &records[i]
		if r.CreatedAt.IsZero() {
			r.CreatedAt = now
		}

		dataJSON, err := json.Marshal(r.Data)
		if err != nil {
			return fmt.Errorf("error marshaling pattern data: %w", err)
		}

		platforms := make([]string, 0, len(r.Platforms))
		for _, p := range r.Platforms {
			platforms = append(platforms, string(p))
		}

		err = tx.QueryRow(
			ctx,
			query,
			r.PatternType,
			dataJSON,
			r.SuccessRate,
			platforms,
			r.TopicClusters,
			r.CreatedAt,
		).Scan(&r.ID)
		if err != nil {
			return fmt.Errorf("error inserting pattern: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing patterns: %w", err)
	}
	return nil
}

// ListRecent returns the most recent pattern rows, newest first. Payloads
// come back as raw JSON since the rows mix pattern types.
func (s *PatternStore) ListRecent(ctx context.Context, limit int) ([]StoredPattern, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, pattern_type, pattern_data, success_rate, platforms, topic_clusters, created_at
		FROM virality_patterns
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`

	rows, err := s.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var patterns []StoredPattern
	for rows.Next() {
		var p StoredPattern
		var platforms []string

		err := rows.Scan(
			&p.ID,
			&p.PatternType,
			&p.Data,
			&p.SuccessRate,
			&platforms,
			&p.TopicClusters,
			&p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning pattern: %w", err)
		}
		p.Platforms = platforms
		patterns = append(patterns, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating patterns: %w", err)
	}
	return patterns, nil
}

// StoredPattern is a persisted pattern row with its payload left as JSON.
type StoredPattern struct {
	ID            int64           `json:"id"`
	PatternType   pattern.Type    `json:"pattern_type"`
	Data          json.RawMessage `json:"pattern_data"`
	SuccessRate   float64         `json:"success_rate"`
	Platforms     []string        `json:"platforms"`
	TopicClusters []string        `json:"topic_clusters"`
	CreatedAt     time.Time       `json:"created_at"`
}

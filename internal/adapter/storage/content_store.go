package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"signalscout/internal/domain/content"
)

// ContentStore implements Postgres storage for generated content.
type ContentStore struct {
	db *pgxpool.Pool
}

// NewContentStore creates a new content store.
func NewContentStore(db *pgxpool.Pool) *ContentStore {
	return &ContentStore{db: db}
}

// InsertGenerated saves one generation attempt and fills in its ID.
func (s *ContentStore) InsertGenerated(ctx context.Context, g *content.Generated) error {
	query := `
		INSERT INTO generated_content (
			trend_id, content_type, generated_text, brand_voice, target_audience,
			quality_score, topic_cluster, is_used, performance_prediction, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now()
	}

	err := s.db.QueryRow(
		ctx,
		query,
		g.TrendID,
		g.ContentType,
		g.GeneratedText,
		g.BrandVoice,
		g.TargetAudience,
		g.QualityScore,
		g.TopicCluster,
		g.IsUsed,
		g.PerformancePrediction,
		g.CreatedAt,
	).Scan(&g.ID)

	if err != nil {
		return fmt.Errorf("error inserting generated content: %w", err)
	}
	return nil
}

// ListGenerated returns stored generations, best predicted performance
// first, optionally filtered to one topic cluster.
func (s *ContentStore) ListGenerated(ctx context.Context, topic string, limit int) ([]content.Generated, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, trend_id, content_type, generated_text, brand_voice, target_audience,
			quality_score, topic_cluster, is_used, performance_prediction, created_at
		FROM generated_content
	`
	args := []interface{}{}
	if topic != "" {
		query += ` WHERE LOWER(topic_cluster) = LOWER($1)`
		args = append(args, topic)
	}
	query += fmt.Sprintf(" ORDER BY performance_prediction DESC, id ASC LIMIT $%d", len(args)+1)
	args = append(args, limit)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var items []content.Generated
	for rows.Next() {
		var g content.Generated
		err := rows.Scan(
			&g.ID,
			&g.TrendID,
			&g.ContentType,
			&g.GeneratedText,
			&g.BrandVoice,
			&g.TargetAudience,
			&g.QualityScore,
			&g.TopicCluster,
			&g.IsUsed,
			&g.PerformancePrediction,
			&g.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning generated content: %w", err)
		}
		items = append(items, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating generated content: %w", err)
	}
	return items, nil
}

// MarkUsed flags one generation as picked up by the user, or ErrNotFound.
func (s *ContentStore) MarkUsed(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, `UPDATE generated_content SET is_used = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error marking content used: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// GetGenerated retrieves one generation, or ErrNotFound.
func (s *ContentStore) GetGenerated(ctx context.Context, id int64) (*content.Generated, error) {
	query := `
		SELECT id, trend_id, content_type, generated_text, brand_voice, target_audience,
			quality_score, topic_cluster, is_used, performance_prediction, created_at
		FROM generated_content
		WHERE id = $1
	`

	var g content.Generated
	err := s.db.QueryRow(ctx, query, id).Scan(
		&g.ID,
		&g.TrendID,
		&g.ContentType,
		&g.GeneratedText,
		&g.BrandVoice,
		&g.TargetAudience,
		&g.QualityScore,
		&g.TopicCluster,
		&g.IsUsed,
		&g.PerformancePrediction,
		&g.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error querying generated content: %w", err)
	}
	return &g, nil
}

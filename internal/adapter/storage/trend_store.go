package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"signalscout/internal/domain/trend"
)

// trendColumns is the scan order shared by every trend query.
const trendColumns = `
	id, platform, content_id, title, description, url, author,
	score, comments_count, engagement_rate, virality_score,
	tags, sentiment, topic_cluster, created_at, fetched_at
`

// TrendStore implements Postgres storage for trend records.
type TrendStore struct {
	db *pgxpool.Pool
}

// NewTrendStore creates a new trend store.
func NewTrendStore(db *pgxpool.Pool) *TrendStore {
	return &TrendStore{db: db}
}

// InsertIfAbsent saves a record unless its (platform, content_id) pair is
// already stored. It returns false when the record was a duplicate; the
// existing row is never updated.
func (s *TrendStore) InsertIfAbsent(ctx context.Context, r *trend.Record) (bool, error) {
	query := `
		INSERT INTO trends (
			platform, content_id, title, description, url, author,
			score, comments_count, engagement_rate, virality_score,
			tags, sentiment, topic_cluster, created_at, fetched_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10,
			$11, $12, $13, $14, $15
		)
		ON CONFLICT (platform, content_id) DO NOTHING
		RETURNING id
	`

	if r.FetchedAt.IsZero() {
		r.FetchedAt = time.Now()
	}

	err := s.db.QueryRow(
		ctx,
		query,
		r.Platform,
		r.ContentID,
		r.Title,
		r.Description,
		r.URL,
		r.Author,
		r.Score,
		r.CommentsCount,
		r.EngagementRate,
		r.ViralityScore,
		r.Tags,
		r.Sentiment,
		r.TopicCluster,
		r.CreatedAt,
		r.FetchedAt,
	).Scan(&r.ID)

	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("error inserting trend: %w", err)
	}
	return true, nil
}

// GetByID retrieves one record, or ErrNotFound.
func (s *TrendStore) GetByID(ctx context.Context, id int64) (*trend.Record, error) {
	query := `SELECT ` + trendColumns + ` FROM trends WHERE id = $1`

	r, err := scanTrend(s.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error querying trend: %w", err)
	}
	return r, nil
}

// ListAll returns every record, highest virality first.
func (s *TrendStore) ListAll(ctx context.Context) ([]trend.Record, error) {
	query := `SELECT ` + trendColumns + ` FROM trends ORDER BY virality_score DESC, id ASC`
	return s.listTrends(ctx, query)
}

// ListByVirality returns records at or above minScore, optionally restricted
// to one platform, highest virality first.
func (s *TrendStore) ListByVirality(ctx context.Context, minScore float64, platform *trend.Platform) ([]trend.Record, error) {
	query := `SELECT ` + trendColumns + ` FROM trends WHERE virality_score >= $1`
	args := []interface{}{minScore}

	if platform != nil {
		query += ` AND platform = $2`
		args = append(args, *platform)
	}
	query += ` ORDER BY virality_score DESC, id ASC`

	return s.listTrends(ctx, query, args...)
}

// ListByTopic returns records in one topic cluster at or above minScore,
// highest virality first.
func (s *TrendStore) ListByTopic(ctx context.Context, topic string, minScore float64) ([]trend.Record, error) {
	query := `
		SELECT ` + trendColumns + `
		FROM trends
		WHERE LOWER(topic_cluster) = LOWER($1) AND virality_score >= $2
		ORDER BY virality_score DESC, id ASC
	`
	return s.listTrends(ctx, query, topic, minScore)
}

// ListSince returns records fetched at or after cutoff, highest virality first.
func (s *TrendStore) ListSince(ctx context.Context, cutoff time.Time) ([]trend.Record, error) {
	query := `
		SELECT ` + trendColumns + `
		FROM trends
		WHERE fetched_at >= $1
		ORDER BY virality_score DESC, id ASC
	`
	return s.listTrends(ctx, query, cutoff)
}

func (s *TrendStore) listTrends(ctx context.Context, query string, args ...interface{}) ([]trend.Record, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var records []trend.Record
	for rows.Next() {
		r, err := scanTrend(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning trend: %w", err)
		}
		records = append(records, *r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trends: %w", err)
	}
	return records, nil
}

func scanTrend(row pgx.Row) (*trend.Record, error) {
	var r trend.Record
	err := row.Scan(
		&r.ID,
		&r.Platform,
		&r.ContentID,
		&r.Title,
		&r.Description,
		&r.URL,
		&r.Author,
		&r.Score,
		&r.CommentsCount,
		&r.EngagementRate,
		&r.ViralityScore,
		&r.Tags,
		&r.Sentiment,
		&r.TopicCluster,
		&r.CreatedAt,
		&r.FetchedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

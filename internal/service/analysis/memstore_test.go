package analysis

import (
	"context"
	"strings"
	"time"

	"signalscout/internal/domain/pattern"
	"signalscout/internal/domain/trend"
)

// memTrends is an in-memory TrendReader for tests. It mirrors the store's
// ordering contract: virality descending, id ascending on ties.
type memTrends struct {
	records []trend.Record
	err     error
}

func (m *memTrends) sorted() []trend.Record {
	out := make([]trend.Record, len(m.records))
	copy(out, m.records)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0; j-- {
			a, b := out[j-1], out[j]
			if b.ViralityScore > a.ViralityScore || (b.ViralityScore == a.ViralityScore && b.ID < a.ID) {
				out[j-1], out[j] = b, a
			} else {
				break
			}
		}
	}
	return out
}

func (m *memTrends) ListAll(ctx context.Context) ([]trend.Record, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.sorted(), nil
}

func (m *memTrends) ListByVirality(ctx context.Context, minScore float64, platform *trend.Platform) ([]trend.Record, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []trend.Record
	for _, r := range m.sorted() {
		if r.ViralityScore < minScore {
			continue
		}
		if platform != nil && r.Platform != *platform {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (m *memTrends) ListByTopic(ctx context.Context, topic string, minScore float64) ([]trend.Record, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []trend.Record
	for _, r := range m.sorted() {
		if r.ViralityScore >= minScore && strings.EqualFold(r.TopicCluster, topic) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memTrends) ListSince(ctx context.Context, cutoff time.Time) ([]trend.Record, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []trend.Record
	for _, r := range m.sorted() {
		if !r.FetchedAt.Before(cutoff) {
			out = append(out, r)
		}
	}
	return out, nil
}

// memPatterns is an in-memory PatternStore recording appended batches.
type memPatterns struct {
	batches [][]pattern.Record
	err     error
}

func (m *memPatterns) AppendPatterns(ctx context.Context, records []pattern.Record) error {
	if m.err != nil {
		return m.err
	}
	m.batches = append(m.batches, records)
	return nil
}

func (m *memPatterns) total() int {
	n := 0
	for _, batch := range m.batches {
		n += len(batch)
	}
	return n
}

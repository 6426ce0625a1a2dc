package handlers

import (
	"context"
	"net/http"
	"strconv"

	"signalscout/internal/adapter/storage"
	"signalscout/internal/domain/pattern"
	"signalscout/internal/service/analysis"
)

// AnalyticsReporter computes time-windowed rollups.
type AnalyticsReporter interface {
	ViralityAnalytics(ctx context.Context, days int) (*analysis.Report, error)
}

// PatternRunner runs and persists the pattern analysis.
type PatternRunner interface {
	AnalyzeViralPatterns(ctx context.Context, minScore float64) (*pattern.Report, error)
}

// PatternLister serves stored pattern rows.
type PatternLister interface {
	ListRecent(ctx context.Context, limit int) ([]storage.StoredPattern, error)
}

// AnalyticsHandler handles analytics and pattern HTTP requests
type AnalyticsHandler struct {
	reporter AnalyticsReporter
	analyzer PatternRunner
	patterns PatternLister
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(reporter AnalyticsReporter, analyzer PatternRunner, patterns PatternLister) *AnalyticsHandler {
	return &AnalyticsHandler{
		reporter: reporter,
		analyzer: analyzer,
		patterns: patterns,
	}
}

// GetViralityAnalytics returns the time-windowed analytics rollup
func (h *AnalyticsHandler) GetViralityAnalytics(w http.ResponseWriter, r *http.Request) {
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))

	report, err := h.reporter.ViralityAnalytics(r.Context(), days)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to compute analytics")
		return
	}

	respondWithJSON(w, http.StatusOK, report)
}

// AnalyzePatterns runs the pattern analysis and persists the results
func (h *AnalyticsHandler) AnalyzePatterns(w http.ResponseWriter, r *http.Request) {
	minScore, _ := strconv.ParseFloat(r.URL.Query().Get("min_virality_score"), 64)

	report, err := h.analyzer.AnalyzeViralPatterns(r.Context(), minScore)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to analyze patterns")
		return
	}

	respondWithJSON(w, http.StatusOK, report)
}

// ListPatterns returns recently stored pattern records
func (h *AnalyticsHandler) ListPatterns(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	patterns, err := h.patterns.ListRecent(r.Context(), limit)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to list patterns")
		return
	}

	respondWithJSON(w, http.StatusOK, patterns)
}

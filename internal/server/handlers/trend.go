package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"signalscout/internal/adapter/storage"
	"signalscout/internal/domain/content"
	"signalscout/internal/domain/trend"
	"signalscout/internal/service/analysis"
	"signalscout/internal/service/ingest"
)

// TrendQuerier serves the read-side trend views.
type TrendQuerier interface {
	ListTrending(ctx context.Context, limit int, platform *trend.Platform) ([]trend.Record, error)
	Recommend(ctx context.Context, topic string, contentType content.Type) ([]analysis.Recommendation, error)
}

// TrendGetter looks up single trend records.
type TrendGetter interface {
	GetByID(ctx context.Context, id int64) (*trend.Record, error)
}

// Ingester queues platform fetch jobs on the event bus.
type Ingester interface {
	EnqueueJob(platform trend.Platform, job ingest.Job) error
}

// TrendHandler handles trend-related HTTP requests
type TrendHandler struct {
	query  TrendQuerier
	store  TrendGetter
	ingest Ingester
}

// NewTrendHandler creates a new trend handler
func NewTrendHandler(query TrendQuerier, store TrendGetter, ingestSvc Ingester) *TrendHandler {
	return &TrendHandler{
		query:  query,
		store:  store,
		ingest: ingestSvc,
	}
}

// GetTrending returns the stored trends, highest virality first
func (h *TrendHandler) GetTrending(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = 50
	}

	var platform *trend.Platform
	if p := r.URL.Query().Get("platform"); p != "" {
		value := trend.Platform(p)
		platform = &value
	}

	trends, err := h.query.ListTrending(r.Context(), limit, platform)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to get trends")
		return
	}

	respondWithJSON(w, http.StatusOK, trends)
}

// GetTrend returns a specific trend by ID
func (h *TrendHandler) GetTrend(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid trend ID")
		return
	}

	record, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Trend not found")
		} else {
			respondWithError(w, http.StatusInternalServerError, "Failed to get trend")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, record)
}

// GetRecommendations returns topic-matched trends for a content type
func (h *TrendHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	topic := r.URL.Query().Get("topic")
	if topic == "" {
		respondWithError(w, http.StatusBadRequest, "Missing topic parameter")
		return
	}

	contentType := content.Type(r.URL.Query().Get("content_type"))
	if contentType == "" {
		contentType = content.TypeTweet
	}
	if !contentType.Valid() {
		respondWithError(w, http.StatusBadRequest, "Invalid content type")
		return
	}

	recommendations, err := h.query.Recommend(r.Context(), topic, contentType)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to get recommendations")
		return
	}

	respondWithJSON(w, http.StatusOK, recommendations)
}

type ingestRequest struct {
	Target string `json:"target"`
	Limit  int    `json:"limit"`
}

func decodeIngestRequest(r *http.Request) ingestRequest {
	var req ingestRequest
	// An empty body falls back to the query parameters.
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.Target == "" {
		req.Target = r.URL.Query().Get("target")
	}
	if req.Limit <= 0 {
		req.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	}
	return req
}

func (h *TrendHandler) enqueue(w http.ResponseWriter, platform trend.Platform, job ingest.Job) {
	if err := h.ingest.EnqueueJob(platform, job); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to queue ingestion job")
		return
	}
	respondWithJSON(w, http.StatusAccepted, map[string]interface{}{
		"status":   "queued",
		"platform": platform,
		"target":   job.Target,
	})
}

// IngestReddit queues a reddit fetch job
func (h *TrendHandler) IngestReddit(w http.ResponseWriter, r *http.Request) {
	req := decodeIngestRequest(r)
	if req.Target == "" {
		respondWithError(w, http.StatusBadRequest, "Missing subreddit target")
		return
	}
	h.enqueue(w, trend.PlatformReddit, ingest.Job{Target: req.Target, Limit: req.Limit})
}

// IngestYouTube queues a youtube fetch job. With a target it runs a keyword
// search, without one it pulls the trending chart for the region.
func (h *TrendHandler) IngestYouTube(w http.ResponseWriter, r *http.Request) {
	req := decodeIngestRequest(r)

	job := ingest.Job{Target: req.Target, Limit: req.Limit, Search: true}
	if req.Target == "" {
		job = ingest.Job{Target: r.URL.Query().Get("region"), Limit: req.Limit}
	}
	h.enqueue(w, trend.PlatformYouTube, job)
}

// IngestTwitter queues a twitter search fetch job
func (h *TrendHandler) IngestTwitter(w http.ResponseWriter, r *http.Request) {
	req := decodeIngestRequest(r)
	if req.Target == "" {
		respondWithError(w, http.StatusBadRequest, "Missing search query target")
		return
	}
	h.enqueue(w, trend.PlatformTwitter, ingest.Job{Target: req.Target, Limit: req.Limit})
}

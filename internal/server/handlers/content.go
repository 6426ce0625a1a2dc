package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"signalscout/internal/adapter/storage"
	"signalscout/internal/service/generation"
)

// ContentGenerator turns trends into drafts and serves the vault.
type ContentGenerator interface {
	Generate(ctx context.Context, req generation.Request) (*generation.Result, error)
	Vault(ctx context.Context, topic string, limit int) ([]generation.VaultItem, error)
	MarkUsed(ctx context.Context, id int64) error
}

// VoiceTrainer builds brand voice profiles.
type VoiceTrainer interface {
	Train(ctx context.Context, brandName, tone string, samples []string) (*generation.TrainingResult, error)
}

// ContentHandler handles content generation HTTP requests
type ContentHandler struct {
	generator ContentGenerator
	trainer   VoiceTrainer
}

// NewContentHandler creates a new content handler
func NewContentHandler(generator ContentGenerator, trainer VoiceTrainer) *ContentHandler {
	return &ContentHandler{
		generator: generator,
		trainer:   trainer,
	}
}

// Generate creates one content draft from a trend
func (h *ContentHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if h.generator == nil {
		respondWithError(w, http.StatusServiceUnavailable, "Content generation is not configured")
		return
	}

	var req generation.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.generator.Generate(r.Context(), req)
	if err != nil {
		if errors.Is(err, generation.ErrTrendNotFound) {
			respondWithError(w, http.StatusNotFound, "Trend not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to generate content")
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// Vault lists stored generations, best predicted performance first
func (h *ContentHandler) Vault(w http.ResponseWriter, r *http.Request) {
	if h.generator == nil {
		respondWithError(w, http.StatusServiceUnavailable, "Content generation is not configured")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	topic := r.URL.Query().Get("topic")

	vault, err := h.generator.Vault(r.Context(), topic, limit)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to list content vault")
		return
	}

	respondWithJSON(w, http.StatusOK, vault)
}

// MarkUsed flags a stored generation as used
func (h *ContentHandler) MarkUsed(w http.ResponseWriter, r *http.Request) {
	if h.generator == nil {
		respondWithError(w, http.StatusServiceUnavailable, "Content generation is not configured")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid content ID")
		return
	}

	if err := h.generator.MarkUsed(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Content not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to mark content used")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "used"})
}

type trainVoiceRequest struct {
	BrandName     string   `json:"brand_name"`
	Tone          string   `json:"tone"`
	SampleContent []string `json:"sample_content"`
}

// TrainVoice builds a brand voice profile from content samples
func (h *ContentHandler) TrainVoice(w http.ResponseWriter, r *http.Request) {
	if h.trainer == nil {
		respondWithError(w, http.StatusServiceUnavailable, "Content generation is not configured")
		return
	}

	var req trainVoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.BrandName == "" || len(req.SampleContent) == 0 {
		respondWithError(w, http.StatusBadRequest, "brand_name and sample_content are required")
		return
	}

	result, err := h.trainer.Train(r.Context(), req.BrandName, req.Tone, req.SampleContent)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to train brand voice")
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/hanlingo/hanlingo/content"
	"github.com/hanlingo/hanlingo/embedder"
	"github.com/hanlingo/hanlingo/generator"
	"github.com/hanlingo/hanlingo/index"
	"github.com/hanlingo/hanlingo/internal/service/query"
	"github.com/hanlingo/hanlingo/internal/service/reindex"
	"github.com/hanlingo/hanlingo/ledger"
)

const (
	defaultSimilarLimit         = 5
	defaultSimilarMinSimilarity = 0.5
	defaultHistoryLimit         = 20
)

type Handler struct {
	query    *query.Service
	reindex  *reindex.Service
	index    index.Index
	ledger   ledger.Ledger
	embedder embedder.Embedder
	logger   *zap.Logger
}

func (h *Handler) Routes() *mux.Router {
	r := mux.NewRouter()

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/query", h.handleQuery).Methods(http.MethodPost)
	api.HandleFunc("/search", h.handleSearch).Methods(http.MethodPost)
	api.HandleFunc("/similar/{sourceType}/{sourceId}", h.handleSimilar).Methods(http.MethodGet)
	api.HandleFunc("/history", h.handleHistory).Methods(http.MethodGet)
	api.HandleFunc("/analytics", h.handleAnalytics).Methods(http.MethodGet)
	api.HandleFunc("/stats", h.handleStats).Methods(http.MethodGet)
	api.HandleFunc("/reindex", h.handleReindex).Methods(http.MethodPost)
	api.HandleFunc("/embedding", h.handleEmbedding).Methods(http.MethodPost)
	api.HandleFunc("/health", h.handleHealth).Methods(http.MethodGet)

	return r
}

func (h *Handler) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req query.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rsp, err := h.query.Answer(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, rsp)
}

type searchRequest struct {
	Text          string   `json:"text"`
	SourceTypes   []string `json:"source_types,omitempty"`
	MinSimilarity float64  `json:"min_similarity"`
	Limit         int      `json:"limit"`
	HskLevel      int      `json:"hsk_level,omitempty"`
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if len(req.Text) == 0 {
		h.writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	var sourceTypes []content.SourceType
	for _, raw := range req.SourceTypes {
		sourceType, ok := content.ParseSourceType(raw)
		if !ok {
			h.writeError(w, http.StatusBadRequest, "unknown source type: "+raw)
			return
		}
		sourceTypes = append(sourceTypes, sourceType)
	}

	opts := index.SearchOptions{
		SourceTypes:   sourceTypes,
		MinSimilarity: req.MinSimilarity,
		Limit:         req.Limit,
		HskLevel:      req.HskLevel,
	}
	// reject bad parameters before spending a provider call
	if err := opts.Validate(); err != nil {
		h.writeServiceError(w, err)
		return
	}

	vec, err := h.embedder.Embed(r.Context(), req.Text)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	results, err := h.index.Search(r.Context(), vec, opts)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

func (h *Handler) handleSimilar(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	sourceType, ok := content.ParseSourceType(vars["sourceType"])
	if !ok {
		h.writeError(w, http.StatusBadRequest, "unknown source type: "+vars["sourceType"])
		return
	}

	minSimilarity, err := queryFloat(r, "min_similarity", defaultSimilarMinSimilarity)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	limit, err := queryInt(r, "limit", defaultSimilarLimit)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	opts := index.SearchOptions{
		MinSimilarity: minSimilarity,
		Limit:         limit,
	}
	if err := opts.Validate(); err != nil {
		h.writeServiceError(w, err)
		return
	}

	results, err := h.index.FindSimilarTo(r.Context(), sourceType, vars["sourceId"], opts)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", defaultHistoryLimit)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	records, err := h.ledger.History(r.Context(), r.URL.Query().Get("user_id"), limit)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"records": records})
}

func (h *Handler) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := h.ledger.Analytics(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, analytics)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.index.Stats(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) handleReindex(w http.ResponseWriter, r *http.Request) {
	if err := h.reindex.Trigger(r.Context()); err != nil {
		h.writeServiceError(w, err)
		return
	}

	// the rebuild continues detached
	h.writeJSON(w, http.StatusAccepted, map[string]string{"status": "processing"})
}

type embeddingRequest struct {
	Text string `json:"text"`
}

func (h *Handler) handleEmbedding(w http.ResponseWriter, r *http.Request) {
	var req embeddingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if len(req.Text) == 0 {
		h.writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	vec, err := h.embedder.Embed(r.Context(), req.Text)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"vector":    vec,
		"dimension": len(vec),
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !h.embedder.Health(r.Context()) {
		h.writeJSON(w, http.StatusServiceUnavailable, map[string]any{"healthy": false})
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"healthy": true})
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, index.ErrValidation):
		h.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, embedder.ErrProviderUnavailable):
		h.writeError(w, http.StatusServiceUnavailable, "embedding provider unavailable")
	case errors.Is(err, generator.ErrGenerationFailed):
		h.writeError(w, http.StatusBadGateway, "generation failed")
	case errors.Is(err, reindex.ErrInProgress):
		h.writeError(w, http.StatusConflict, err.Error())
	default:
		h.logger.Error("request failed", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := r.URL.Query().Get(key)
	if len(raw) == 0 {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", index.ErrValidation, key)
	}
	return n, nil
}

func queryFloat(r *http.Request, key string, fallback float64) (float64, error) {
	raw := r.URL.Query().Get(key)
	if len(raw) == 0 {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", index.ErrValidation, key)
	}
	return f, nil
}

func NewHandler(
	querySvc *query.Service,
	reindexSvc *reindex.Service,
	idx index.Index,
	led ledger.Ledger,
	emb embedder.Embedder,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		query:    querySvc,
		reindex:  reindexSvc,
		index:    idx,
		ledger:   led,
		embedder: emb,
		logger:   logger,
	}
}

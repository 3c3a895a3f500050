package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/chaitu-2303/Q-A/internal/cache"
	"github.com/chaitu-2303/Q-A/internal/handler/views"
	"github.com/chaitu-2303/Q-A/internal/i18n"
	"github.com/chaitu-2303/Q-A/internal/level"
	"github.com/chaitu-2303/Q-A/internal/metrics"
	"github.com/chaitu-2303/Q-A/internal/model"
	"github.com/chaitu-2303/Q-A/internal/ratelimit"
	"github.com/chaitu-2303/Q-A/internal/store"
)

const (
	defaultNumQuestions    = 5
	defaultMaxNumQuestions = 100
	maxBodyBytes           = 1 << 20
)

// Generator produces question pairs for a paragraph.
type Generator interface {
	Generate(paragraph string, numQuestions int, difficulty string) ([]model.ScoredQA, error)
}

// Handler holds shared dependencies for HTTP handlers. store, cache and
// limiter are optional.
type Handler struct {
	gen     Generator
	store   *store.Store
	cache   cache.Cache
	limiter *ratelimit.Limiter
	config  model.ServiceConfig
}

// New creates a new Handler.
func New(gen Generator, s *store.Store, c cache.Cache, l *ratelimit.Limiter, cfg model.ServiceConfig) *Handler {
	if cfg.DefaultNumQuestions <= 0 {
		cfg.DefaultNumQuestions = defaultNumQuestions
	}
	if cfg.MaxNumQuestions <= 0 {
		cfg.MaxNumQuestions = defaultMaxNumQuestions
	}
	return &Handler{gen: gen, store: s, cache: c, limiter: l, config: cfg}
}

// Routes registers all HTTP routes.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.handleIndex)
	r.Get("/api/health", h.handleHealth)

	var limit []func(http.Handler) http.Handler
	if h.limiter != nil {
		limit = append(limit, h.limiter.Middleware(h.rateLimited))
	}
	r.With(limit...).Post("/api/generate-qa", h.handleGenerate)

	r.Route("/api/history", func(r chi.Router) {
		r.Use(h.requireAdmin)
		r.Get("/", h.handleHistoryList)
		r.Get("/{id}", h.handleHistoryGet)
		r.Delete("/{id}", h.handleHistoryDelete)
	})

	r.Handle("/metrics", metrics.Handler())
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := views.IndexPage(h.config.DefaultNumQuestions).Render(r.Context(), w); err != nil {
		slog.Error("render error", "error", err)
	}
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.HealthResponse{Status: "healthy", Service: model.ServiceName})
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req model.GenerateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		metrics.GenerateRequests.WithLabelValues("bad_request").Inc()
		writeError(w, r, http.StatusBadRequest, "InvalidRequestBody")
		return
	}
	if strings.TrimSpace(req.Paragraph) == "" {
		metrics.GenerateRequests.WithLabelValues("bad_request").Inc()
		writeError(w, r, http.StatusBadRequest, "ParagraphRequired")
		return
	}
	difficulty, ok := model.ParseDifficulty(req.Difficulty)
	if !ok {
		metrics.GenerateRequests.WithLabelValues("bad_request").Inc()
		writeError(w, r, http.StatusBadRequest, "InvalidDifficulty")
		return
	}
	n := h.config.DefaultNumQuestions
	if req.NumQuestions != nil {
		n = *req.NumQuestions
	}
	if n < 0 {
		metrics.GenerateRequests.WithLabelValues("bad_request").Inc()
		writeError(w, r, http.StatusBadRequest, "InvalidNumQuestions")
		return
	}
	if n > h.config.MaxNumQuestions {
		metrics.GenerateRequests.WithLabelValues("bad_request").Inc()
		writeErrorData(w, r, http.StatusBadRequest, "TooManyQuestions", map[string]any{"Max": h.config.MaxNumQuestions})
		return
	}

	key := cache.Key(req.Paragraph, n, difficulty)
	if h.cache != nil {
		if body, found := h.cache.Get(key); found {
			metrics.CacheHits.Inc()
			metrics.GenerateRequests.WithLabelValues("ok").Inc()
			w.Header().Set("X-Cache", "HIT")
			writeRaw(w, http.StatusOK, body)
			return
		}
		metrics.CacheMisses.Inc()
	}

	start := time.Now()
	pairs, err := h.gen.Generate(req.Paragraph, n, difficulty)
	metrics.GenerateDuration.WithLabelValues(difficulty).Observe(time.Since(start).Seconds())
	if err != nil {
		slog.Error("generate qa", "error", err, "request_id", middleware.GetReqID(r.Context()))
		metrics.GenerateRequests.WithLabelValues("error").Inc()
		writeError(w, r, http.StatusInternalServerError, "GenerationFailed")
		return
	}

	resp := model.GenerateResponse{
		Success:        true,
		QAPairs:        pairs,
		TotalQuestions: len(pairs),
		Statistics:     level.Statistics(pairs),
	}
	body, err := json.Marshal(resp)
	if err != nil {
		slog.Error("encode response", "error", err)
		metrics.GenerateRequests.WithLabelValues("error").Inc()
		writeError(w, r, http.StatusInternalServerError, "GenerationFailed")
		return
	}

	id := uuid.NewString()
	if h.store != nil {
		g := &model.Generation{
			ID:           id,
			Paragraph:    req.Paragraph,
			NumQuestions: n,
			Difficulty:   difficulty,
			QAPairs:      pairs,
		}
		if err := h.store.SaveGeneration(g); err != nil {
			slog.Error("save generation", "error", err, "id", id)
		}
	}
	if h.cache != nil {
		if err := h.cache.Set(key, body, h.config.CacheTTL); err != nil {
			slog.Warn("cache response", "error", err)
		}
	}

	metrics.GenerateRequests.WithLabelValues("ok").Inc()
	metrics.ObservePairs(pairs)
	slog.Info("generated qa pairs",
		"id", id,
		"count", len(pairs),
		"requested", n,
		"difficulty", difficulty,
	)

	w.Header().Set("X-Generation-ID", id)
	w.Header().Set("X-Cache", "MISS")
	writeRaw(w, http.StatusOK, body)
}

func (h *Handler) rateLimited(w http.ResponseWriter, r *http.Request) {
	metrics.RateLimited.Inc()
	slog.Warn("rate limited", "client", ratelimit.ClientKey(r))
	writeError(w, r, http.StatusTooManyRequests, "RateLimited")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		slog.Error("encode json", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	writeRaw(w, status, body)
}

func writeRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		slog.Debug("write response", "error", err)
	}
}

// writeError sends a localized ErrorResponse.
func writeError(w http.ResponseWriter, r *http.Request, status int, msgID string) {
	writeJSON(w, status, model.ErrorResponse{Error: i18n.T(r.Context(), msgID)})
}

func writeErrorData(w http.ResponseWriter, r *http.Request, status int, msgID string, data map[string]any) {
	writeJSON(w, status, model.ErrorResponse{Error: i18n.Td(r.Context(), msgID, data)})
}

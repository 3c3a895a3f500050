package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/chaitu-2303/Q-A/internal/level"
	"github.com/chaitu-2303/Q-A/internal/model"
	"github.com/chaitu-2303/Q-A/internal/store"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

// SetAdminToken stores a bcrypt hash of token as the admin credential.
// An empty token removes the credential and disables the history API.
func SetAdminToken(s *store.Store, token string) error {
	if token == "" {
		return s.DeleteMetadata(store.KeyAdminTokenHash)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.SetMetadata(store.KeyAdminTokenHash, string(hash))
}

// requireAdmin checks the bearer token against the stored admin hash.
func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.store == nil {
			writeError(w, r, http.StatusNotFound, "HistoryDisabled")
			return
		}
		hash, err := h.store.GetMetadata(store.KeyAdminTokenHash)
		if err != nil {
			slog.Error("failed to read admin token", "error", err)
			writeError(w, r, http.StatusInternalServerError, "InternalError")
			return
		}
		if hash == "" {
			writeError(w, r, http.StatusForbidden, "AdminDisabled")
			return
		}

		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" || bcrypt.CompareHashAndPassword([]byte(hash), []byte(token)) != nil {
			w.Header().Set("WWW-Authenticate", `Bearer realm="teluguqa"`)
			writeError(w, r, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) handleHistoryList(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", defaultHistoryLimit)
	if limit <= 0 || limit > maxHistoryLimit {
		limit = defaultHistoryLimit
	}
	offset := max(queryInt(r, "offset", 0), 0)

	total, err := h.store.GenerationCount()
	if err != nil {
		slog.Error("failed to count generations", "error", err)
		writeError(w, r, http.StatusInternalServerError, "InternalError")
		return
	}
	gens, err := h.store.ListGenerations(limit, offset)
	if err != nil {
		slog.Error("failed to list generations", "error", err)
		writeError(w, r, http.StatusInternalServerError, "InternalError")
		return
	}

	writeJSON(w, http.StatusOK, model.HistoryPage{
		Total:       total,
		Limit:       limit,
		Offset:      offset,
		Generations: gens,
	})
}

func (h *Handler) handleHistoryGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	g, err := h.store.GetGeneration(id)
	if err != nil {
		slog.Error("failed to get generation", "id", id, "error", err)
		writeError(w, r, http.StatusInternalServerError, "InternalError")
		return
	}
	if g == nil {
		writeErrorData(w, r, http.StatusNotFound, "NotFound", map[string]any{"ID": id})
		return
	}
	writeJSON(w, http.StatusOK, model.GenerationExport{
		Generation: *g,
		Statistics: level.Statistics(g.QAPairs),
	})
}

func (h *Handler) handleHistoryDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	found, err := h.store.DeleteGeneration(id)
	if err != nil {
		slog.Error("failed to delete generation", "id", id, "error", err)
		writeError(w, r, http.StatusInternalServerError, "InternalError")
		return
	}
	if !found {
		writeErrorData(w, r, http.StatusNotFound, "NotFound", map[string]any{"ID": id})
		return
	}
	slog.Info("generation deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

func queryInt(r *http.Request, name string, def int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

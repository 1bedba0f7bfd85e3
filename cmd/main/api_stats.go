package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/CTAG07/speakerid/pkg/corpus"
)

// StatsAPI holds the dependencies for the statistics handlers.
type StatsAPI struct {
	store  *corpus.Store
	cm     *ConfigManager
	logger *slog.Logger
}

func NewStatsAPI(store *corpus.Store, cm *ConfigManager, logger *slog.Logger) *StatsAPI {
	return &StatsAPI{
		store:  store,
		cm:     cm,
		logger: logger,
	}
}

func (s *StatsAPI) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/stats/summary", s.handleSummary)
	mux.HandleFunc("/api/stats/history", s.handleHistory)
}

// handleSummary returns speaker and identification counts.
func (s *StatsAPI) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	if !requireScope(w, r, scopeStatsRead) {
		return
	}
	stats, err := s.store.GetStats(r.Context())
	if err != nil {
		s.logger.Error("Failed to get stats summary", "error", err)
		respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve stats: %v", err))
		return
	}
	respondWithJSON(w, http.StatusOK, stats)
}

// handleHistory returns the most recent identifications, newest first.
func (s *StatsAPI) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	if !requireScope(w, r, scopeStatsRead) {
		return
	}
	limit := s.cm.Get().Server.HistoryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			respondWithError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	history, err := s.store.History(r.Context(), limit)
	if err != nil {
		s.logger.Error("Failed to get history", "error", err)
		respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve history: %v", err))
		return
	}
	respondWithJSON(w, http.StatusOK, history)
}

package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/CTAG07/speakerid/pkg/corpus"
)

// SpeakerAPI holds the dependencies for the speaker handlers.
type SpeakerAPI struct {
	store  *corpus.Store
	cm     *ConfigManager
	logger *slog.Logger
}

// NewSpeakerAPI creates a new instance of the SpeakerAPI.
func NewSpeakerAPI(store *corpus.Store, cm *ConfigManager, logger *slog.Logger) *SpeakerAPI {
	return &SpeakerAPI{
		store:  store,
		cm:     cm,
		logger: logger,
	}
}

// RegisterRoutes sets up the routing for all /api/speakers endpoints.
func (a *SpeakerAPI) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/speakers", a.handleListAndCreateSpeakers)
	mux.HandleFunc("/api/speakers/", a.handleSpeakerByName)
}

type CreateSpeakerRequest struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// handleListAndCreateSpeakers handles GET for listing and POST for storing speakers.
func (a *SpeakerAPI) handleListAndCreateSpeakers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		if !requireScope(w, r, scopeSpeakersRead) {
			return
		}
		speakers, err := a.store.ListSpeakers(r.Context())
		if err != nil {
			a.logger.Error("Failed to list speakers", "error", err)
			respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve speakers: %v", err))
			return
		}
		respondWithJSON(w, http.StatusOK, speakers)

	case http.MethodPost:
		if !requireScope(w, r, scopeSpeakersWrite) {
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, a.cm.Get().Server.MaxBodyBytes)
		var req CreateSpeakerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid JSON request body")
			return
		}
		if req.Name == "" || strings.Contains(req.Name, "/") {
			respondWithError(w, http.StatusBadRequest, "A speaker name without '/' is required")
			return
		}

		id, err := a.store.PutSpeaker(r.Context(), req.Name, req.Text)
		if err != nil {
			a.logger.Error("Failed to store speaker", "name", req.Name, "error", err)
			respondWithError(w, statusForError(err), fmt.Sprintf("Failed to store speaker: %v", err))
			return
		}
		respondWithJSON(w, http.StatusCreated, map[string]interface{}{"id": id, "name": req.Name})
	default:
		w.Header().Set("Allow", "GET, POST")
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// handleSpeakerByName returns or deletes a single speaker.
func (a *SpeakerAPI) handleSpeakerByName(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/api/speakers/")
	if name == "" || strings.Contains(name, "/") {
		respondWithError(w, http.StatusBadRequest, "Speaker name not specified")
		return
	}

	switch r.Method {
	case http.MethodGet:
		if !requireScope(w, r, scopeSpeakersRead) {
			return
		}
		sp, err := a.store.GetSpeaker(r.Context(), name)
		if err != nil {
			respondWithError(w, statusForError(err), fmt.Sprintf("Failed to get speaker: %v", err))
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"id":         sp.Id,
			"name":       sp.Name,
			"text":       sp.Text,
			"created_at": sp.CreatedAt,
		})
	case http.MethodDelete:
		if !requireScope(w, r, scopeSpeakersWrite) {
			return
		}
		if err := a.store.RemoveSpeaker(r.Context(), name); err != nil {
			if statusForError(err) == http.StatusInternalServerError {
				a.logger.Error("Failed to remove speaker", "name", name, "error", err)
			}
			respondWithError(w, statusForError(err), fmt.Sprintf("Failed to remove speaker: %v", err))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		w.Header().Set("Allow", "GET, DELETE")
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

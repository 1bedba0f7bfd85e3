package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"unicode/utf8"

	"github.com/CTAG07/speakerid/pkg/corpus"
	"github.com/CTAG07/speakerid/pkg/speaker"
)

// IdentifyAPI runs identifications against stored speakers.
type IdentifyAPI struct {
	store      *corpus.Store
	identifier *speaker.Identifier
	cm         *ConfigManager
	logger     *slog.Logger
}

// NewIdentifyAPI creates a new instance of the IdentifyAPI.
func NewIdentifyAPI(store *corpus.Store, identifier *speaker.Identifier, cm *ConfigManager, logger *slog.Logger) *IdentifyAPI {
	return &IdentifyAPI{
		store:      store,
		identifier: identifier,
		cm:         cm,
		logger:     logger,
	}
}

// RegisterRoutes sets up the routing for /api/identify.
func (a *IdentifyAPI) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/identify", a.handleIdentify)
}

// IdentifyRequest names the two stored speakers to compare. Order falls back to
// the configured default when omitted and may not exceed the configured max_order.
type IdentifyRequest struct {
	SpeakerA string `json:"speaker_a"`
	SpeakerB string `json:"speaker_b"`
	Query    string `json:"query"`
	Order    *int   `json:"order"`
}

// IdentifyResponse is the result of an identification along with its history id.
type IdentifyResponse struct {
	speaker.Result
	Id       int    `json:"id"`
	SpeakerA string `json:"speaker_a"`
	SpeakerB string `json:"speaker_b"`
	Order    int    `json:"order"`
}

func (a *IdentifyAPI) handleIdentify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	if !requireScope(w, r, scopeIdentify) {
		return
	}
	cfg := a.cm.Get()

	r.Body = http.MaxBytesReader(w, r.Body, cfg.Server.MaxBodyBytes)
	var req IdentifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, statusForDecode(err), "Invalid JSON request body")
		return
	}
	if req.SpeakerA == "" || req.SpeakerB == "" {
		respondWithError(w, http.StatusBadRequest, "speaker_a and speaker_b are required")
		return
	}
	order := cfg.Server.DefaultOrder
	if req.Order != nil {
		order = *req.Order
	}
	if order > cfg.Server.MaxOrder {
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("order %d exceeds max_order %d", order, cfg.Server.MaxOrder))
		return
	}

	spA, err := a.store.GetSpeaker(r.Context(), req.SpeakerA)
	if err != nil {
		respondWithError(w, statusForError(err), err.Error())
		return
	}
	spB, err := a.store.GetSpeaker(r.Context(), req.SpeakerB)
	if err != nil {
		respondWithError(w, statusForError(err), err.Error())
		return
	}

	res, err := a.identifier.Identify(spA.Text, spB.Text, req.Query, order)
	if err != nil {
		respondWithError(w, statusForError(err), fmt.Sprintf("Identification failed: %v", err))
		return
	}

	rec, err := a.store.RecordIdentification(r.Context(), corpus.Identification{
		SpeakerA:    req.SpeakerA,
		SpeakerB:    req.SpeakerB,
		Order:       order,
		QueryLength: utf8.RuneCountInString(req.Query),
		ScoreA:      res.ScoreA,
		ScoreB:      res.ScoreB,
		Label:       res.Label,
	})
	if err != nil {
		// The result is still valid without a history entry.
		a.logger.Error("Failed to record identification", "error", err)
	}

	respondWithJSON(w, http.StatusOK, IdentifyResponse{
		Result:   res,
		Id:       rec.Id,
		SpeakerA: req.SpeakerA,
		SpeakerB: req.SpeakerB,
		Order:    order,
	})
}

func statusForDecode(err error) int {
	if code := statusForError(err); code == http.StatusRequestEntityTooLarge {
		return code
	}
	return http.StatusBadRequest
}

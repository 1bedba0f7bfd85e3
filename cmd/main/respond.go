package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/CTAG07/speakerid/pkg/corpus"
	"github.com/CTAG07/speakerid/pkg/markov"
	"github.com/CTAG07/speakerid/pkg/speaker"
)

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// statusForError maps domain errors to HTTP status codes.
func statusForError(err error) int {
	var maxBytes *http.MaxBytesError
	switch {
	case errors.Is(err, corpus.ErrSpeakerNotFound):
		return http.StatusNotFound
	case errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, speaker.ErrEmptyQuery),
		errors.Is(err, markov.ErrInvalidOrder),
		errors.Is(err, markov.ErrEmptyTrainingText),
		errors.Is(err, corpus.ErrEmptyText),
		errors.Is(err, corpus.ErrEmptyName):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

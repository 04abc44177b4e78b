package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"langlab/internal/content"
	"langlab/internal/service"
	"langlab/internal/speech"
)

// respondJSON writes v as a JSON response
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// respondError logs the underlying error and sends a JSON error message the
// page can show to the user
func respondError(w http.ResponseWriter, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		log.Printf("%s: %v", logMsg, err)
	}

	respondJSON(w, status, map[string]string{"error": userMsg})
}

// respondSpeechError maps the speech and validation error classes onto user
// messages. Every one of these is recoverable: session state is untouched
// and the user simply retries.
func respondSpeechError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyAudio):
		respondError(w, http.StatusBadRequest, "No audio was recorded. Try again.", "", nil)
	case errors.Is(err, speech.ErrNoSpeech):
		respondError(w, http.StatusUnprocessableEntity, "No speech was detected in the recording. Try again.", "", nil)
	case errors.Is(err, speech.ErrUnauthorized):
		respondError(w, http.StatusBadGateway, "The speech service rejected our credentials.", "Speech auth failure", err)
	case errors.Is(err, speech.ErrQuota):
		respondError(w, http.StatusBadGateway, "The speech service is over its quota. Try again later.", "Speech quota exceeded", err)
	case errors.Is(err, content.ErrNotFound):
		// only reachable if the page sends a key it never enumerated
		respondError(w, http.StatusInternalServerError, "Unknown lesson.", "Lesson lookup failed", err)
	default:
		respondError(w, http.StatusBadGateway, "The speech service is unavailable. Try again.", "Speech service error", err)
	}
}

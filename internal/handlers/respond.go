package handlers

import (
	"encoding/json"
	stderrors "errors"
	"log"
	"net/http"

	"omoide-api/internal/errors"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[Handler] Failed to encode response: %v", err)
	}
}

// writeError maps service errors onto HTTP status codes and a uniform
// {"error": "..."} body.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case stderrors.Is(err, errors.ErrInvalidInput):
		status = http.StatusBadRequest
	case stderrors.Is(err, errors.ErrNotFound):
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		log.Printf("[Handler] Internal error: %v", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

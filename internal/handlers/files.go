package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"omoide-api/internal/errors"
)

func (h *Handler) ServeFile(w http.ResponseWriter, r *http.Request) {
	filename := r.PathValue("filename")
	if filename == "" || strings.Contains(filename, "..") ||
		strings.Contains(filename, "/") || strings.Contains(filename, "\\") {
		writeError(w, fmt.Errorf("%w: invalid filename", errors.ErrInvalidInput))
		return
	}

	data, contentType, err := h.media.ReadFile(r.Context(), filename)
	if err != nil {
		writeError(w, err)
		return
	}

	// Blob names are random uuids and never reused, safe to cache forever.
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "public, max-age=31536000")
	w.Write(data)
}

package handlers

import (
	"fmt"
	"net/http"
	"time"

	"omoide-api/internal/errors"
	"omoide-api/internal/models"
)

// parseDateParam accepts RFC 3339 timestamps or bare dates (2006-01-02).
func parseDateParam(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: invalid date %q", errors.ErrInvalidInput, value)
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	query := models.SearchQuery{
		Filename: params.Get("filename"),
		MimeType: params.Get("mimeType"),
		Tags:     params["tags"],
	}

	if raw := params.Get("dateFrom"); raw != "" {
		from, err := parseDateParam(raw)
		if err != nil {
			writeError(w, err)
			return
		}
		query.DateFrom = &from
	}
	if raw := params.Get("dateTo"); raw != "" {
		to, err := parseDateParam(raw)
		if err != nil {
			writeError(w, err)
			return
		}
		query.DateTo = &to
	}

	results, err := h.search.Search(query)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"results": results,
		"count":   len(results),
	})
}

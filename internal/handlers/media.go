package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"omoide-api/internal/errors"
)

func (h *Handler) ListMedia(w http.ResponseWriter, r *http.Request) {
	items, err := h.media.List()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) GetMedia(w http.ResponseWriter, r *http.Request) {
	item, err := h.media.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.media.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "id": id})
}

func (h *Handler) BatchDeleteMedia(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Ids []string `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: invalid JSON body", errors.ErrInvalidInput))
		return
	}
	if len(req.Ids) == 0 {
		writeError(w, fmt.Errorf("%w: ids are required", errors.ErrInvalidInput))
		return
	}

	writeJSON(w, http.StatusOK, h.media.BatchDelete(r.Context(), req.Ids))
}

func (h *Handler) UpdateTags(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Tags []string `json:"tags"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: invalid JSON body", errors.ErrInvalidInput))
		return
	}
	if req.Tags == nil {
		writeError(w, fmt.Errorf("%w: tags field is required", errors.ErrInvalidInput))
		return
	}

	item, err := h.media.UpdateTags(r.PathValue("id"), req.Tags)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) SuggestTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.media.SuggestTags(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"tags": tags})
}

func (h *Handler) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.media.AllTags()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"tags": tags})
}

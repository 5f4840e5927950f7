package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"omoide-api/internal/errors"
	"omoide-api/internal/models"
)

func (h *Handler) ListAlbums(w http.ResponseWriter, r *http.Request) {
	albums, err := h.albums.List()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, albums)
}

func (h *Handler) CreateAlbum(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: invalid JSON body", errors.ErrInvalidInput))
		return
	}

	album, err := h.albums.Create(req.Name, req.Description)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, album)
}

func (h *Handler) GetAlbum(w http.ResponseWriter, r *http.Request) {
	album, err := h.albums.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, album)
}

func (h *Handler) UpdateAlbum(w http.ResponseWriter, r *http.Request) {
	var patch models.AlbumPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, fmt.Errorf("%w: invalid JSON body", errors.ErrInvalidInput))
		return
	}

	album, err := h.albums.Update(r.PathValue("id"), patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, album)
}

func (h *Handler) DeleteAlbum(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.albums.Delete(id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "id": id})
}

func (h *Handler) AddAlbumMedia(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MediaIds []string `json:"mediaIds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: invalid JSON body", errors.ErrInvalidInput))
		return
	}

	album, added, err := h.albums.AddMedia(r.PathValue("id"), req.MediaIds)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"addedCount": added,
		"album":      album,
	})
}

func (h *Handler) RemoveAlbumMedia(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MediaIds []string `json:"mediaIds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: invalid JSON body", errors.ErrInvalidInput))
		return
	}

	album, removed, err := h.albums.RemoveMedia(r.PathValue("id"), req.MediaIds)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"removedCount": removed,
		"album":        album,
	})
}

package router

import (
	"net/http"

	"omoide-api/internal/handlers"
)

// Setup configures and returns the HTTP router with all application routes.
func Setup(h *handlers.Handler) http.Handler {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", h.Health)

	// Media endpoints
	mux.HandleFunc("GET /api/media", h.ListMedia)
	mux.HandleFunc("POST /api/media/batch-upload", h.BatchUpload)
	mux.HandleFunc("DELETE /api/media/batch-delete", h.BatchDeleteMedia)
	mux.HandleFunc("GET /api/media/file/{filename}", h.ServeFile)
	mux.HandleFunc("GET /api/media/{id}", h.GetMedia)
	mux.HandleFunc("DELETE /api/media/{id}", h.DeleteMedia)
	mux.HandleFunc("PUT /api/media/{id}/tags", h.UpdateTags)
	mux.HandleFunc("POST /api/media/{id}/suggest-tags", h.SuggestTags)

	// Search and tag vocabulary
	mux.HandleFunc("GET /api/search", h.Search)
	mux.HandleFunc("GET /api/tags", h.ListTags)

	// Album endpoints
	mux.HandleFunc("GET /api/albums", h.ListAlbums)
	mux.HandleFunc("POST /api/albums", h.CreateAlbum)
	mux.HandleFunc("GET /api/albums/{id}", h.GetAlbum)
	mux.HandleFunc("PUT /api/albums/{id}", h.UpdateAlbum)
	mux.HandleFunc("DELETE /api/albums/{id}", h.DeleteAlbum)
	mux.HandleFunc("POST /api/albums/{id}/add-media", h.AddAlbumMedia)
	mux.HandleFunc("POST /api/albums/{id}/remove-media", h.RemoveAlbumMedia)

	return mux
}

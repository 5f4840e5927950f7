package handlers

import "omoide-api/internal/services"

type Handler struct {
	media  *services.MediaService
	upload *services.UploadService
	search *services.SearchService
	albums *services.AlbumService
}

func New(media *services.MediaService, upload *services.UploadService, search *services.SearchService, albums *services.AlbumService) *Handler {
	return &Handler{
		media:  media,
		upload: upload,
		search: search,
		albums: albums,
	}
}

package services

import "omoide-api/internal/models"

// MediaStore is the persistence boundary for media records. Implemented by
// repository.MediaRepository; narrowed to an interface so services can be
// tested with in-memory doubles.
type MediaStore interface {
	Save(item *models.MediaItem) (*models.MediaItem, error)
	FindByID(id string) (*models.MediaItem, error)
	FindAll() ([]*models.MediaItem, error)
	Search(query models.SearchQuery) ([]*models.MediaItem, error)
	Delete(id string) error
	AllTags() ([]string, error)
	UpdateTags(id string, tags []string) (*models.MediaItem, error)
}

// AlbumStore is the persistence boundary for album records.
type AlbumStore interface {
	Create(name, description string) (*models.Album, error)
	FindAll() ([]*models.Album, error)
	FindByID(id string) (*models.Album, error)
	Update(id string, patch models.AlbumPatch) (*models.Album, error)
	Delete(id string) error
	AddMedia(id string, mediaIds []string) (*models.Album, int, error)
	RemoveMedia(id string, mediaIds []string) (*models.Album, error)
}

package services

import (
	"fmt"
	"sort"

	apperrors "omoide-api/internal/errors"
	"omoide-api/internal/models"
)

// AlbumService wraps the album store with presentation ordering and the
// "everything already in the album" add check.
type AlbumService struct {
	albums AlbumStore
}

func NewAlbumService(albums AlbumStore) *AlbumService {
	return &AlbumService{albums: albums}
}

// List returns all albums, most recently updated first.
func (s *AlbumService) List() ([]*models.Album, error) {
	albums, err := s.albums.FindAll()
	if err != nil {
		return nil, err
	}
	sort.Slice(albums, func(i, j int) bool {
		return albums[i].UpdatedAt.After(albums[j].UpdatedAt)
	})
	return albums, nil
}

func (s *AlbumService) Create(name, description string) (*models.Album, error) {
	return s.albums.Create(name, description)
}

// Get fetches one album; an absent id reports ErrNotFound.
func (s *AlbumService) Get(id string) (*models.Album, error) {
	album, err := s.albums.FindByID(id)
	if err != nil {
		return nil, err
	}
	if album == nil {
		return nil, fmt.Errorf("%w: album %s", apperrors.ErrNotFound, id)
	}
	return album, nil
}

func (s *AlbumService) Update(id string, patch models.AlbumPatch) (*models.Album, error) {
	return s.albums.Update(id, patch)
}

func (s *AlbumService) Delete(id string) error {
	return s.albums.Delete(id)
}

// AddMedia adds media ids to the album. Adding a set that is entirely
// already present is reported as invalid input, matching the UI's
// expectation of telling the user nothing was added.
func (s *AlbumService) AddMedia(id string, mediaIds []string) (*models.Album, int, error) {
	if len(mediaIds) == 0 {
		return nil, 0, fmt.Errorf("%w: media ids are required", apperrors.ErrInvalidInput)
	}

	album, added, err := s.albums.AddMedia(id, mediaIds)
	if err != nil {
		return nil, 0, err
	}
	if added == 0 {
		return nil, 0, fmt.Errorf("%w: all media already in the album", apperrors.ErrInvalidInput)
	}
	return album, added, nil
}

// RemoveMedia removes media ids from the album and reports how many were
// actually removed. Ids not in the album are ignored.
func (s *AlbumService) RemoveMedia(id string, mediaIds []string) (*models.Album, int, error) {
	if len(mediaIds) == 0 {
		return nil, 0, fmt.Errorf("%w: media ids are required", apperrors.ErrInvalidInput)
	}

	before, err := s.Get(id)
	if err != nil {
		return nil, 0, err
	}

	album, err := s.albums.RemoveMedia(id, mediaIds)
	if err != nil {
		return nil, 0, err
	}
	return album, len(before.MediaIds) - len(album.MediaIds), nil
}
